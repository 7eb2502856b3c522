package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// LLMClientInterface is the suspension point every crew-mode stage talks
// through. Implementations must honor ctx cancellation.
type LLMClientInterface interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// NewLLMClient builds a client for the configured provider.
func NewLLMClient(provider, apiKey, model string) (LLMClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "gemini":
		return NewGeminiClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

// CleanJSONResponse strips markdown fences and surrounding prose, keeping
// the first complete JSON object or array.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := findMatching(response, objStart, '{', '}'); end != -1 {
			response = response[objStart : end+1]
		}
	} else if arrStart != -1 {
		if end := findMatching(response, arrStart, '[', ']'); end != -1 {
			response = response[arrStart : end+1]
		}
	}

	return strings.TrimSpace(response)
}

// ValidJSON reports whether s is parseable JSON.
func ValidJSON(s string) bool { return json.Valid([]byte(s)) }

func findMatching(s string, start int, open, close byte) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
