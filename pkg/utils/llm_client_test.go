package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONResponseStripsMarkdown(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, CleanJSONResponse(raw))
}

func TestCleanJSONResponseExtractsObjectFromProse(t *testing.T) {
	raw := `Here is your plan: {"days": [{"n": 1}]} hope it helps`
	assert.Equal(t, `{"days": [{"n": 1}]}`, CleanJSONResponse(raw))
}

func TestCleanJSONResponseExtractsArray(t *testing.T) {
	raw := `Sure! [1, 2, 3] done`
	assert.Equal(t, `[1, 2, 3]`, CleanJSONResponse(raw))
}

func TestCleanJSONResponseHandlesBracesInStrings(t *testing.T) {
	raw := `{"note": "use {curly} braces"} trailing`
	assert.Equal(t, `{"note": "use {curly} braces"}`, CleanJSONResponse(raw))
}

func TestCleanJSONResponseHandlesEscapedQuotes(t *testing.T) {
	raw := `{"quote": "she said \"go\""}`
	assert.Equal(t, raw, CleanJSONResponse(raw))
	assert.True(t, ValidJSON(CleanJSONResponse(raw)))
}

func TestValidJSON(t *testing.T) {
	assert.True(t, ValidJSON(`{"ok": true}`))
	assert.True(t, ValidJSON(`[]`))
	assert.False(t, ValidJSON(`{"open":`))
	assert.False(t, ValidJSON(``))
}
