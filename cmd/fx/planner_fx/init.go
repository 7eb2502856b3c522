package planner_fx

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"

	"wayfarer/internal/collaborators"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
	mem "wayfarer/pkg/memcache"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	provideLLMClient,
	provideEmbedder,
	provideRouter,
	provideScheduler,
	provideCatalogSync,
	providePlannerService,
)

// LLMConfig holds configuration for the crew-mode language model.
type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
}

func getLLMConfig() LLMConfig {
	provider := getEnvWithDefault("LLM_PROVIDER", "openai")

	var apiKey, model string
	switch strings.ToLower(provider) {
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
	default:
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
	}

	return LLMConfig{Provider: provider, APIKey: apiKey, Model: model}
}

// provideLLMClient returns nil when no key is configured. Crew mode then
// falls back to the deterministic planner on every request.
func provideLLMClient() utils.LLMClientInterface {
	config := getLLMConfig()
	if config.APIKey == "" {
		log.Printf("no %s API key configured, crew mode disabled", config.Provider)
		return nil
	}

	log.Printf("Initializing %s LLM client with model: %s", config.Provider, config.Model)
	client, err := utils.NewLLMClient(config.Provider, config.APIKey, config.Model)
	if err != nil {
		log.Printf("LLM client init failed, crew mode disabled: %v", err)
		return nil
	}
	return client
}

func provideEmbedder() services.Embedder {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil
	}
	return utils.NewOpenAIClient(apiKey, "")
}

// provideCatalogSync returns nil without a database; the seed data then only
// serves in-process.
func provideCatalogSync(catalog repositories.CatalogRepository, embedder services.Embedder) services.CatalogSyncInterface {
	if catalog == nil {
		return nil
	}
	return services.NewCatalogSync(catalog, embedder)
}

func provideRouter(directions collaborators.DirectionsServiceInterface) services.RouterServiceInterface {
	return services.NewRouterService(directions)
}

func provideScheduler(router services.RouterServiceInterface) services.SchedulerServiceInterface {
	return services.NewSchedulerService(router, services.DefaultSchedulerConfig())
}

func providePlannerService(
	geocoder collaborators.GeocodeServiceInterface,
	weather collaborators.WeatherServiceInterface,
	places collaborators.PlacesServiceInterface,
	localInfo collaborators.LocalInfoServiceInterface,
	catalog repositories.CatalogRepository,
	embedder services.Embedder,
	cache mem.POICache,
	limiter mem.RateLimiter,
	scheduler services.SchedulerServiceInterface,
	llm utils.LLMClientInterface,
) services.PlannerServiceInterface {
	staticSupplier := services.NewStaticSupplier(catalog, embedder, cache)
	liveSupplier := services.NewLiveSupplier(places, limiter, cache)

	var pipeline services.PipelineServiceInterface
	if llm != nil {
		pipeline = services.NewPipelineService(llm, geocoder, liveSupplier, scheduler)
	}

	return services.NewPlannerService(
		geocoder,
		weather,
		localInfo,
		staticSupplier,
		scheduler,
		pipeline,
		crewTimeout(),
	)
}

func crewTimeout() time.Duration {
	raw := os.Getenv("PLANNER_CREW_TIMEOUT")
	if raw == "" {
		return services.DefaultCrewTimeout
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		log.Printf("invalid PLANNER_CREW_TIMEOUT %q, using default", raw)
		return services.DefaultCrewTimeout
	}
	return time.Duration(secs) * time.Second
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
