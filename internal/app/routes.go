package app

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prsentinel/internal/ai"
	"prsentinel/internal/budget"
	"prsentinel/internal/dedup"
	"prsentinel/internal/exclusion"
	"prsentinel/internal/github"
	"prsentinel/internal/observability"
	"prsentinel/internal/ratelimit"
	"prsentinel/internal/testgen"
	"prsentinel/internal/worker"
)

func (s *Server) routes() {
	if s.http == nil {
		return
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.health)

	queue := worker.NewQueue(s.cfg)

	// adapter so the github package doesn't know the worker
	adapter := worker.NewAdapter(queue)

	ghClient := github.NewClient(s.cfg, s.logger)

	wh := github.NewWebhookHandler(s.cfg, s.logger, adapter)

	provider := ai.NewProvider(s.cfg)
	providerWithCB := ai.NewCircuitBreaker(provider)

	// local Ollama as last resort when the primary is down
	fallback := ai.NewFallback(
		providerWithCB,
		ai.NewOllama(
			s.cfg.OllamaURL,
			s.cfg.OllamaModel,
		),
	)

	filter := exclusion.NewFilter(s.cfg.ExcludePatterns)

	rateLimiter := ratelimit.New(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst)

	guard := budget.NewGuard(
		s.cfg.BudgetEnabled,
		s.cfg.BudgetDailyUSD,
		s.cfg.BudgetPRUSD,
		budget.NewMemoryStore(),
	)

	var generator *testgen.Generator
	if s.cfg.TestGenEnabled {
		generator = testgen.New(fallback)
	}

	processor := worker.NewProcessor(
		queue,
		ghClient,
		ghClient,
		dedup.NewMemory(),
		s.logger,
		filter,
		fallback,
		rateLimiter,
		guard,
		generator,
	)

	observability.InitMetrics()

	mux.HandleFunc("/webhook/github", wh.Handle)
	mux.Handle("/metrics", promhttp.Handler())

	processor.Start(context.Background())

	s.http.Handler = mux
}
