package worker

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"prsentinel/internal/ai"
	"prsentinel/internal/budget"
	"prsentinel/internal/chunker"
	"prsentinel/internal/cost"
	"prsentinel/internal/dedup"
	"prsentinel/internal/diff"
	"prsentinel/internal/exclusion"
	"prsentinel/internal/github"
	"prsentinel/internal/observability"
	"prsentinel/internal/ratelimit"
	"prsentinel/internal/retry"
	"prsentinel/internal/review"
	"prsentinel/internal/testgen"
)

// errBudgetExhausted aborts the rest of a job once the spend guard trips.
var errBudgetExhausted = errors.New("budget exhausted")

type Processor struct {
	queue       Queue
	client      github.Client
	comments    github.CommentClient
	dedup       dedup.Store
	logger      *observability.Logger
	filter      *exclusion.Filter
	chunker     *chunker.Chunker
	ai          ai.Provider
	rateLimiter *ratelimit.Limiter
	guard       *budget.Guard
	testGen     *testgen.Generator
}

func NewProcessor(
	q Queue,
	c github.Client,
	comments github.CommentClient,
	d dedup.Store,
	l *observability.Logger,
	filter *exclusion.Filter,
	a ai.Provider,
	rl *ratelimit.Limiter,
	guard *budget.Guard,
	testGen *testgen.Generator,
) *Processor {
	return &Processor{
		queue:       q,
		client:      c,
		comments:    comments,
		dedup:       d,
		logger:      l,
		filter:      filter,
		chunker:     chunker.New(3000),
		ai:          a,
		rateLimiter: rl,
		guard:       guard,
		testGen:     testGen,
	}
}

func (p *Processor) Start(ctx context.Context) {
	go func() {
		for {
			job, err := p.queue.Pop(ctx)
			if err != nil {
				if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return
				}
				continue
			}

			p.handle(ctx, job)
		}
	}()
}

func (p *Processor) handle(parent context.Context, j Job) {
	ctx, cancel := context.WithTimeout(parent, 5*time.Minute)
	defer cancel()

	raw, err := p.client.GetPRDiff(ctx, j.Repo, j.PR)
	if err != nil {
		p.logger.Error("get pr diff failed", "repo", j.Repo, "pr", j.PR, "err", err)
		return
	}

	changes := diff.Segment(raw)
	observability.FilesSegmented.Add(float64(len(changes)))

	limiter := p.rateLimiter.Get(j.Repo)

	summary := newSummary()

	for _, fc := range changes {
		if p.filter.ShouldExclude(fc.FileName) {
			observability.FilesExcluded.Inc()
			p.logger.Debug("file excluded", "file", fc.FileName)
			continue
		}

		// Each file is processed independently: a provider or GitHub
		// failure on one record must not stop the rest.
		err := p.reviewFile(ctx, j, fc, limiter, &summary)
		if errors.Is(err, errBudgetExhausted) {
			return
		}
		if err != nil {
			p.logger.Error("review failed", "file", fc.FileName, "err", err)
		}

		if p.testGen != nil {
			if err := p.generateTests(ctx, j, fc, limiter); err != nil {
				p.logger.Error("test generation failed", "file", fc.FileName, "err", err)
			}
		}
	}

	body := formatSummaryComment(summary)
	err = retry.Do(ctx, 3, time.Second, func() error {
		return p.comments.CreateComment(ctx, j.Repo, j.PR, body)
	})
	if err != nil {
		p.logger.Error("summary comment failed", "repo", j.Repo, "pr", j.PR, "err", err)
	}
}

func (p *Processor) reviewFile(
	ctx context.Context,
	j Job,
	fc diff.FileChange,
	limiter *rate.Limiter,
	summary *reviewSummary,
) error {
	content := fc.AIContext()
	if content == "" {
		return nil
	}

	for _, ch := range p.chunker.Split(fc.FileName, content) {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		if err := p.checkBudget(ctx, j); err != nil {
			return err
		}

		resp, err := p.callProvider(ctx, ai.ReviewRequest{
			File:    ch.File,
			Content: ch.Content,
		})
		if err != nil {
			p.logger.Error("ai failed", "file", ch.File, "err", err)
			continue
		}

		usd := p.recordSpend(ctx, j, resp)
		summary.CostUSD += usd

		result, err := review.ParseResult(resp.Content)
		if err != nil {
			p.logger.Error("invalid ai result", "file", ch.File, "err", err)
			continue
		}

		p.postIssues(ctx, j, ch.File, result.Issues, summary)
	}

	return nil
}

func (p *Processor) callProvider(ctx context.Context, r ai.ReviewRequest) (ai.ReviewResponse, error) {
	start := time.Now()

	resp, err := p.ai.Review(ctx, r)

	provider := resp.Provider
	if provider == "" {
		provider = "primary"
	}

	observability.AICalls.WithLabelValues(provider).Inc()
	observability.AILatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	if err != nil {
		observability.AIErrors.WithLabelValues(provider).Inc()
		return ai.ReviewResponse{}, err
	}

	observability.AITokens.WithLabelValues(provider, resp.Model, "prompt").
		Add(float64(resp.Usage.PromptTokens))
	observability.AITokens.WithLabelValues(provider, resp.Model, "completion").
		Add(float64(resp.Usage.CompletionTokens))

	return resp, nil
}

func (p *Processor) checkBudget(ctx context.Context, j Job) error {
	if !p.guard.Enabled() {
		return nil
	}

	allowed, reason, err := p.guard.Allow(ctx, j.Repo, j.PR, 0, time.Now())
	if err != nil {
		return fmt.Errorf("budget check: %w", err)
	}
	if allowed {
		return nil
	}

	observability.BudgetBlocks.WithLabelValues("job").Inc()

	body := "Budget guard triggered, review stopped: " + reason
	if err := p.comments.CreateComment(ctx, j.Repo, j.PR, body); err != nil {
		p.logger.Error("budget comment failed", "err", err)
	}

	return errBudgetExhausted
}

func (p *Processor) recordSpend(ctx context.Context, j Job, resp ai.ReviewResponse) float64 {
	usd := cost.EstimateUSD(resp.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	if usd > 0 {
		observability.AICostUSD.WithLabelValues(resp.Provider, resp.Model).Add(usd)
	}

	if err := p.guard.Record(ctx, j.Repo, j.PR, usd, time.Now()); err != nil {
		p.logger.Error("budget record failed", "err", err)
	}

	return usd
}

func (p *Processor) postIssues(
	ctx context.Context,
	j Job,
	file string,
	issues []review.Issue,
	summary *reviewSummary,
) {
	for _, is := range issues {
		summary.Add(is)

		key := fmt.Sprintf("%s:%d:%s", file, is.Line, hash(is.Severity+is.Title+is.Suggestion))
		if p.dedup.Seen(ctx, key) {
			continue
		}

		comment := github.LineComment{
			Body: is.Title + "\n\n" + is.Suggestion,
			Path: file,
			Line: is.Line,
			Side: "RIGHT",
		}

		err := retry.Do(ctx, 3, time.Second, func() error {
			return p.comments.CreateLineComment(ctx, j.Repo, j.PR, comment)
		})
		if err != nil {
			p.logger.Error("line comment failed", "file", file, "line", is.Line, "err", err)
			continue
		}

		summary.PostedComments++
		if err := p.dedup.Mark(ctx, key); err != nil {
			p.logger.Error("dedup mark failed", "err", err)
		}
	}
}

func (p *Processor) generateTests(
	ctx context.Context,
	j Job,
	fc diff.FileChange,
	limiter *rate.Limiter,
) error {
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	gen, err := p.testGen.Generate(ctx, fc)
	if err != nil {
		return err
	}

	p.recordSpend(ctx, j, ai.ReviewResponse{Model: gen.Model, Provider: "primary", Usage: gen.Usage})

	return retry.Do(ctx, 3, time.Second, func() error {
		return p.comments.CreateComment(ctx, j.Repo, j.PR, testgen.CommentBody(gen))
	})
}

func hash(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}
