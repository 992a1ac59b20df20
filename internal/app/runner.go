package app

import (
	"context"
	"fmt"
	"io"

	"prsentinel/internal/ai"
	"prsentinel/internal/config"
	"prsentinel/internal/diff"
	"prsentinel/internal/exclusion"
	"prsentinel/internal/gitsource"
	"prsentinel/internal/observability"
	"prsentinel/internal/review"
	"prsentinel/internal/testgen"
)

// Runner is the one-shot CLI flow: local diff against the base branch,
// segmentation and filtering, one review per surviving file, findings to
// stdout, generated tests to the output directory.
type Runner struct {
	cfg    *config.Config
	logger *observability.Logger
	source *gitsource.Source
	filter *exclusion.Filter
	ai     ai.Provider
	out    io.Writer
}

func NewRunner(cfg *config.Config, logger *observability.Logger, workDir string, out io.Writer) *Runner {
	provider := ai.NewCircuitBreaker(ai.NewProvider(cfg))

	return &Runner{
		cfg:    cfg,
		logger: logger,
		source: gitsource.New(workDir),
		filter: exclusion.NewFilter(cfg.ExcludePatterns),
		ai:     provider,
		out:    out,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	if err := r.source.Fetch(ctx, r.cfg.BaseBranch); err != nil {
		// A missing remote is fine for purely local work.
		r.logger.Warn("fetch failed, diffing against local ref", "err", err)
	}

	raw, err := r.source.Diff(ctx, r.cfg.BaseBranch)
	if err != nil {
		return fmt.Errorf("collect diff: %w", err)
	}

	changes := diff.Segment(raw)
	if len(changes) == 0 {
		fmt.Fprintln(r.out, "No changes to review.")
		return nil
	}

	kept := r.filter.Apply(changes)
	r.logger.Info("diff segmented",
		"files", len(changes),
		"excluded", len(changes)-len(kept),
	)

	var generator *testgen.Generator
	if r.cfg.TestGenEnabled {
		generator = testgen.New(r.ai)
	}

	for _, fc := range kept {
		// One file failing must not stop the rest.
		if err := r.reviewFile(ctx, fc); err != nil {
			r.logger.Error("review failed", "file", fc.FileName, "err", err)
		}

		if generator == nil {
			continue
		}
		if err := r.writeTests(ctx, generator, fc); err != nil {
			r.logger.Error("test generation failed", "file", fc.FileName, "err", err)
		}
	}

	return nil
}

func (r *Runner) reviewFile(ctx context.Context, fc diff.FileChange) error {
	content := fc.AIContext()
	if content == "" {
		return nil
	}

	resp, err := r.ai.Review(ctx, ai.ReviewRequest{
		File:    fc.FileName,
		Content: content,
	})
	if err != nil {
		return err
	}

	result, err := review.ParseResult(resp.Content)
	if err != nil {
		return fmt.Errorf("parse result: %w", err)
	}

	if len(result.Issues) == 0 {
		fmt.Fprintf(r.out, "%s: no issues\n", fc.FileName)
		return nil
	}

	for _, is := range result.Issues {
		fmt.Fprintf(r.out, "%s:%d [%s] %s\n    %s\n",
			fc.FileName, is.Line, is.Severity, is.Title, is.Suggestion)
	}

	return nil
}

func (r *Runner) writeTests(ctx context.Context, g *testgen.Generator, fc diff.FileChange) error {
	gen, err := g.Generate(ctx, fc)
	if err != nil {
		return err
	}

	path, err := g.WriteFile(r.cfg.TestGenOutputDir, gen)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%s: tests written to %s\n", fc.FileName, path)
	return nil
}
