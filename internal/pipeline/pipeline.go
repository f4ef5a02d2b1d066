package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Vibhor2702/pr-review/internal/analyze"
	"github.com/Vibhor2702/pr-review/internal/artifacts"
	"github.com/Vibhor2702/pr-review/internal/checkout"
	"github.com/Vibhor2702/pr-review/internal/config"
	"github.com/Vibhor2702/pr-review/internal/forge"
	"github.com/Vibhor2702/pr-review/internal/providers"
	"github.com/Vibhor2702/pr-review/internal/review"
	"github.com/Vibhor2702/pr-review/internal/scoring"
)

// Options select what to review and how.
type Options struct {
	Provider string
	Owner    string
	Repo     string
	Number   int

	// Token overrides the configured forge token when set.
	Token string

	// NoLLM disables the LLM review pass, leaving static analysis only.
	NoLLM bool

	// Post publishes the review back to the forge after scoring.
	Post bool
}

// Progress receives stage transitions as the pipeline runs. Stage is one
// of fetch, checkout, analyze, score, persist, post.
type Progress func(stage, message string)

// Pipeline runs a full PR review: fetch, checkout, analyze, score,
// persist, and optionally post.
type Pipeline struct {
	cfg      config.Config
	store    *artifacts.Store
	checkout *checkout.Manager
	progress Progress
}

// New builds a Pipeline. progress may be nil.
func New(cfg config.Config, store *artifacts.Store, progress Progress) *Pipeline {
	if progress == nil {
		progress = func(string, string) {}
	}
	return &Pipeline{
		cfg:      cfg,
		store:    store,
		checkout: checkout.NewManager(""),
		progress: progress,
	}
}

// Run executes the review pipeline for one PR and returns the persisted
// record. A checkout failure degrades the run to patch-only analysis
// rather than aborting it.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*artifacts.Record, error) {
	token := opts.Token
	if token == "" {
		token = p.cfg.TokenFor(opts.Provider)
	}

	fetcher, err := forge.New(opts.Provider, token)
	if err != nil {
		return nil, err
	}

	p.progress("fetch", fmt.Sprintf("fetching %s/%s #%d from %s", opts.Owner, opts.Repo, opts.Number, fetcher.Name()))
	pr, err := fetcher.FetchPR(ctx, opts.Owner, opts.Repo, opts.Number)
	if err != nil {
		return nil, fmt.Errorf("fetching PR: %w", err)
	}

	llm := p.llmReviewer(opts.NoLLM)
	runner := analyze.NewRunner(llm)

	findings := p.analyze(ctx, runner, llm, pr)

	p.progress("score", "scoring findings")
	score := scoring.Calculate(findings, pr, p.cfg.Weights)
	result := review.Generate(findings, pr)

	rec := artifacts.Record{
		RunID:     uuid.NewString(),
		PRContext: pr,
		Review:    result,
		Score:     score,
	}

	p.progress("persist", "saving review artifacts")
	id, err := p.store.Save(rec)
	if err != nil {
		return nil, fmt.Errorf("saving artifacts: %w", err)
	}
	saved, err := p.store.Get(id)
	if err != nil {
		return nil, err
	}

	if opts.Post || p.cfg.PostReview {
		poster, ok := fetcher.(forge.Poster)
		if !ok {
			log.Printf("provider %s does not support posting reviews", fetcher.Name())
			return &saved, nil
		}
		p.progress("post", fmt.Sprintf("posting %d comments", len(result.Comments)))
		if err := poster.PostReview(ctx, pr, result.Comments); err != nil {
			return &saved, fmt.Errorf("posting review: %w", err)
		}
	}

	return &saved, nil
}

// llmReviewer builds the LLM pass, or returns nil when it is disabled or
// the provider cannot be constructed. A missing API key downgrades the
// run to static analysis only.
func (p *Pipeline) llmReviewer(noLLM bool) *analyze.LLMReviewer {
	if noLLM {
		return nil
	}
	client, err := providers.New(p.cfg.LLMProvider, p.cfg.LLMModel)
	if err != nil {
		log.Printf("LLM review disabled: %v", err)
		return nil
	}
	return analyze.NewLLMReviewer(client, p.cfg.LLMTemperature, p.cfg.RedactSecrets)
}

// analyze checks out the head branch and runs all analyzers over changed
// files. When checkout or diffing fails the PR's fetched patches are
// analyzed instead.
func (p *Pipeline) analyze(ctx context.Context, runner *analyze.Runner, llm *analyze.LLMReviewer, pr review.PRContext) []review.Finding {
	if pr.RepoURL == "" {
		p.progress("analyze", "no repository URL, analyzing fetched patches")
		return p.analyzePatches(ctx, llm, pr)
	}

	p.progress("checkout", "checking out "+pr.HeadRef)
	repoPath, err := p.checkout.CheckoutPR(ctx, pr.RepoURL, pr.HeadRef, pr.BaseRef)
	if err != nil {
		log.Printf("checkout failed, falling back to patch analysis: %v", err)
		return p.analyzePatches(ctx, llm, pr)
	}
	defer p.checkout.Cleanup(repoPath)

	changed, err := p.checkout.ChangedFiles(ctx, repoPath, pr.BaseRef, pr.HeadRef)
	if err != nil || len(changed) == 0 {
		changed = make([]string, 0, len(pr.Files))
		for _, f := range pr.Files {
			changed = append(changed, f.Path)
		}
	}

	p.progress("analyze", fmt.Sprintf("analyzing %d changed files", len(changed)))
	return runner.AnalyzeFiles(ctx, repoPath, changed, pr)
}

// analyzePatches reviews the diff text captured at fetch time. Static
// analyzers need a working tree, so this is an LLM-only pass.
func (p *Pipeline) analyzePatches(ctx context.Context, llm *analyze.LLMReviewer, pr review.PRContext) []review.Finding {
	if llm == nil {
		return nil
	}
	var all []review.Finding
	for _, f := range pr.Files {
		if f.Patch == "" {
			continue
		}
		findings := llm.ReviewFile(ctx, f.Path, f.Patch, nil)
		for i := range findings {
			findings[i].File = f.Path
		}
		all = append(all, findings...)
	}
	return all
}
