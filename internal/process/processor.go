// Package process orchestrates a fix run: it groups violations by file,
// drives the rule pipeline per file on a bounded worker pool, and persists
// results safely.
package process

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/asciidoc-dita/adfix/internal/apply"
	"github.com/asciidoc-dita/adfix/internal/config"
	"github.com/asciidoc-dita/adfix/internal/rule"
	"github.com/asciidoc-dita/adfix/pkg/schema"
)

// Processor runs the rule pipeline over files.
type Processor struct {
	cfg      *config.Config
	registry *rule.Registry
	log      zerolog.Logger

	// DryRun computes and reports fixes without touching disk.
	DryRun bool
}

// New creates a processor.
func New(cfg *config.Config, registry *rule.Registry, log zerolog.Logger) *Processor {
	return &Processor{cfg: cfg, registry: registry, log: log}
}

// Process runs the full pipeline for all violations. Files are independent
// and processed in parallel by a bounded worker pool; each worker owns its
// file's full read-compute-write cycle. The only error returned is a fatal
// one (rule dependency cycle); every per-file and per-fix problem is
// recorded in the result instead.
//
// Cancelling ctx stops dispatching files to idle workers; in-flight workers
// finish their current file's write, and files that never ran are reported
// as interrupted rather than silently dropped.
func (p *Processor) Process(ctx context.Context, violations []rule.Violation) (*schema.ProcessingResult, error) {
	stages, err := p.registry.Stages()
	if err != nil {
		return nil, fmt.Errorf("cannot order rules: %w", err)
	}

	byFile := make(map[string][]rule.Violation)
	for _, v := range violations {
		byFile[v.FilePath] = append(byFile[v.FilePath], v)
	}
	paths := make([]string, 0, len(byFile))
	for path := range byFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex // guards results only; no I/O under the lock
		results []schema.FileResult
	)
	sem := make(chan struct{}, p.cfg.EffectiveWorkers())

	record := func(fr schema.FileResult) {
		mu.Lock()
		results = append(results, fr)
		mu.Unlock()
	}

	for _, path := range paths {
		wg.Add(1)
		go func(path string, fileViolations []rule.Violation) {
			defer wg.Done()

			// Prefer cancellation over an open worker slot, so no new file
			// is dispatched once the run is interrupted.
			select {
			case <-ctx.Done():
				record(schema.FileResult{
					Path:   path,
					Status: schema.StatusInterrupted,
					Reason: ctx.Err().Error(),
				})
				return
			default:
			}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				record(schema.FileResult{
					Path:   path,
					Status: schema.StatusInterrupted,
					Reason: ctx.Err().Error(),
				})
				return
			}
			defer func() { <-sem }()

			record(p.processFile(path, fileViolations, stages))
		}(path, byFile[path])
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return aggregate(results), nil
}

// processFile runs the rule pipeline for one file. A panic in a rule is
// contained here so one broken file never halts the run.
func (p *Processor) processFile(path string, violations []rule.Violation, stages [][]rule.Rule) (fr schema.FileResult) {
	fr = schema.FileResult{Path: path}

	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Str("file", path).Interface("panic", r).Msg("rule execution panicked")
			fr.Status = schema.StatusFailed
			fr.Reason = fmt.Sprintf("rule execution panicked: %v", r)
		}
	}()

	doc, err := loadDocument(path, p.cfg)
	if err != nil {
		if skip, ok := err.(*skipError); ok {
			fr.Status = schema.StatusSkipped
			fr.Reason = skip.reason
		} else {
			fr.Status = schema.StatusFailed
			fr.Reason = err.Error()
		}
		return fr
	}

	// Deterministic generation order regardless of report order.
	sort.SliceStable(violations, func(i, j int) bool {
		vi, vj := violations[i], violations[j]
		if vi.Line != vj.Line {
			return vi.Line < vj.Line
		}
		if vi.Column != vj.Column {
			return vi.Column < vj.Column
		}
		return vi.CheckID < vj.CheckID
	})

	working := doc.Text
	claimed := make([]bool, len(violations))

	// One generate-and-apply pass per dependency stage: rules in a later
	// stage see the cumulative effect of earlier stages' edits in the
	// working copy. With a single stage this collapses to the common case
	// of generating every fix from the original snapshot and applying them
	// together.
	for _, stage := range stages {
		var fixes []*rule.Fix
		for _, r := range stage {
			if p.cfg.RuleSkipped(r.Name()) {
				continue
			}
			for i, v := range violations {
				if claimed[i] || !r.CanFix(v) {
					continue
				}
				claimed[i] = true
				fix := r.GenerateFix(v, working)
				if fix == nil {
					fr.Skipped = append(fr.Skipped, schema.SkippedFix{
						CheckID: v.CheckID,
						Line:    v.Line,
						Column:  v.Column,
						Reason:  "declined",
					})
					continue
				}
				fixes = append(fixes, fix)
			}
		}
		if len(fixes) == 0 {
			continue
		}

		res := apply.Apply(working, fixes)
		working = res.Content
		for _, f := range res.Applied {
			fr.Applied = append(fr.Applied, schema.AppliedFix{
				CheckID:        f.Violation.CheckID,
				Line:           f.Line,
				Column:         f.Column,
				Operation:      string(f.Operation),
				Confidence:     f.Confidence,
				RequiresReview: f.RequiresReview,
				CommentFlag:    f.IsCommentFlag,
			})
		}
		for _, s := range res.Skipped {
			fr.Skipped = append(fr.Skipped, schema.SkippedFix{
				CheckID: s.Fix.Violation.CheckID,
				Line:    s.Fix.Line,
				Column:  s.Fix.Column,
				Reason:  string(s.Reason),
			})
		}
	}

	for i, v := range violations {
		if !claimed[i] {
			fr.Skipped = append(fr.Skipped, schema.SkippedFix{
				CheckID: v.CheckID,
				Line:    v.Line,
				Column:  v.Column,
				Reason:  "no rule registered",
			})
		}
	}

	if working == doc.Text {
		fr.Status = schema.StatusUnchanged
		return fr
	}

	if p.DryRun {
		fr.Status = schema.StatusPreviewed
		fr.Diff = unifiedDiff(path, doc.Text, working)
		return fr
	}

	backup, err := persist(path, doc, working, p.cfg.BackupSuffix)
	if err != nil {
		p.log.Error().Str("file", path).Err(err).Msg("failed to persist fixes")
		fr.Status = schema.StatusFailed
		fr.Reason = err.Error()
		return fr
	}
	p.log.Debug().Str("file", path).Int("fixes", len(fr.Applied)).Msg("file written")
	fr.Status = schema.StatusWritten
	fr.Backup = backup
	return fr
}

func aggregate(results []schema.FileResult) *schema.ProcessingResult {
	agg := &schema.ProcessingResult{Files: results}
	for _, fr := range results {
		switch fr.Status {
		case schema.StatusFailed:
			agg.FilesFailed++
		case schema.StatusSkipped:
			agg.FilesSkipped++
		case schema.StatusInterrupted:
			agg.FilesInterrupted++
		default:
			agg.FilesProcessed++
		}
		for _, f := range fr.Applied {
			agg.FixesApplied++
			if f.RequiresReview || f.CommentFlag {
				agg.FixesFlagged++
			}
		}
		agg.FixesSkipped += len(fr.Skipped)
	}
	return agg
}
