package analysis

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/shivesh0001/ppt-checker/internal/deck"
	"github.com/shivesh0001/ppt-checker/internal/llm"
	"github.com/shivesh0001/ppt-checker/internal/rate"
)

// confidenceThreshold is the fixed cutoff below which findings are
// discarded before reporting. Not configurable.
const confidenceThreshold = 0.7

// dedupePrefixLen bounds the lowercased issue prefix used in the
// duplicate-collapse key. An intentionally loose identity heuristic.
const dedupePrefixLen = 50

// Analyzer orchestrates one run: batch passes in slide order, one global
// pass over the deck digest, then merge, filter and dedupe. A failure in
// any single pass degrades that pass to zero findings; only context
// cancellation aborts the run.
type Analyzer struct {
	client    llm.Client
	batchSize int
	gate      *rate.Gate
}

func New(client llm.Client, batchSize int, pace time.Duration) *Analyzer {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Analyzer{
		client:    client,
		batchSize: batchSize,
		gate:      rate.NewGate(pace),
	}
}

// Analyze returns the filtered, deduplicated findings for the deck. The
// only error it returns is context cancellation.
func (a *Analyzer) Analyze(ctx context.Context, slides []deck.SlideContent) ([]Finding, error) {
	log.Printf("analyzing %d slides for inconsistencies", len(slides))

	batchFindings, err := a.batchPass(ctx, slides)
	if err != nil {
		return nil, err
	}

	globalFindings, err := a.globalPass(ctx, slides)
	if err != nil {
		return nil, err
	}

	merged := append(batchFindings, globalFindings...)
	return dedupe(filterByConfidence(merged)), nil
}

func (a *Analyzer) batchPass(ctx context.Context, slides []deck.SlideContent) ([]Finding, error) {
	var findings []Finding
	for i, batch := range partition(slides, a.batchSize) {
		if err := a.gate.Wait(ctx); err != nil {
			return nil, err
		}
		log.Printf("processing batch %d (%d slides)", i+1, len(batch))

		found, err := a.analyzeOnce(ctx, BuildPrompt(FormatSlides(batch), ScopeBatch))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("warning: batch %d analysis failed: %v", i+1, err)
			continue
		}
		findings = append(findings, found...)
	}
	return findings, nil
}

func (a *Analyzer) globalPass(ctx context.Context, slides []deck.SlideContent) ([]Finding, error) {
	log.Printf("checking for issues across all slides")

	if err := a.gate.Wait(ctx); err != nil {
		return nil, err
	}
	found, err := a.analyzeOnce(ctx, BuildPrompt(Summarize(slides), ScopeDeck))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("warning: global analysis failed: %v", err)
		return nil, nil
	}
	return found, nil
}

func (a *Analyzer) analyzeOnce(ctx context.Context, prompt string) ([]Finding, error) {
	reply, err := a.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}
	findings, err := ParseFindings(reply)
	if err != nil {
		// Parse failures degrade the call to zero findings.
		log.Printf("warning: could not parse model reply: %v (reply was: %q)", err, truncate(reply, 200))
		return nil, nil
	}
	return findings, nil
}

// partition splits slides into contiguous groups of at most size; the
// final group may be smaller. Concatenating the groups reconstructs the
// input.
func partition(slides []deck.SlideContent, size int) [][]deck.SlideContent {
	var groups [][]deck.SlideContent
	for start := 0; start < len(slides); start += size {
		end := start + size
		if end > len(slides) {
			end = len(slides)
		}
		groups = append(groups, slides[start:end])
	}
	return groups
}

func filterByConfidence(findings []Finding) []Finding {
	kept := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if f.Confidence >= confidenceThreshold {
			kept = append(kept, f)
		}
	}
	return kept
}

// dedupe keeps the first finding per identity key in discovery order.
// Idempotent.
func dedupe(findings []Finding) []Finding {
	seen := make(map[string]struct{}, len(findings))
	unique := make([]Finding, 0, len(findings))
	for _, f := range findings {
		key := dedupeKey(f)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, f)
	}
	return unique
}

func dedupeKey(f Finding) string {
	slides := append([]int(nil), f.Slides...)
	sort.Ints(slides)
	issue := strings.ToLower(f.Issue)
	if len(issue) > dedupePrefixLen {
		issue = issue[:dedupePrefixLen]
	}
	return fmt.Sprintf("%v|%s", slides, issue)
}
