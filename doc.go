// Package seqfilter trims parallel source/target text pairs for
// sequence-to-sequence training so that each side fits a word budget.
//
// Whole sentences are kept: the last ones of the source and the first ones
// of the target. The packages can be used independently:
//
//   - truncate: sentence budget selection (head or tail)
//   - tokens: word counting for sentences
//   - segment: language-specific sentence segmentation and unicode repair
//   - pipeline: streaming two-column delimited records through the filter
//   - config: file, environment and flag configuration with a JSON Schema
//   - metrics: Prometheus counters for filtered records
//   - watch: re-running a job when its input file changes
//
// # Quick Start
//
// Filtering sentences:
//
//	import "github.com/randalmurphal/seqfilter/truncate"
//	sents := []truncate.Sentence{{Text: "A b.", Words: 2}, {Text: "C d e.", Words: 3}}
//	tail := truncate.Sentences(sents, 3, truncate.RetainTail) // "C d e."
//
// Filtering a file:
//
//	seg, _ := segment.New("en", segment.Options{})
//	p, _ := pipeline.New(seg, pipeline.Options{Delimiter: '\t', MaxWords: 25})
//	stats, err := p.RunFiles(ctx, "train.tsv", "train.filtered.tsv")
//
// The seqfilter command in cmd/seqfilter wraps the pipeline with config
// loading, logging and metrics.
package seqfilter
