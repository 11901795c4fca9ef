// Package pipeline streams two-column delimited records through sentence
// segmentation and budget trimming.
//
// Each data row holds a source text and a target text. The source is trimmed
// keeping its last sentences, the target keeping its first sentences, both to
// the same word budget. Output rows use the input's delimiter and appear in
// input order.
//
//	seg, _ := segment.New("en", segment.Options{})
//	p, err := pipeline.New(seg, pipeline.Options{Delimiter: '\t', MaxWords: 25})
//	if err != nil {
//	    return err
//	}
//	stats, err := p.RunFiles(ctx, "train.tsv", "train.filtered.tsv")
//
// A row with a column count other than two aborts the run with a
// *FormatError; a blank line counts as a row with zero columns. Rows already
// written stay in the output.
//
// Setting Options.Workers above one segments rows concurrently while still
// committing them strictly in input order.
package pipeline
