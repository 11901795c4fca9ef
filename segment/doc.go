// Package segment splits raw text into sentences with word counts.
//
// A Segmenter turns one column of a training pair into an ordered slice of
// truncate.Sentence values. The truncation logic never tokenizes text itself;
// it only consumes what a Segmenter produces, so any conforming
// implementation can be swapped in.
//
// # Languages
//
// Segmenters are registered per language code. The built-in codes are "en"
// and "de", both backed by punkt training data shipped with
// github.com/neurosnap/sentences:
//
//	seg, err := segment.New("en", segment.Options{})
//	if err != nil {
//	    return err
//	}
//	sents := seg.Segment("The cat sat. It was happy.")
//
// Unknown codes return ErrUnsupportedLanguage. Available lists the
// registered codes in sorted order.
//
// # Unicode Repair
//
// Options.FixUnicode runs FixText over each input before segmentation. It
// repairs UTF-8 text that was decoded as Windows-1252 ("cafÃ©"), unescapes
// HTML entities, and applies NFC normalization.
//
// # Thread Safety
//
// Built-in segmenters are read-only after construction and safe for
// concurrent use. Custom implementations used with parallel pipelines must
// offer the same guarantee.
package segment
