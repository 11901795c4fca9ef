// Package truncate trims an ordered run of sentences to a word budget.
//
// Sequence-to-sequence training pairs are usually too long on one side or
// both. Rather than cutting text mid-sentence, this package keeps whole
// sentences from one end of a document and drops the rest.
//
// # Directions
//
// Two directions are available:
//
//   - RetainHead: keep sentences from the start (used for targets)
//   - RetainTail: keep sentences from the end (used for sources)
//
// # Basic Usage
//
//	sents := []truncate.Sentence{
//	    {Text: "The cat sat.", Words: 3},
//	    {Text: "It was happy.", Words: 3},
//	}
//	out := truncate.Sentences(sents, 5, truncate.RetainTail) // "It was happy."
//
// Select returns the chosen sentences together with bookkeeping useful for
// reporting:
//
//	sel := truncate.Select(sents, 5, truncate.RetainHead)
//	sel.Words     // words kept
//	sel.Dropped   // sentences removed
//	sel.Oversized // true when a lone sentence exceeds the budget
//
// # Budget Semantics
//
// Accumulation is greedy and stops at the first sentence that would push the
// running total past the budget; later sentences are never tried. The first
// sentence in iteration order is always kept, even when it alone exceeds the
// budget, so any non-empty input produces non-empty output.
package truncate
