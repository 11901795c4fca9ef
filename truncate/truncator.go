package truncate

import (
	"fmt"
	"strings"
)

// Direction selects which end of a document survives truncation.
type Direction int

const (
	// RetainHead keeps sentences from the start of the document.
	RetainHead Direction = iota

	// RetainTail keeps sentences from the end of the document.
	RetainTail
)

// String returns "head" or "tail".
func (d Direction) String() string {
	switch d {
	case RetainHead:
		return "head"
	case RetainTail:
		return "tail"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Separator joins selected sentences in the filtered output.
const Separator = " "

// Sentence is one segmented unit of text.
type Sentence struct {
	// Text is the verbatim surface string.
	Text string

	// Words is the number of tokens in the sentence.
	Words int
}

// Selection is the result of trimming a sentence sequence.
type Selection struct {
	// Sentences holds the kept sentences in document order.
	Sentences []Sentence

	// Words is the total word count of Sentences.
	Words int

	// Dropped is the number of input sentences that were not kept.
	Dropped int

	// Oversized reports that the selection is a single sentence whose
	// word count exceeds the budget.
	Oversized bool
}

// Text joins the selected sentences with a single space.
func (s Selection) Text() string {
	if len(s.Sentences) == 0 {
		return ""
	}
	parts := make([]string, len(s.Sentences))
	for i, sent := range s.Sentences {
		parts[i] = sent.Text
	}
	return strings.Join(parts, Separator)
}

// Select picks a contiguous run of sentences from the end named by dir
// whose total word count stays within maxWords. The first candidate is
// always kept. Any direction other than RetainTail behaves as RetainHead.
func Select(sents []Sentence, maxWords int, dir Direction) Selection {
	if len(sents) == 0 {
		return Selection{}
	}

	var kept []Sentence
	if dir == RetainTail {
		kept = accumulate(sents, maxWords, len(sents)-1, -1)
		reverse(kept)
	} else {
		kept = accumulate(sents, maxWords, 0, 1)
	}

	words := 0
	for _, s := range kept {
		words += s.Words
	}

	return Selection{
		Sentences: kept,
		Words:     words,
		Dropped:   len(sents) - len(kept),
		Oversized: len(kept) == 1 && words > maxWords,
	}
}

// Sentences trims sents to maxWords and returns the kept sentences joined
// by a single space in document order. Empty input yields "".
func Sentences(sents []Sentence, maxWords int, dir Direction) string {
	return Select(sents, maxWords, dir).Text()
}

// accumulate walks sents from start in steps of step, collecting sentences
// until the next one would exceed maxWords.
func accumulate(sents []Sentence, maxWords, start, step int) []Sentence {
	var kept []Sentence
	count := 0
	for i := start; i >= 0 && i < len(sents); i += step {
		s := sents[i]
		if len(kept) > 0 && count+s.Words > maxWords {
			break
		}
		kept = append(kept, s)
		count += s.Words
	}
	return kept
}

func reverse(s []Sentence) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
