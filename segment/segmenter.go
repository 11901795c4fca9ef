package segment

import (
	"strings"

	"github.com/neurosnap/sentences"

	"github.com/randalmurphal/seqfilter/tokens"
	"github.com/randalmurphal/seqfilter/truncate"
)

// Segmenter splits text into ordered sentences.
type Segmenter interface {
	// Segment returns the sentences of text in document order.
	// Blank text yields no sentences.
	Segment(text string) []truncate.Sentence
}

// Options configures a segmenter built through the registry.
type Options struct {
	// FixUnicode repairs mojibake and HTML entities before segmentation.
	FixUnicode bool

	// Counter computes word counts. Nil uses tokens.NewPunktCounter().
	Counter tokens.Counter
}

func (o Options) counter() tokens.Counter {
	if o.Counter != nil {
		return o.Counter
	}
	return tokens.NewPunktCounter()
}

// Punkt segments text with a trained punkt sentence tokenizer.
type Punkt struct {
	tokenizer *sentences.DefaultSentenceTokenizer
	counter   tokens.Counter
}

// NewPunkt wraps a punkt tokenizer. A nil counter uses the punkt word counter.
func NewPunkt(tokenizer *sentences.DefaultSentenceTokenizer, counter tokens.Counter) *Punkt {
	if counter == nil {
		counter = tokens.NewPunktCounter()
	}
	return &Punkt{tokenizer: tokenizer, counter: counter}
}

// Segment returns trimmed, non-empty sentences in document order.
func (p *Punkt) Segment(text string) []truncate.Sentence {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	raw := p.tokenizer.Tokenize(text)
	out := make([]truncate.Sentence, 0, len(raw))
	for _, s := range raw {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		out = append(out, truncate.Sentence{Text: t, Words: p.counter.Count(t)})
	}
	return out
}

// Fixing applies FixText to every input before delegating.
type Fixing struct {
	Inner Segmenter
}

// Segment repairs text and segments it with the wrapped segmenter.
func (f Fixing) Segment(text string) []truncate.Sentence {
	return f.Inner.Segment(FixText(text))
}
