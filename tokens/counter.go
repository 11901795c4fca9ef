package tokens

import (
	"strings"

	"github.com/neurosnap/sentences"
)

// Counter counts words in text.
type Counter interface {
	// Count returns the number of words in the given text.
	Count(text string) int

	// FitsInLimit returns true if the text has at most limit words.
	FitsInLimit(text string, limit int) bool
}

// PunktCounter counts tokens produced by the punkt word tokenizer.
// Safe for concurrent use.
type PunktCounter struct {
	tokenizer *sentences.DefaultWordTokenizer
}

// NewPunktCounter creates a counter with the default punctuation set.
func NewPunktCounter() *PunktCounter {
	return &PunktCounter{
		tokenizer: sentences.NewWordTokenizer(sentences.NewPunctStrings()),
	}
}

// Count returns the number of punkt word tokens in text.
func (c *PunktCounter) Count(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return len(c.tokenizer.Tokenize(text, false))
}

// FitsInLimit returns true if the text has at most limit words.
func (c *PunktCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// FieldCounter counts runs of non-whitespace characters.
type FieldCounter struct{}

// NewFieldCounter creates a whitespace-splitting counter.
func NewFieldCounter() FieldCounter {
	return FieldCounter{}
}

// Count returns the number of whitespace-separated fields in text.
func (FieldCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// FitsInLimit returns true if the text has at most limit words.
func (c FieldCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// CountWords is a convenience function using the punkt counter.
func CountWords(text string) int {
	return NewPunktCounter().Count(text)
}
