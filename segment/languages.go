package segment

import (
	_ "embed"
	"fmt"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// germanTraining is the punkt model for German from
// github.com/neurosnap/sentences (MIT). The library's data package only
// bundles the English model.
//
//go:embed punkt/german.json
var germanTraining []byte

func init() {
	Register("en", newEnglish)
	Register("de", newGerman)
}

func newEnglish(opts Options) (Segmenter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load english punkt model: %w", err)
	}
	return NewPunkt(tok, opts.counter()), nil
}

func newGerman(opts Options) (Segmenter, error) {
	return loadTraining("german", germanTraining, opts)
}

// loadTraining builds a punkt segmenter from JSON training data.
func loadTraining(name string, training []byte, opts Options) (Segmenter, error) {
	if len(training) == 0 {
		return nil, fmt.Errorf("punkt model %s is empty", name)
	}
	storage, err := sentences.LoadTraining(training)
	if err != nil {
		return nil, fmt.Errorf("load punkt model %s: %w", name, err)
	}
	return NewPunkt(sentences.NewSentenceTokenizer(storage), opts.counter()), nil
}
