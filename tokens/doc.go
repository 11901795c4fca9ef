// Package tokens counts words in sentence text.
//
// The sentence budget is expressed in words, so every segmenter needs a way
// to turn a sentence's surface string into a token count. This package
// provides that as a small interface with two implementations.
//
// # Counter
//
// The Counter interface provides counting methods:
//
//	counter := tokens.NewPunktCounter()
//	count := counter.Count("The cat sat.")      // 3
//	fits := counter.FitsInLimit("text", 25)     // true if <= 25 words
//
// PunktCounter uses the punkt word tokenizer from
// github.com/neurosnap/sentences, which keeps trailing punctuation attached
// to its word. FieldCounter splits on Unicode whitespace only and suits
// corpora that are already tokenized.
//
// For one-off counting, use the convenience function:
//
//	count := tokens.CountWords("Hello, world!")
package tokens
