// Package config holds the settings for a filtering run.
//
// Settings come from four layers, later layers overriding earlier ones:
//
//  1. Default()
//  2. a config file (LoadFile: .yaml/.yml, .toml or .json)
//  3. SEQFILTER_* environment variables (LoadFromEnv)
//  4. command-line flags
//
// Validate checks the merged result. Schema renders a JSON Schema for the
// file format so editors can offer completion.
//
// Example YAML:
//
//	input: data/train.tsv
//	output: data/train.filtered.tsv
//	delimiter: '\t'
//	language: en
//	max_words: 25
//	has_header: true
package config
