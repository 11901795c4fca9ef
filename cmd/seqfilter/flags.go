package main

import (
	"strconv"

	"github.com/spf13/pflag"

	"github.com/randalmurphal/seqfilter/config"
)

// boolValue is a pflag.Value accepting the yes/no/on/off spellings of
// config.ParseBool. A value is required, so "--header yes" and
// "--header=yes" both work.
type boolValue struct {
	p *bool
}

func (b boolValue) String() string {
	if b.p == nil {
		return "false"
	}
	return strconv.FormatBool(*b.p)
}

func (b boolValue) Set(s string) error {
	v, err := config.ParseBool(s)
	if err != nil {
		return err
	}
	*b.p = v
	return nil
}

func (b boolValue) Type() string {
	return "bool"
}

func boolVar(fs *pflag.FlagSet, p *bool, name, usage string) {
	fs.Var(boolValue{p: p}, name, usage)
}

// cliFlags holds the raw flag values before they are merged into a Config.
type cliFlags struct {
	configFile  string
	input       string
	output      string
	delimiter   string
	language    string
	maxWords    int
	header      bool
	fixUnicode  bool
	workers     int
	watch       bool
	metricsFile string
	crlf        bool
	lazyQuotes  bool
	logLevel    string
	logFormat   string
}

func (f *cliFlags) register(fs *pflag.FlagSet) {
	def := config.Default()

	fs.StringVarP(&f.configFile, "config", "c", "", "config file (.yaml, .yml, .toml or .json)")
	fs.StringVarP(&f.input, "input", "i", "", "path to input file")
	fs.StringVarP(&f.output, "output", "o", "", "path to output file")
	fs.StringVarP(&f.delimiter, "delimiter", "d", def.Delimiter, `column delimiter; escape sequences like \t are decoded`)
	fs.StringVarP(&f.language, "language", "l", def.Language, "language code for sentence segmentation (en, de)")
	fs.IntVarP(&f.maxWords, "max-words", "m", def.MaxWords, "maximum number of words in a src/tgt side")
	boolVar(fs, &f.header, "header", "input has a header row (true/false, yes/no, on/off, 1/0)")
	boolVar(fs, &f.fixUnicode, "fix-unicode", "repair mojibake and HTML entities before segmentation")
	fs.IntVar(&f.workers, "workers", def.Workers, "concurrent segmentation workers; output order is preserved")
	fs.BoolVar(&f.watch, "watch", false, "re-run whenever the input file changes")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after each run")
	fs.BoolVar(&f.crlf, "crlf", false, "write CRLF line endings")
	fs.BoolVar(&f.lazyQuotes, "lazy-quotes", false, "tolerate bare quotes in input fields")
	fs.StringVar(&f.logLevel, "log-level", def.Log.Level, "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", def.Log.Format, "log format: text or json")
}

// apply copies explicitly set flags over cfg.
func (f *cliFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string) bool { return fs.Changed(name) }

	if set("input") {
		cfg.Input = f.input
	}
	if set("output") {
		cfg.Output = f.output
	}
	if set("delimiter") {
		cfg.Delimiter = f.delimiter
	}
	if set("language") {
		cfg.Language = f.language
	}
	if set("max-words") {
		cfg.MaxWords = f.maxWords
	}
	if set("header") {
		cfg.HasHeader = f.header
	}
	if set("fix-unicode") {
		cfg.FixUnicode = f.fixUnicode
	}
	if set("workers") {
		cfg.Workers = f.workers
	}
	if set("watch") {
		cfg.Watch = f.watch
	}
	if set("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if set("crlf") {
		cfg.CRLF = f.crlf
	}
	if set("lazy-quotes") {
		cfg.LazyQuotes = f.lazyQuotes
	}
	if set("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if set("log-format") {
		cfg.Log.Format = f.logFormat
	}
}
