package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/seqfilter/segment"
)

// ErrInvalid indicates a configuration value failed validation.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes every environment variable read by LoadFromEnv.
const EnvPrefix = "SEQFILTER_"

// Config holds the settings for one filtering run.
type Config struct {
	// Input is the path of the delimited source/target file.
	Input string `json:"input" yaml:"input" toml:"input" jsonschema:"description=Path to the input file"`

	// Output is the path the filtered file is written to.
	Output string `json:"output" yaml:"output" toml:"output" jsonschema:"description=Path to the output file"`

	// Delimiter separates columns. Escape sequences such as \t are decoded.
	Delimiter string `json:"delimiter" yaml:"delimiter" toml:"delimiter" jsonschema:"description=Column delimiter; escape sequences like \\t are decoded,default=\\t"`

	// Language selects the sentence segmentation model.
	Language string `json:"language" yaml:"language" toml:"language" jsonschema:"description=Segmentation language code,enum=en,enum=de,default=en"`

	// MaxWords is the word budget for each side of a record.
	MaxWords int `json:"max_words" yaml:"max_words" toml:"max_words" jsonschema:"description=Maximum words kept per side,minimum=1,default=25"`

	// HasHeader copies the first row through unprocessed.
	HasHeader bool `json:"has_header" yaml:"has_header" toml:"has_header" jsonschema:"description=Input has a header row"`

	// FixUnicode repairs mojibake and HTML entities before segmentation.
	FixUnicode bool `json:"fix_unicode" yaml:"fix_unicode" toml:"fix_unicode" jsonschema:"description=Repair mojibake and HTML entities before segmentation"`

	// Workers is the number of concurrent segmentation workers.
	Workers int `json:"workers" yaml:"workers" toml:"workers" jsonschema:"description=Concurrent segmentation workers,minimum=1,default=1"`

	// CRLF writes \r\n line endings.
	CRLF bool `json:"crlf" yaml:"crlf" toml:"crlf" jsonschema:"description=Write CRLF line endings"`

	// LazyQuotes tolerates bare quotes in unquoted input fields.
	LazyQuotes bool `json:"lazy_quotes" yaml:"lazy_quotes" toml:"lazy_quotes" jsonschema:"description=Tolerate bare quotes in input fields"`

	// Watch re-runs the filter whenever the input file changes.
	Watch bool `json:"watch" yaml:"watch" toml:"watch" jsonschema:"description=Re-run when the input file changes"`

	// MetricsFile receives Prometheus text exposition after each run.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" toml:"metrics_file,omitempty" jsonschema:"description=Prometheus textfile written after each run"`

	// Log configures logging.
	Log LogConfig `json:"log" yaml:"log" toml:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" toml:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" toml:"format" jsonschema:"enum=text,enum=json,default=text"`
}

// Default returns a Config with sensible defaults.
// Input and Output must still be set before use.
func Default() Config {
	return Config{
		Delimiter: `\t`,
		Language:  "en",
		MaxWords:  25,
		Workers:   1,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFile decodes a config file over c. The format is chosen by extension:
// .yaml/.yml, .toml or .json. Unknown keys are rejected.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(b), c)
		if err != nil {
			return fmt.Errorf("parse toml config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%w: unknown keys in %s: %v", ErrInvalid, path, undecoded)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return fmt.Errorf("parse json config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrInvalid, filepath.Ext(path))
	}
	return nil
}

// LoadFromEnv overrides fields from SEQFILTER_* environment variables.
//
// Supported variables:
//   - SEQFILTER_INPUT, SEQFILTER_OUTPUT
//   - SEQFILTER_DELIMITER
//   - SEQFILTER_LANGUAGE
//   - SEQFILTER_MAX_WORDS
//   - SEQFILTER_HAS_HEADER, SEQFILTER_FIX_UNICODE
//   - SEQFILTER_WORKERS
//   - SEQFILTER_METRICS_FILE
//   - SEQFILTER_LOG_LEVEL, SEQFILTER_LOG_FORMAT
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv(EnvPrefix + "INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv(EnvPrefix + "OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvPrefix + "DELIMITER"); v != "" {
		c.Delimiter = v
	}
	if v := os.Getenv(EnvPrefix + "LANGUAGE"); v != "" {
		c.Language = v
	}
	if v := os.Getenv(EnvPrefix + "MAX_WORDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sMAX_WORDS=%q is not an integer", ErrInvalid, EnvPrefix, v)
		}
		c.MaxWords = n
	}
	if v := os.Getenv(EnvPrefix + "HAS_HEADER"); v != "" {
		b, err := ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sHAS_HEADER: %w", EnvPrefix, err)
		}
		c.HasHeader = b
	}
	if v := os.Getenv(EnvPrefix + "FIX_UNICODE"); v != "" {
		b, err := ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sFIX_UNICODE: %w", EnvPrefix, err)
		}
		c.FixUnicode = b
	}
	if v := os.Getenv(EnvPrefix + "WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sWORKERS=%q is not an integer", ErrInvalid, EnvPrefix, v)
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvPrefix + "METRICS_FILE"); v != "" {
		c.MetricsFile = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input is required", ErrInvalid)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output is required", ErrInvalid)
	}
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	if !segment.IsRegistered(c.Language) {
		return fmt.Errorf("%w: %w: %q (choose from %v)", ErrInvalid, segment.ErrUnsupportedLanguage, c.Language, segment.Available())
	}
	if c.MaxWords <= 0 {
		return fmt.Errorf("%w: max_words must be > 0, got %d", ErrInvalid, c.MaxWords)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalid, c.Workers)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level must be debug, info, warn or error, got %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format must be text or json, got %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// DelimiterRune decodes Delimiter into the single rune used for columns.
func (c *Config) DelimiterRune() (rune, error) {
	return DecodeDelimiter(c.Delimiter)
}

// DecodeDelimiter decodes escape sequences (\t, \x1f, \u0009, \\) and
// requires the result to be exactly one character. A lone backslash is an
// unfinished escape; a backslash delimiter is written \\.
func DecodeDelimiter(s string) (rune, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: delimiter is empty", ErrInvalid)
	}
	if s == `\` {
		return 0, fmt.Errorf("%w: delimiter %q ends in an unfinished escape, use %q", ErrInvalid, s, `\\`)
	}

	decoded := s
	if utf8.RuneCountInString(s) > 1 {
		unq, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
		if err != nil {
			return 0, fmt.Errorf("%w: delimiter %q: %v", ErrInvalid, s, err)
		}
		decoded = unq
	}

	if utf8.RuneCountInString(decoded) != 1 {
		return 0, fmt.Errorf("%w: delimiter %q must decode to a single character", ErrInvalid, s)
	}
	r, _ := utf8.DecodeRuneInString(decoded)
	if r == 0 || r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: delimiter %q is not allowed", ErrInvalid, s)
	}
	return r, nil
}

// ParseBool accepts true/t/yes/y/1/on and false/f/no/n/0/off, case-insensitive.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1", "on":
		return true, nil
	case "false", "f", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalid, s)
	}
}
