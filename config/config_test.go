package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, `\t`, cfg.Delimiter)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 25, cfg.MaxWords)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.HasHeader)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func validConfig() Config {
	cfg := Default()
	cfg.Input = "in.tsv"
	cfg.Output = "out.tsv"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{name: "german", mutate: func(c *Config) { c.Language = "de" }},
		{name: "missing input", mutate: func(c *Config) { c.Input = "" }, wantErr: true},
		{name: "missing output", mutate: func(c *Config) { c.Output = "" }, wantErr: true},
		{name: "unsupported language", mutate: func(c *Config) { c.Language = "fr" }, wantErr: true},
		{name: "zero max words", mutate: func(c *Config) { c.MaxWords = 0 }, wantErr: true},
		{name: "negative max words", mutate: func(c *Config) { c.MaxWords = -4 }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "bad delimiter", mutate: func(c *Config) { c.Delimiter = "ab" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeDelimiter(t *testing.T) {
	tests := []struct {
		input    string
		expected rune
		wantErr  bool
	}{
		{input: `\t`, expected: '\t'},
		{input: "\t", expected: '\t'},
		{input: ",", expected: ','},
		{input: "|", expected: '|'},
		{input: `\x1f`, expected: 0x1f},
		{input: `\u0009`, expected: '\t'},
		{input: `\\`, expected: '\\'},
		{input: `\`, wantErr: true},
		{input: "§", expected: '§'},
		{input: "", wantErr: true},
		{input: "ab", wantErr: true},
		{input: `\n`, wantErr: true},
		{input: `"`, wantErr: true},
		{input: `\q`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := DecodeDelimiter(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r)
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "T", "yes", "Y", "1", "on", " On "} {
		b, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.True(t, b, s)
	}
	for _, s := range []string{"false", "F", "no", "n", "0", "OFF"} {
		b, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.False(t, b, s)
	}
	_, err := ParseBool("maybe")
	assert.ErrorIs(t, err, ErrInvalid)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_LoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "cfg.yaml",
			content: `input: a.tsv
output: b.tsv
delimiter: ','
language: de
max_words: 40
has_header: true
log:
  level: debug
`,
		},
		{
			name: "toml",
			file: "cfg.toml",
			content: `input = "a.tsv"
output = "b.tsv"
delimiter = ","
language = "de"
max_words = 40
has_header = true

[log]
level = "debug"
`,
		},
		{
			name:    "json",
			file:    "cfg.json",
			content: `{"input":"a.tsv","output":"b.tsv","delimiter":",","language":"de","max_words":40,"has_header":true,"log":{"level":"debug"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.LoadFile(writeFile(t, tt.file, tt.content)))

			assert.Equal(t, "a.tsv", cfg.Input)
			assert.Equal(t, "b.tsv", cfg.Output)
			assert.Equal(t, ",", cfg.Delimiter)
			assert.Equal(t, "de", cfg.Language)
			assert.Equal(t, 40, cfg.MaxWords)
			assert.True(t, cfg.HasHeader)
			assert.Equal(t, "debug", cfg.Log.Level)
			// untouched fields keep defaults
			assert.Equal(t, 1, cfg.Workers)
			assert.Equal(t, "text", cfg.Log.Format)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestConfig_LoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "unknown yaml key", file: "c.yaml", content: "max_wordz: 3\n"},
		{name: "unknown toml key", file: "c.toml", content: "max_wordz = 3\n"},
		{name: "unknown json key", file: "c.json", content: `{"max_wordz": 3}`},
		{name: "malformed yaml", file: "c.yml", content: "max_words: [\n"},
		{name: "unsupported extension", file: "c.ini", content: "max_words=3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, cfg.LoadFile(writeFile(t, tt.file, tt.content)))
		})
	}

	cfg := Default()
	assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestConfig_LoadFileEmptyYAML(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.LoadFile(writeFile(t, "empty.yaml", "")))
	assert.Equal(t, Default(), cfg)
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("SEQFILTER_INPUT", "env-in.tsv")
	t.Setenv("SEQFILTER_OUTPUT", "env-out.tsv")
	t.Setenv("SEQFILTER_DELIMITER", "|")
	t.Setenv("SEQFILTER_LANGUAGE", "de")
	t.Setenv("SEQFILTER_MAX_WORDS", "12")
	t.Setenv("SEQFILTER_HAS_HEADER", "yes")
	t.Setenv("SEQFILTER_FIX_UNICODE", "on")
	t.Setenv("SEQFILTER_WORKERS", "3")
	t.Setenv("SEQFILTER_METRICS_FILE", "m.prom")
	t.Setenv("SEQFILTER_LOG_LEVEL", "warn")
	t.Setenv("SEQFILTER_LOG_FORMAT", "json")

	cfg := Default()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "env-in.tsv", cfg.Input)
	assert.Equal(t, "env-out.tsv", cfg.Output)
	assert.Equal(t, "|", cfg.Delimiter)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, 12, cfg.MaxWords)
	assert.True(t, cfg.HasHeader)
	assert.True(t, cfg.FixUnicode)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "m.prom", cfg.MetricsFile)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestConfig_LoadFromEnvErrors(t *testing.T) {
	tests := map[string]string{
		"SEQFILTER_MAX_WORDS":   "lots",
		"SEQFILTER_WORKERS":     "many",
		"SEQFILTER_HAS_HEADER":  "perhaps",
		"SEQFILTER_FIX_UNICODE": "sometimes",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			cfg := Default()
			assert.ErrorIs(t, cfg.LoadFromEnv(), ErrInvalid)
		})
	}
}

func TestSchema(t *testing.T) {
	b, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, SchemaID, doc["$id"])

	s := string(b)
	assert.Contains(t, s, `"max_words"`)
	assert.Contains(t, s, `"fix_unicode"`)
	assert.Contains(t, s, `"de"`)
}
