package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsonsql/internal/coerce"
)

func TestDefault(t *testing.T) {
	assert.Equal(t, Config{
		FloatToInt: "integral",
		LogLevel:   "info",
		Database:   ":memory:",
	}, Default())
}

func TestParseYAML(t *testing.T) {
	cfg, err := ParseYAML([]byte("float_to_int: truncate\nstrict: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "truncate", cfg.FloatToInt)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.NegativeIndex)
	assert.Equal(t, ":memory:", cfg.Database)
}

func TestParseYAMLEmpty(t *testing.T) {
	cfg, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseCUE(t *testing.T) {
	cfg, err := ParseCUE("jsonsql.cue", []byte(`
		negative_index: true
		log_level:      "debug"
		database:       "docs.db"
	`))
	require.NoError(t, err)
	assert.True(t, cfg.NegativeIndex)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "docs.db", cfg.Database)
	assert.Equal(t, "integral", cfg.FloatToInt)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown policy", "float_to_int: round\n"},
		{"wrong type", "strict: yes please\n"},
		{"unknown field", "colour: blue\n"},
		{"empty database", "database: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.yaml))
			require.Error(t, err)
			var ve *ValidationError
			assert.True(t, errors.As(err, &ve), err.Error())
		})
	}
}

func TestCUESyntaxErrorHasPosition(t *testing.T) {
	_, err := ParseCUE("bad.cue", []byte("strict: {"))
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "bad.cue")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "jsonsql.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("float_to_int: reject\n"), 0o644))
	cfg, err := Load(yml)
	require.NoError(t, err)
	assert.Equal(t, "reject", cfg.FloatToInt)

	cueFile := filepath.Join(dir, "jsonsql.cue")
	require.NoError(t, os.WriteFile(cueFile, []byte("strict: true\n"), 0o644))
	cfg, err = Load(cueFile)
	require.NoError(t, err)
	assert.True(t, cfg.Strict)

	_, err = Load(filepath.Join(dir, "jsonsql.toml"))
	assert.Error(t, err)
}

func TestRegisterOptions(t *testing.T) {
	cfg := Default()
	cfg.FloatToInt = "truncate"
	cfg.NegativeIndex = true
	opts, err := cfg.RegisterOptions()
	require.NoError(t, err)
	assert.Equal(t, coerce.Truncate, opts.Function.IntPolicy)
	assert.True(t, opts.Function.NegativeIndex)

	cfg.FloatToInt = "nearest"
	_, err = cfg.RegisterOptions()
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "warn"}.Level())
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "loud"}.Level())
}
