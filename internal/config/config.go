// Package config loads jsonsql settings from YAML or CUE files.
//
// Every source is unified with the embedded #Config schema, which owns the
// allowed values and the defaults, then decoded into Config.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/function"
	"github.com/roach88/jsonsql/internal/register"
)

//go:embed schema.cue
var schemaCUE string

// Config holds every setting.
type Config struct {
	FloatToInt    string `json:"float_to_int" yaml:"float_to_int"`
	NegativeIndex bool   `json:"negative_index" yaml:"negative_index"`
	Strict        bool   `json:"strict" yaml:"strict"`
	LogLevel      string `json:"log_level" yaml:"log_level"`
	Database      string `json:"database" yaml:"database"`
}

// ValidationError reports a setting the schema rejected.
type ValidationError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ValidationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the schema defaults.
func Default() Config {
	cfg, err := decode(cuecontext.New(), nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return cfg
}

// Load reads path. The extension picks the format: .cue, or .yaml/.yml.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return ParseCUE(path, data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
}

// ParseCUE parses CUE source. filename is used in error positions.
func ParseCUE(filename string, data []byte) (Config, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}
	return decode(ctx, &v)
}

// ParseYAML parses a YAML document.
func ParseYAML(data []byte) (Config, error) {
	fields := map[string]any{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.Encode(fields)
	if err := v.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}
	return decode(ctx, &v)
}

// decode unifies v with #Config and decodes the result. A nil v yields the
// defaults.
func decode(ctx *cue.Context, v *cue.Value) (Config, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, err
	}
	merged := schema.LookupPath(cue.ParsePath("#Config"))
	if v != nil {
		merged = merged.Unify(*v)
	}
	if err := merged.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}
	var cfg Config
	if err := merged.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	return cfg, nil
}

// RegisterOptions returns the function options the settings select.
func (c Config) RegisterOptions() (register.Options, error) {
	policy, err := coerce.ParseIntPolicy(c.FloatToInt)
	if err != nil {
		return register.Options{}, &ValidationError{Field: "float_to_int", Message: err.Error()}
	}
	return register.Options{Function: function.Options{
		IntPolicy:     policy,
		NegativeIndex: c.NegativeIndex,
		Strict:        c.Strict,
	}}, nil
}

// Level returns the slog level for LogLevel. Unknown names are Info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// formatCUEError keeps the first CUE error with its field path and position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	ve := &ValidationError{Field: strings.Join(first.Path(), "."), Message: first.Error()}
	if ve.Field == "" {
		ve.Field = "config"
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		ve.Pos = positions[0]
	}
	return ve
}
