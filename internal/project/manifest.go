package project

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the merged configuration the CLI runs with.
type Config struct {
	Lint   LintConfig   `toml:"lint"`
	Output OutputConfig `toml:"output"`
}

type LintConfig struct {
	MaxDiagnostics   int      `toml:"max_diagnostics"`
	WarningsAsErrors bool     `toml:"warnings_as_errors"`
	NoWarnings       bool     `toml:"no_warnings"`
	Extensions       []string `toml:"extensions"`
	Jobs             int      `toml:"jobs"`
	// Cache enables the on-disk lint result cache.
	Cache bool `toml:"cache"`
}

type OutputConfig struct {
	// Format is "" (command default), pretty, json, sarif, short or msgpack.
	Format   string `toml:"format"`
	Color    string `toml:"color"`
	PathMode string `toml:"path_mode"`
}

// Manifest is a discovered arrowgraph.toml together with the merged Config.
type Manifest struct {
	// Path is empty when no manifest was found and defaults are in use.
	Path   string
	Root   string
	Config Config
	// EnvFile is the .env that contributed overrides, if any.
	EnvFile string
}

var (
	validFormats   = []string{"", "pretty", "json", "sarif", "short", "msgpack"}
	validColors    = []string{"auto", "on", "off"}
	validPathModes = []string{"auto", "absolute", "relative", "basename"}
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Lint: LintConfig{
			MaxDiagnostics: 100,
			Extensions:     []string{".arrow"},
		},
		Output: OutputConfig{
			Color:    "auto",
			PathMode: "relative",
		},
	}
}

// LoadConfig decodes path on top of Default and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, &ManifestError{Path: path, Msg: "failed to parse TOML", Err: err}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, manifestErr(path, "unknown key(s): %s", strings.Join(keys, ", "))
	}
	// пустой список расширений в файле означает "по умолчанию"
	if meta.IsDefined("lint", "extensions") && len(cfg.Lint.Extensions) == 0 {
		cfg.Lint.Extensions = Default().Lint.Extensions
	}
	if err := cfg.Validate(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalises string fields and checks ranges. origin names the
// source in errors.
func (c *Config) Validate(origin string) error {
	if c.Lint.MaxDiagnostics < 0 {
		return manifestErr(origin, "[lint].max_diagnostics must be >= 0, got %d", c.Lint.MaxDiagnostics)
	}
	if c.Lint.Jobs < 0 {
		return manifestErr(origin, "[lint].jobs must be >= 0, got %d", c.Lint.Jobs)
	}
	for i, ext := range c.Lint.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
			return manifestErr(origin, "[lint].extensions: %q is not a file extension like \".arrow\"", c.Lint.Extensions[i])
		}
		c.Lint.Extensions[i] = ext
	}

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if !slices.Contains(validFormats, c.Output.Format) {
		return manifestErr(origin, "[output].format: unknown format %q", c.Output.Format)
	}
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if !slices.Contains(validColors, c.Output.Color) {
		return manifestErr(origin, "[output].color must be auto|on|off, got %q", c.Output.Color)
	}
	c.Output.PathMode = strings.ToLower(strings.TrimSpace(c.Output.PathMode))
	if c.Output.PathMode == "" {
		c.Output.PathMode = "relative"
	}
	if !slices.Contains(validPathModes, c.Output.PathMode) {
		return manifestErr(origin, "[output].path_mode: unknown mode %q", c.Output.PathMode)
	}
	return nil
}

// Discover finds arrowgraph.toml above startDir, applies .env and process
// environment overrides and returns the result. Without a manifest the
// defaults are used and Root is startDir.
func Discover(startDir string) (*Manifest, error) {
	return DiscoverWithEnv(startDir, osLookup)
}

// DiscoverWithEnv is Discover with an injectable environment lookup.
func DiscoverWithEnv(startDir string, lookup LookupFunc) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	m := &Manifest{Config: Default()}
	if ok {
		cfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		m.Path, m.Root, m.Config = path, filepath.Dir(path), cfg
	} else {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return nil, err
		}
		m.Root = root
	}

	dotenv, envFile, err := readDotEnv(m.Root)
	if err != nil {
		return nil, err
	}
	m.EnvFile = envFile
	if err := ApplyEnv(&m.Config, dotenv, envFile, lookup); err != nil {
		return nil, err
	}
	return m, nil
}
