package project

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the manifest.
const (
	EnvColor          = "ARROWGRAPH_COLOR"
	EnvFormat         = "ARROWGRAPH_FORMAT"
	EnvJobs           = "ARROWGRAPH_JOBS"
	EnvMaxDiagnostics = "ARROWGRAPH_MAX_DIAGNOSTICS"
)

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

var osLookup LookupFunc = os.LookupEnv

// readDotEnv reads dir/.env without touching the process environment.
func readDotEnv(dir string) (map[string]string, string, error) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", nil
		}
		return nil, "", err
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, "", &ManifestError{Path: path, Msg: "failed to parse .env", Err: err}
	}
	return values, path, nil
}

// ApplyEnv overlays ARROWGRAPH_* values onto cfg. The process environment
// wins over dotenv; envFile names dotenv in errors.
func ApplyEnv(cfg *Config, dotenv map[string]string, envFile string, lookup LookupFunc) error {
	if lookup == nil {
		lookup = osLookup
	}
	get := func(key string) (string, string, bool) {
		if v, ok := lookup(key); ok {
			return strings.TrimSpace(v), "environment", true
		}
		if v, ok := dotenv[key]; ok {
			return strings.TrimSpace(v), envFile, true
		}
		return "", "", false
	}

	if v, origin, ok := get(EnvColor); ok {
		cfg.Output.Color = v
		if err := cfg.Validate(origin); err != nil {
			return err
		}
	}
	if v, origin, ok := get(EnvFormat); ok {
		cfg.Output.Format = v
		if err := cfg.Validate(origin); err != nil {
			return err
		}
	}
	if v, origin, ok := get(EnvJobs); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ManifestError{Path: origin, Msg: EnvJobs + " must be an integer", Err: err}
		}
		cfg.Lint.Jobs = n
		if err := cfg.Validate(origin); err != nil {
			return err
		}
	}
	if v, origin, ok := get(EnvMaxDiagnostics); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ManifestError{Path: origin, Msg: EnvMaxDiagnostics + " must be an integer", Err: err}
		}
		cfg.Lint.MaxDiagnostics = n
		if err := cfg.Validate(origin); err != nil {
			return err
		}
	}
	return nil
}
