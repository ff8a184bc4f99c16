package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"arrowgraph/internal/diagfmt"
	"arrowgraph/internal/project"
)

// runConfig is the effective configuration of one command invocation:
// explicit flags over ARROWGRAPH_* env over arrowgraph.toml over defaults.
type runConfig struct {
	manifest       *project.Manifest
	color          bool
	pathMode       diagfmt.PathMode
	maxDiagnostics int
	quiet          bool
	timings        bool
}

var discoverManifest = func() (*project.Manifest, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return project.Discover(wd)
}

func loadRunConfig(cmd *cobra.Command) (*runConfig, error) {
	manifest, err := discoverManifest()
	if err != nil {
		return nil, err
	}
	cfg := manifest.Config
	flags := cmd.Root().PersistentFlags()

	colorMode := cfg.Output.Color
	if flags.Changed("color") {
		if colorMode, err = flags.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	color, err := resolveColor(colorMode)
	if err != nil {
		return nil, err
	}

	maxDiagnostics := cfg.Lint.MaxDiagnostics
	if flags.Changed("max-diagnostics") {
		if maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if maxDiagnostics < 0 {
			return nil, fmt.Errorf("--max-diagnostics must be >= 0, got %d", maxDiagnostics)
		}
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(cfg.Output.PathMode)
	if err != nil {
		return nil, err
	}

	return &runConfig{
		manifest:       manifest,
		color:          color,
		pathMode:       pathMode,
		maxDiagnostics: maxDiagnostics,
		quiet:          quiet,
		timings:        timings,
	}, nil
}

// resolveFormat picks the command's --format flag when set, else the
// configured format when the command supports it, else def.
func (rc *runConfig) resolveFormat(cmd *cobra.Command, allowed []string, def string) (string, error) {
	if cmd.Flags().Changed("format") {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return "", fmt.Errorf("failed to get format flag: %w", err)
		}
		format = strings.ToLower(strings.TrimSpace(format))
		if !slices.Contains(allowed, format) {
			return "", fmt.Errorf("unknown format %q (expected %s)", format, strings.Join(allowed, "|"))
		}
		return format, nil
	}
	if f := rc.manifest.Config.Output.Format; f != "" && slices.Contains(allowed, f) {
		return f, nil
	}
	return def, nil
}

func resolveColor(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
			return false, nil
		}
		return isTerminal(os.Stdout), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// uiMode selects the lint progress UI.
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

var uiModes = map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "on": uiModeOn, "off": uiModeOff}

func readUIMode(value string) (uiMode, error) {
	mode, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return uiModeAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return mode, nil
}

// useTUI reports whether the progress UI should run; auto needs a terminal
// on both stdout and stderr.
func (m uiMode) useTUI() bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return isTerminal(os.Stdout) && isTerminal(os.Stderr)
}
