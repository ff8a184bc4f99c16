// Package version holds build metadata for the arrowgraph CLI.
// The variables are overridden at build time via -ldflags "-X arrowgraph/internal/version.Version=...".
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"
	// GitCommit is the optional commit hash.
	GitCommit = ""
	// GitMessage is the optional commit subject.
	GitMessage = ""
	// BuildDate is the optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the serialisable form used by `arrowgraph version --format json`.
type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

func Current() Info {
	return Info{
		Version:    Version,
		GitCommit:  GitCommit,
		GitMessage: GitMessage,
		BuildDate:  BuildDate,
	}
}

// Colored renders Version with each numeric component in its own colour.
// fatih/color honours NO_COLOR and non-terminal outputs on its own.
func Colored() string {
	core, suffix := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	return fmt.Sprintf("%s.%s.%s%s",
		majorColor.Sprint(parts[0]),
		minorColor.Sprint(parts[1]),
		patchColor.Sprint(parts[2]),
		suffix)
}
