package main

import (
	"fmt"
	"runtime/debug"

	"github.com/marcus/dash/cmd"
)

// Version is injected by release builds with -ldflags "-X main.Version=...".
var Version = "dev"

// resolveVersion prefers an injected version, then the module version from
// `go install dash@vX`, then a devel+<rev> string from VCS build settings.
func resolveVersion(v string) string {
	if v != "" && v != "dev" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if mv := info.Main.Version; mv != "" && mv != "(devel)" {
		return mv
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	rev := settings["vcs.revision"]
	if rev == "" {
		return v
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	out := fmt.Sprintf("devel+%s", rev)
	if settings["vcs.modified"] == "true" {
		out += "+dirty"
	}
	return out
}

func main() {
	cmd.SetVersion(resolveVersion(Version))
	cmd.Execute()
}
