package trackmeta

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the trackmeta module.
const Version = "0.1.0"

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`   // VCS commit, "unknown" outside a checkout
	Modified  bool   `json:"modified"`   // built from a dirty tree
	GoVersion string `json:"go_version"`
}

// GetBuildInfo reads VCS stamping from the binary's embedded build info.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Revision:  "unknown",
		GoVersion: runtime.Version(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String formats the build info for -version flags.
func (b BuildInfo) String() string {
	rev := b.Revision
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if b.Modified {
		rev += "-dirty"
	}
	return fmt.Sprintf("trackmeta %s (%s, %s)", b.Version, rev, b.GoVersion)
}
