// Package buildinfo reports the version stamped into the binary.
//
// Release builds set the variables with -ldflags:
//
//	-X 'github.com/nedz/interviewbot/core/buildinfo.Version=v0.3.0'
//	-X 'github.com/nedz/interviewbot/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/nedz/interviewbot/core/buildinfo.Date=2026-10-01T09:00:00Z'
//
// Unstamped builds fall back to the VCS data recorded by the Go toolchain.
package buildinfo

import (
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "local"
	Date    = ""
)

// Info is the resolved build identity.
type Info struct {
	Version string
	Commit  string
	Date    string
	Dirty   bool
}

var current = sync.OnceValue(func() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	return fillFromSettings(info, bi.Settings)
})

// Current returns the build identity, resolved once per process.
func Current() Info { return current() }

func fillFromSettings(info Info, settings []debug.BuildSetting) Info {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "local" && s.Value != "" {
				info.Commit = s.Value[:min(len(s.Value), 12)]
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}
