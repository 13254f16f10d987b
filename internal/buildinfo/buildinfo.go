// Package buildinfo provides build metadata for sha256sum binaries.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the sha256sum version, injected with -ldflags -X.
	Version string
	// Commit is the source control revision, injected with -ldflags -X.
	Commit string
	// Date is the build timestamp, injected with -ldflags -X.
	Date string
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info contains normalized build metadata.
type Info struct {
	Version string
	Commit  string
	Date    string
	Go      string
	OS      string
	Arch    string
}

// Get returns build metadata. Values not injected at link time fall back to
// what the Go toolchain embedded (module version, vcs settings) and then to
// "dev"/"unknown".
func Get() Info {
	info := Info{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.Date == "":
				info.Date = s.Value
			}
		}
	}

	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

// String formats build metadata for --version output.
func (i Info) String() string {
	return fmt.Sprintf("sha256sum %s\ncommit: %s\nbuilt:  %s\ngo:     %s\nos/arch:%s/%s", i.Version, i.Commit, i.Date, i.Go, i.OS, i.Arch)
}
