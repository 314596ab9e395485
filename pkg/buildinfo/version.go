// Package buildinfo reports which plantforge build is running.
//
// Release builds stamp the variables with ldflags:
//
//	-X github.com/plantforge/plantforge/pkg/buildinfo.Version=v1.0.0
//	-X github.com/plantforge/plantforge/pkg/buildinfo.Commit=$(git rev-parse HEAD)
//	-X github.com/plantforge/plantforge/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)
//
// Builds without ldflags (go install, go build from a checkout) fall back to
// the module version and VCS stamp embedded by the toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Unstamped values.
const (
	unknownVersion = "dev"
	unknownCommit  = "none"
	unknownDate    = "unknown"
)

var (
	Version = unknownVersion
	Commit  = unknownCommit
	Date    = unknownDate
)

func init() {
	fill(debug.ReadBuildInfo)
}

// fill copies the embedded module version and VCS settings into any
// variable ldflags left unset.
func fill(read func() (*debug.BuildInfo, bool)) {
	bi, ok := read()
	if !ok {
		return
	}
	if v := bi.Main.Version; Version == unknownVersion && v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == unknownCommit:
			Commit = s.Value
		case s.Key == "vcs.time" && Date == unknownDate:
			Date = s.Value
		}
	}
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
