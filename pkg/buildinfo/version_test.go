package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func reset(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	Version, Commit, Date = unknownVersion, unknownCommit, unknownDate
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func embedded(version string, settings ...debug.BuildSetting) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		bi := &debug.BuildInfo{Settings: settings}
		bi.Main.Version = version
		return bi, true
	}
}

func TestFillFromEmbeddedInfo(t *testing.T) {
	reset(t)
	fill(embedded("v0.4.1",
		debug.BuildSetting{Key: "vcs.revision", Value: "abc123"},
		debug.BuildSetting{Key: "vcs.time", Value: "2026-10-01T08:00:00Z"},
	))
	if Version != "v0.4.1" || Commit != "abc123" || Date != "2026-10-01T08:00:00Z" {
		t.Errorf("got %s %s %s", Version, Commit, Date)
	}
}

func TestFillKeepsLdflags(t *testing.T) {
	reset(t)
	Version, Commit = "v1.0.0", "release"
	fill(embedded("v0.4.1", debug.BuildSetting{Key: "vcs.revision", Value: "abc123"}))
	if Version != "v1.0.0" || Commit != "release" {
		t.Errorf("ldflags overwritten: %s %s", Version, Commit)
	}
	if Date != unknownDate {
		t.Errorf("Date = %s, want %s", Date, unknownDate)
	}
}

func TestFillIgnoresDevelAndMissingInfo(t *testing.T) {
	reset(t)
	fill(embedded("(devel)"))
	fill(func() (*debug.BuildInfo, bool) { return nil, false })
	if Version != unknownVersion {
		t.Errorf("Version = %s, want %s", Version, unknownVersion)
	}
}

func TestTemplate(t *testing.T) {
	reset(t)
	Version = "v2.0.0"
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v2.0.0\n") {
		t.Errorf("Template() = %q", got)
	}
}
