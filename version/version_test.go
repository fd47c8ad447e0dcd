package version

import (
	"testing"
	"time"
)

func setBuild(t *testing.T, version, commit, branch, built string) {
	t.Helper()
	prev := [4]string{Version, GitCommit, GitBranch, BuildTime}
	Version, GitCommit, GitBranch, BuildTime = version, commit, branch, built
	t.Cleanup(func() {
		Version, GitCommit, GitBranch, BuildTime = prev[0], prev[1], prev[2], prev[3]
	})
}

func TestCurrent(t *testing.T) {
	setBuild(t, "1.2.0", "abc1234def5678", "main", "2026-03-01T10:30:00Z")

	info := Current()
	if info.Version != "1.2.0" || info.Branch != "main" {
		t.Errorf("Current() = %+v", info)
	}
	if info.Commit != "abc1234" {
		t.Errorf("Commit = %q, want it cut to abc1234", info.Commit)
	}
	if want := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC); !info.Built.Equal(want) {
		t.Errorf("Built = %v, want %v", info.Built, want)
	}
	if info.Go == "" || info.Platform == "" {
		t.Errorf("runtime fields missing: %+v", info)
	}
}

func TestCurrent_Release(t *testing.T) {
	tests := []struct {
		version string
		release bool
	}{
		{"dev", false},
		{"1.2.0", true},
		{"1.2.0-dirty", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			setBuild(t, tt.version, "abc1234", "", "")
			if vcsSettings()["vcs.modified"] == "true" {
				t.Skip("binary stamped from a modified tree")
			}
			info := Current()
			if info.Release != tt.release {
				t.Errorf("Release = %v, want %v", info.Release, tt.release)
			}
		})
	}
}

func TestInfo_Short(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"version only", Info{Version: "dev"}, "dev"},
		{"with commit", Info{Version: "1.2.0", Commit: "abc1234"}, "1.2.0-abc1234"},
		{"dirty tree", Info{Version: "1.2.0", Commit: "abc1234", Dirty: true}, "1.2.0-abc1234-dirty"},
		{"dirty version", Info{Version: "1.2.0-dirty", Dirty: true}, "1.2.0-dirty"},
		{"branch ignored", Info{Version: "1.2.0", Branch: "feature/x"}, "1.2.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Short(); got != tt.want {
				t.Errorf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInfo_Long(t *testing.T) {
	built := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"main branch hidden", Info{Version: "1.2.0", Commit: "abc1234", Branch: "main", Built: built},
			"1.2.0-abc1234 (built 2026-03-01T10:30:00Z)"},
		{"feature branch shown", Info{Version: "1.2.0", Commit: "abc1234", Branch: "feature/x"},
			"1.2.0-abc1234-feature/x"},
		{"dev build", Info{Version: "dev"}, "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Long(); got != tt.want {
				t.Errorf("Long() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInfo_String(t *testing.T) {
	info := Info{Version: "1.4.0", Commit: "abc1234", Dirty: true, Go: "go1.26.0", Platform: "linux/amd64"}
	if got := info.String(); got != "neysla 1.4.0 (abc1234, dirty) go1.26.0 linux/amd64" {
		t.Errorf("String() = %q", got)
	}
	info = Info{Version: "dev", Go: "go1.26.0", Platform: "linux/amd64"}
	if got := info.String(); got != "neysla dev go1.26.0 linux/amd64" {
		t.Errorf("String() = %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	setBuild(t, "1.4.0", "", "", "")
	if got := UserAgent(); got != "neysla/1.4.0" {
		t.Errorf("UserAgent() = %q", got)
	}
}
