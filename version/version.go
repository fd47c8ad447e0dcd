package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Build metadata, injected with
//
//	-ldflags "-X github.com/kbukum/neysla/version.Version=v1.2.0"
//
// Empty values are filled from the VCS stamp the Go toolchain embeds.
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
)

const commitLen = 7

// Info describes the running neysla binary.
type Info struct {
	Version  string    `json:"version" yaml:"version"`
	Commit   string    `json:"commit,omitempty" yaml:"commit,omitempty"`
	Branch   string    `json:"branch,omitempty" yaml:"branch,omitempty"`
	Built    time.Time `json:"built" yaml:"built"`
	Go       string    `json:"go" yaml:"go"`
	Platform string    `json:"platform" yaml:"platform"`
	Dirty    bool      `json:"dirty" yaml:"dirty"`
	Release  bool      `json:"release" yaml:"release"`
}

// Current reports the build metadata of this binary.
func Current() Info {
	info := Info{
		Version:  Version,
		Commit:   GitCommit,
		Branch:   GitBranch,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	info.Built, _ = time.Parse(time.RFC3339, BuildTime)

	vcs := vcsSettings()
	if info.Commit == "" {
		info.Commit = vcs["vcs.revision"]
	}
	if info.Built.IsZero() {
		info.Built, _ = time.Parse(time.RFC3339, vcs["vcs.time"])
	}
	info.Dirty = vcs["vcs.modified"] == "true" || strings.HasSuffix(info.Version, "-dirty")
	if len(info.Commit) > commitLen {
		info.Commit = info.Commit[:commitLen]
	}
	info.Release = info.Version != "dev" && !info.Dirty
	return info
}

func vcsSettings() map[string]string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	out := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		if strings.HasPrefix(s.Key, "vcs.") {
			out[s.Key] = s.Value
		}
	}
	return out
}

// UserAgent is the User-Agent transports send when none is configured.
func UserAgent() string {
	return "neysla/" + Version
}

// String is the default output of the version command.
func (i Info) String() string {
	var b strings.Builder
	b.WriteString("neysla " + i.Version)
	if i.Commit != "" {
		b.WriteString(" (" + i.Commit)
		if i.Dirty {
			b.WriteString(", dirty")
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, " %s %s", i.Go, i.Platform)
	return b.String()
}

// Short joins version and commit: 1.2.0-abc1234, or 1.2.0-abc1234-dirty.
func (i Info) Short() string {
	return strings.Join(i.tags(false), "-")
}

// Long adds a non-default branch and the build date to Short.
func (i Info) Long() string {
	s := strings.Join(i.tags(true), "-")
	if !i.Built.IsZero() {
		s += " (built " + i.Built.UTC().Format(time.RFC3339) + ")"
	}
	return s
}

func (i Info) tags(withBranch bool) []string {
	tags := []string{i.Version}
	if i.Commit != "" {
		tags = append(tags, i.Commit)
	}
	if withBranch && i.Branch != "" && i.Branch != "main" && i.Branch != "master" {
		tags = append(tags, i.Branch)
	}
	if i.Dirty && !strings.HasSuffix(i.Version, "-dirty") {
		tags = append(tags, "dirty")
	}
	return tags
}
