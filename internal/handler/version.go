package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
)

// VersionInfo describes the running build and the persisted formats it speaks
type VersionInfo struct {
	Version        string `json:"version"`
	GoVersion      string `json:"go_version"`
	BuildTime      string `json:"build_time,omitempty"`
	GitCommit      string `json:"git_commit,omitempty"`
	SnapshotFormat string `json:"snapshot_format"`
}

// Set through -ldflags at release time
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

// HandleVersion reports the build plus the snapshot blob format, so an operator
// can tell whether two instances can share a store
// @Summary Version
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(snapshotFormat string) http.HandlerFunc {
	info := VersionInfo{
		Version:        CurrentVersion(),
		GoVersion:      runtime.Version(),
		BuildTime:      BuildTime,
		GitCommit:      commit(),
		SnapshotFormat: snapshotFormat,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

// CurrentVersion prefers the linked version, then $VERSION
func CurrentVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

// commit falls back to the VCS stamp the go tool embeds in module builds
func commit() string {
	if GitCommit != "" {
		return GitCommit
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
