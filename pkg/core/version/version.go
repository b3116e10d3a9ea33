// ============================================================================
// cplx - Complex number toolkit
// ============================================================================
//
// Package:     version
// Description: Version constants and build information
// Author:      msto63
// Created:     2026-09-29
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Component versions
const (
	// Toolkit is the release version of the cplx binary
	Toolkit = "0.4.0"

	// Kernel is the version of the numeric kernel (foundation/utils/complexx)
	Kernel = "0.3.0"

	// Protocol is the version of the websocket message protocol
	Protocol = "1.0.0"
)

// Set at build time with -ldflags "-X github.com/msto63/cplx/pkg/core/version.Commit=..."
var (
	Commit    = ""
	BuildDate = ""
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	Kernel    string `json:"kernel"`
	Protocol  string `json:"protocol"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information. Without ldflags the commit falls back
// to the VCS revision embedded by the Go toolchain.
func Get() Info {
	info := Info{
		Version:   Toolkit,
		Kernel:    Kernel,
		Protocol:  Protocol,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info.Commit == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				switch s.Key {
				case "vcs.revision":
					info.Commit = s.Value
				case "vcs.time":
					if info.BuildDate == "" {
						info.BuildDate = s.Value
					}
				}
			}
		}
	}
	return info
}

// ComponentVersion returns the version of a named component
func ComponentVersion(name string) string {
	switch name {
	case "kernel", "complexx":
		return Kernel
	case "protocol", "server":
		return Protocol
	default:
		return Toolkit
	}
}

// String renders a one-line version banner
func (i Info) String() string {
	s := fmt.Sprintf("cplx %s (kernel %s, protocol %s, %s, %s)", i.Version, i.Kernel, i.Protocol, i.GoVersion, i.Platform)
	if i.Commit != "" {
		commit := i.Commit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		s += " commit " + commit
	}
	return s
}
