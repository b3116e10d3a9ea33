package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Toolkit", Toolkit},
		{"Kernel", Kernel},
		{"Protocol", Protocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		component string
		expected  string
	}{
		{"kernel", Kernel},
		{"complexx", Kernel},
		{"protocol", Protocol},
		{"server", Protocol},
		{"repl", Toolkit},
		{"", Toolkit},
	}

	for _, tt := range tests {
		t.Run(tt.component, func(t *testing.T) {
			if got := ComponentVersion(tt.component); got != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, got, tt.expected)
			}
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Toolkit || info.Kernel != Kernel {
		t.Errorf("Get() = %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if !strings.HasPrefix(info.String(), "cplx "+Toolkit) {
		t.Errorf("String() = %q", info.String())
	}
}

func TestStringShortensCommit(t *testing.T) {
	info := Info{Version: "1.2.3", Commit: "0123456789abcdef0123"}
	if s := info.String(); !strings.HasSuffix(s, "commit 0123456789ab") {
		t.Errorf("String() = %q, want shortened commit", s)
	}
}
