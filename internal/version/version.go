// Package version provides the build version of the tools
package version

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
)

// Build is set by the linker:
// -ldflags "-X github.com/effective-security/xcsr/internal/version.Build=v1.2.3"
var Build string

// Info describes the version
type Info struct {
	Major    int
	Minor    int
	Patch    int
	Revision string
	Build    string
}

// String returns the version string
func (v Info) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Revision != "" {
		s += "-" + v.Revision
	}
	return s
}

// Current returns the version of the binary
func Current() Info {
	b := Build
	if b == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			b = bi.Main.Version
		}
	}
	return Parse(b)
}

// Parse returns Info from the version string, such as v1.2.3-rev
func Parse(s string) Info {
	v := Info{Build: s}

	s = strings.TrimPrefix(s, "v")
	if i := strings.IndexByte(s, '-'); i >= 0 {
		v.Revision = s[i+1:]
		s = s[:i]
	}

	parts := strings.SplitN(s, ".", 3)
	nums := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			break
		}
		*nums[i] = n
	}
	return v
}
