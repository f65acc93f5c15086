// Package version reports the build version of the f3manager binary.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current is overridden at build time:
//
//	go build -ldflags "-X f3manager/internal/shared/version.Current=v1.2.0"
var Current = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether v is a tagged semver release. Development
// builds ("dev", "unknown") and prereleases are not releases.
func IsRelease(v string) bool {
	v = Normalize(v)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}

// String returns the normalized current version, or "dev" for untagged builds.
func String() string {
	if v := Normalize(Current); semver.IsValid(v) {
		return semver.Canonical(v)
	}
	return Current
}
