// Package module defines the module.Version type along with support code.
package module

import (
	"fmt"
	"strings"
)

// A Version represents a specific version of a third-party library
// identified by its conan reference name.
type Version struct {
	Path    string `json:"path"`    // Library name, e.g. "glm" or "vulkan-headers"
	Version string `json:"version"` // Pinned version, e.g. "0.9.9.8" or "cci.20240531"
}

// String returns the reference in "path/version" form, the form conan
// expects in a [requires] section.
func (v Version) String() string {
	if v.Version == "" {
		return v.Path
	}
	return v.Path + "/" + v.Version
}

// Parse parses a reference written either as "name/version" or
// "name@version". Conan user/channel suffixes and recipe revisions
// ("zlib/1.2.13@user/channel", "zlib/1.2.13#rev") are rejected: the
// reference would otherwise be split in the wrong place.
func Parse(ref string) (Version, error) {
	ref = strings.TrimSpace(ref)
	if strings.Contains(ref, "#") {
		return Version{}, fmt.Errorf("malformed reference %q: revisions are not supported", ref)
	}
	sep := strings.IndexByte(ref, '/')
	if sep < 0 {
		sep = strings.IndexByte(ref, '@')
	} else if strings.Contains(ref, "@") {
		return Version{}, fmt.Errorf("malformed reference %q: user/channel is not supported", ref)
	}
	if sep <= 0 || sep == len(ref)-1 || strings.ContainsAny(ref[sep+1:], "/@") {
		return Version{}, fmt.Errorf("malformed reference %q: want name/version", ref)
	}
	return Version{Path: ref[:sep], Version: ref[sep+1:]}, nil
}

// VersionComparator compares two versions of the same library.
type VersionComparator func(v1, v2 string) int
