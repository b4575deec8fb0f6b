package deps

import (
	"github.com/goplus/vkbuild/pkgs/gnu"
	"golang.org/x/mod/semver"
)

// CompareVersions orders two versions of one library. Semantic versions
// (with or without the leading "v") use semver precedence; anything else,
// such as four-part or date-stamped conan versions, uses GNU version order.
func CompareVersions(v1, v2 string) int {
	s1, s2 := canonical(v1), canonical(v2)
	if semver.IsValid(s1) && semver.IsValid(s2) {
		return semver.Compare(s1, s2)
	}
	return gnu.Compare(v1, v2)
}

func canonical(v string) string {
	if v != "" && v[0] != 'v' {
		return "v" + v
	}
	return v
}
