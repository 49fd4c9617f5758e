package version

import (
	"fmt"
	"strings"
	"sync"
)

const (
	appMajor uint = 1
	appMinor uint = 0
	appPatch uint = 0
)

// appBuild can be set at link time with
// '-ldflags "-X github.com/donatenet/donated/version.appBuild=foo"'. It is
// ignored unless it is a valid semantic version build identifier.
var appBuild string

var (
	versionOnce sync.Once
	version     string
)

// Version returns the application version as a properly formed string.
func Version() string {
	versionOnce.Do(func() {
		version = format(appBuild)
	})
	return version
}

func format(build string) string {
	v := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
	if isValidBuild(build) {
		v += "-" + build
	}
	return v
}

// isValidBuild reports whether build is non-empty and made of ASCII letters,
// digits, dashes and dots.
func isValidBuild(build string) bool {
	if build == "" {
		return false
	}
	return strings.IndexFunc(build, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-' || r == '.')
	}) == -1
}
