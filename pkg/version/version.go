// Package version exposes the build version of fixturegen.
package version

// version is overridden at build time with
// -ldflags "-X github.com/rshade/fixturegen/pkg/version.version=v1.2.3".
var version = "dev" //nolint:gochecknoglobals // set via ldflags

// GetVersion returns the build version, "dev" for untagged builds.
func GetVersion() string {
	return version
}
