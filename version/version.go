// Package version provides build version information embedding.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set at build time using -ldflags.
var Version = "dev"

// UserAgent returns the default User-Agent header value for the kit.
func UserAgent() string {
	return fmt.Sprintf("apikit/%s", GetShortVersion())
}

// GetShortVersion returns a short version string, including the VCS
// revision when the binary carries one.
func GetShortVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				rev := setting.Value
				if len(rev) > 7 {
					rev = rev[:7]
				}
				return fmt.Sprintf("%s-%s", Version, rev)
			}
		}
	}
	return Version
}
