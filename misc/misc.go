// Package misc keeps build information.
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

var (
	version = "dev"
	appName string
)

// GetAppName returns name of the running executable without extension.
func GetAppName() string {
	if len(appName) == 0 {
		appName = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
	}
	return appName
}

// GetVersion returns program version, set at link time with
// -ldflags "-X cssel/misc.version=...".
func GetVersion() string {
	return version
}

// GetGitHash returns VCS revision recorded by the go tool.
func GetGitHash() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
