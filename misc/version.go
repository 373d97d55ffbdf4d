// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set by the linker: -X docxfix/misc.version=... -X docxfix/misc.gitHash=...
var (
	version = "dev"
	gitHash = "unknown"
	appName = ""
)

// GetAppName returns program name, derived from executable when not set at build time.
func GetAppName() string {
	if len(appName) > 0 {
		return appName
	}
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
