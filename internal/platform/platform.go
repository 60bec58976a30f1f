// Package platform resolves the per-OS directory sets the category
// scanners walk.
package platform

import (
	"errors"
	"os/user"
	"runtime"
)

// Platform represents the operating system platform.
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Unknown Platform = "unknown"
)

// ErrUnsupportedPlatform is returned on platforms without a path set.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Info contains platform-specific paths grouped by scan category.
type Info struct {
	OS      Platform
	HomeDir string

	// Junk scan
	TempDirs        []string
	LogDirs         []string
	TrashDir        string
	DownloadsDir    string
	BrowserDataDirs []string

	// Performance scan
	CacheDirs       []string
	BrowserCaches   []string
	LaunchAgentDirs []string

	// App scan
	AppDirs        []string
	AppSupportDirs []string

	// Never deleted automatically, whatever a scan finds there.
	ProtectedPaths []string
}

// Detect returns the current platform.
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// GetInfo returns the path sets for the current platform.
func GetInfo() (*Info, error) {
	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}

	switch Detect() {
	case MacOS:
		return getMacOSInfo(currentUser.HomeDir), nil
	case Linux:
		return getLinuxInfo(currentUser.HomeDir), nil
	default:
		return nil, ErrUnsupportedPlatform
	}
}
