package platform

import (
	"os"
	"path/filepath"
)

// getLinuxInfo returns the Linux path sets, honoring XDG overrides.
func getLinuxInfo(homeDir string) *Info {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(homeDir, ".cache")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, ".local/share")
	}

	return &Info{
		OS:      Linux,
		HomeDir: homeDir,
		TempDirs: []string{
			"/tmp",
			"/var/tmp",
		},
		LogDirs: []string{
			"/var/log",
			filepath.Join(homeDir, ".local/state/log"),
		},
		TrashDir:     filepath.Join(dataHome, "Trash/files"),
		DownloadsDir: filepath.Join(homeDir, "Downloads"),
		BrowserDataDirs: []string{
			filepath.Join(homeDir, ".config/google-chrome/Default/History"),
			filepath.Join(homeDir, ".mozilla/firefox"),
		},
		CacheDirs: []string{
			cacheHome,
		},
		BrowserCaches: []string{
			filepath.Join(cacheHome, "google-chrome"),
			filepath.Join(cacheHome, "chromium"),
			filepath.Join(cacheHome, "mozilla/firefox"),
		},
		LaunchAgentDirs: []string{
			filepath.Join(homeDir, ".config/autostart"),
			"/etc/xdg/autostart",
		},
		AppDirs: []string{
			"/usr/share/applications",
			filepath.Join(dataHome, "applications"),
		},
		AppSupportDirs: []string{
			filepath.Join(homeDir, ".config"),
			dataHome,
		},
		ProtectedPaths: []string{
			"/",
			"/bin",
			"/sbin",
			"/usr",
			"/etc",
			"/dev",
			"/boot",
			"/lib",
			"/lib64",
			"/proc",
			"/sys",
		},
	}
}
