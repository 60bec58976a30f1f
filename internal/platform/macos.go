package platform

import "path/filepath"

// getMacOSInfo returns the macOS path sets.
func getMacOSInfo(homeDir string) *Info {
	return &Info{
		OS:      MacOS,
		HomeDir: homeDir,
		TempDirs: []string{
			"/tmp",
			"/private/tmp",
			"/private/var/tmp",
		},
		LogDirs: []string{
			filepath.Join(homeDir, "Library/Logs"),
			"/Library/Logs",
			"/private/var/log",
		},
		TrashDir:     filepath.Join(homeDir, ".Trash"),
		DownloadsDir: filepath.Join(homeDir, "Downloads"),
		BrowserDataDirs: []string{
			filepath.Join(homeDir, "Library/Safari/History.db"),
			filepath.Join(homeDir, "Library/Application Support/Google/Chrome/Default/History"),
			filepath.Join(homeDir, "Library/Application Support/Firefox/Profiles"),
		},
		CacheDirs: []string{
			filepath.Join(homeDir, "Library/Caches"),
			"/Library/Caches",
		},
		BrowserCaches: []string{
			filepath.Join(homeDir, "Library/Caches/Google/Chrome"),
			filepath.Join(homeDir, "Library/Caches/Firefox"),
			filepath.Join(homeDir, "Library/Caches/com.apple.Safari"),
			filepath.Join(homeDir, "Library/Caches/Microsoft Edge"),
		},
		LaunchAgentDirs: []string{
			filepath.Join(homeDir, "Library/LaunchAgents"),
			"/Library/LaunchAgents",
			"/Library/LaunchDaemons",
		},
		AppDirs: []string{
			"/Applications",
			filepath.Join(homeDir, "Applications"),
		},
		AppSupportDirs: []string{
			filepath.Join(homeDir, "Library/Application Support"),
			filepath.Join(homeDir, "Library/Preferences"),
		},
		ProtectedPaths: []string{
			"/",
			"/System",
			"/Library/System",
			"/bin",
			"/sbin",
			"/usr",
			"/etc",
			"/dev",
			"/private/etc",
		},
	}
}
