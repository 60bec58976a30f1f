package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfoForCurrentPlatform(t *testing.T) {
	info, err := GetInfo()
	if Detect() == Unknown {
		assert.ErrorIs(t, err, ErrUnsupportedPlatform)
		return
	}
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.NotEmpty(t, info.HomeDir)
}

func TestPathSetsAreAbsolute(t *testing.T) {
	for _, info := range []*Info{
		getMacOSInfo("/Users/me"),
		getLinuxInfo("/home/me"),
	} {
		t.Run(string(info.OS), func(t *testing.T) {
			all := append([]string{}, info.TempDirs...)
			all = append(all, info.LogDirs...)
			all = append(all, info.TrashDir, info.DownloadsDir)
			all = append(all, info.BrowserDataDirs...)
			all = append(all, info.CacheDirs...)
			all = append(all, info.BrowserCaches...)
			all = append(all, info.LaunchAgentDirs...)
			all = append(all, info.AppDirs...)
			all = append(all, info.AppSupportDirs...)
			all = append(all, info.ProtectedPaths...)

			for _, p := range all {
				assert.True(t, filepath.IsAbs(p), "path %q must be absolute", p)
			}
		})
	}
}

func TestProtectedPathsCoverSystemRoots(t *testing.T) {
	for _, info := range []*Info{
		getMacOSInfo("/Users/me"),
		getLinuxInfo("/home/me"),
	} {
		assert.Contains(t, info.ProtectedPaths, "/")
		assert.Contains(t, info.ProtectedPaths, "/usr")
		assert.Contains(t, info.ProtectedPaths, "/etc")
	}
}

func TestLinuxHonorsXDGOverrides(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")
	t.Setenv("XDG_DATA_HOME", "/custom/data")

	info := getLinuxInfo("/home/me")
	assert.Contains(t, info.CacheDirs, "/custom/cache")
	assert.Equal(t, "/custom/data/Trash/files", info.TrashDir)
}
