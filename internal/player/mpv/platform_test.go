package mpv

import (
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform(t *testing.T) {
	platform := DetectPlatform()

	switch runtime.GOOS {
	case "windows":
		assert.Equal(t, PlatformWindows, platform)
	case "darwin":
		assert.Equal(t, PlatformMac, platform)
	case "linux":
		if isWSL() {
			assert.Equal(t, PlatformWSL, platform)
		} else {
			assert.Equal(t, PlatformLinux, platform)
		}
	}
}

func TestGetMPVExecutable(t *testing.T) {
	tests := []struct {
		platform Platform
		expected string
	}{
		{PlatformLinux, "mpv"},
		{PlatformMac, "mpv"},
		{PlatformWindows, "mpv.exe"},
		{PlatformWSL, "mpv"},
	}

	for _, tt := range tests {
		t.Run(tt.platform.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetMPVExecutable(tt.platform))
		})
	}
}

func TestGetIPCConfig(t *testing.T) {
	tests := []struct {
		platform     Platform
		expectedType IPCType
		isSocket     bool
	}{
		{PlatformLinux, IPCUnixSocket, true},
		{PlatformMac, IPCUnixSocket, true},
		{PlatformWSL, IPCUnixSocket, true},
		{PlatformWindows, IPCNamedPipe, false},
	}

	for _, tt := range tests {
		t.Run(tt.platform.String(), func(t *testing.T) {
			config, err := GetIPCConfig(tt.platform)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedType, config.Type)
			assert.Equal(t, tt.isSocket, config.IsSocket)
			assert.Contains(t, config.Address, "reel-mpv-")
		})
	}

	t.Run("socket paths are unique and in the temp dir", func(t *testing.T) {
		a, err := GetIPCConfig(PlatformLinux)
		require.NoError(t, err)
		b, err := GetIPCConfig(PlatformLinux)
		require.NoError(t, err)

		assert.NotEqual(t, a.Address, b.Address)
		assert.True(t, strings.HasPrefix(a.Address, os.TempDir()))
		assert.True(t, strings.HasSuffix(a.Address, ".sock"))
	})

	t.Run("windows pipes use the pipe namespace", func(t *testing.T) {
		config, err := GetIPCConfig(PlatformWindows)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(config.Address, `\\.\pipe\reel-mpv-`))
	})
}

func TestGetGopvConnectionString(t *testing.T) {
	assert.Equal(t, "tcp://127.0.0.1:9000", GetGopvConnectionString(&IPCConfig{Type: IPCTCP, Address: "127.0.0.1:9000"}))
	assert.Equal(t, "/tmp/x.sock", GetGopvConnectionString(&IPCConfig{Type: IPCUnixSocket, Address: "/tmp/x.sock"}))
	assert.Equal(t, "--input-ipc-server=/tmp/x.sock", GetMPVIPCArgument(&IPCConfig{Address: "/tmp/x.sock"}))
}
