package config

import (
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_LoadDefaults(t *testing.T) {
	var opts Options
	require.NoError(t, opts.Load(nil))

	assert.Equal(t, DefaultMPVBinary, opts.MPVBinary)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Equal(t, "stdout", opts.LogOutput)
	assert.Equal(t, 5*time.Second, opts.StartTimeout)
}

func TestOptions_LoadUsesSettings(t *testing.T) {
	settings := NewSettings(test.NewApp())
	settings.SetMPVBinary("/usr/local/bin/mpv")

	var opts Options
	require.NoError(t, opts.Load(settings))
	assert.Equal(t, "/usr/local/bin/mpv", opts.MPVBinary)

	flagged := Options{MPVBinary: "mpv-git"}
	require.NoError(t, flagged.Load(settings))
	assert.Equal(t, "mpv-git", flagged.MPVBinary, "flag wins over stored setting")
}

func TestOptions_Validate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{
			name: "start folder exists",
			opts: Options{StartFolder: dir},
		},
		{
			name:    "start folder missing",
			opts:    Options{StartFolder: filepath.Join(dir, "missing")},
			wantErr: true,
		},
		{
			name:    "bad log level",
			opts:    Options{LogLevel: "chatty"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Load(nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
