package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// LinuxFileManagers are tried in order when xdg-open is unavailable
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// OpenFileInManager opens the system file manager with the file highlighted
// where the platform supports it.
func OpenFileInManager(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return errors.Wrap(err, "file does not exist")
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return errors.Wrap(err, "failed to get absolute path")
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		// explorer exits non-zero even when it succeeds
		_ = exec.Command(ExplorerCommand, WindowsSelectParam+absPath).Run()
		return nil
	case OSLinux:
		return openDirInManagerLinux(filepath.Dir(absPath))
	default:
		return errors.Newf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openDirInManagerLinux opens dir; selection is not standardized on Linux
func openDirInManagerLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return errors.New("no suitable file manager found")
}
