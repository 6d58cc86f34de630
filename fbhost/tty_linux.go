//go:build linux

package fbhost

import (
	"fmt"

	"github.com/phanxgames/garden"
	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h.
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

var ttyPaths = []string{"/dev/tty", "/dev/tty0"}

// setKDMode switches the active virtual terminal, trying /dev/tty first and
// then /dev/tty0.
func setKDMode(mode int) error {
	var lastErr error
	for _, p := range ttyPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

// graphicsMode hides the console text and cursor. The returned function
// restores text mode.
func graphicsMode() (restore func()) {
	if err := setKDMode(kdGraphics); err != nil {
		garden.Logger().Warn("console graphics mode unavailable", "err", err)
		return func() {}
	}
	return func() {
		if err := setKDMode(kdText); err != nil {
			garden.Logger().Warn("console text mode not restored", "err", err)
		}
	}
}
