//go:build !linux

package fbhost

import (
	"context"
	"errors"

	"github.com/phanxgames/garden"
)

// ErrUnsupported is returned by Run on systems without a Linux framebuffer.
var ErrUnsupported = errors.New("fbhost: framebuffer output requires linux")

// Run reports ErrUnsupported.
func Run(context.Context, garden.Config, *garden.Script) error {
	return ErrUnsupported
}
