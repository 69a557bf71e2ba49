package mocks

import (
	"context"
	"errors"

	"github.com/apper-canvas/dropzone-mesh-link/internal/services/uploader"
)

var ErrTransferFailed = errors.New("transfer failed")

// Driver is a scripted replacement for the simulated upload driver. It
// reports a fixed progress profile, optionally blocks until released, and
// fails for the configured file names.
type Driver struct {
	FailNames map[string]struct{}
	Release   chan struct{}
}

func (d *Driver) Drive(ctx context.Context, handle uploader.FileHandle, report uploader.ProgressFunc) error {
	report(25, 2.0)
	report(50, 3.0)
	report(75, 4.0)

	if d.Release != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.Release:
		}
	}

	if _, ok := d.FailNames[handle.Name]; ok {
		return ErrTransferFailed
	}

	report(100, 5.0)
	return nil
}
