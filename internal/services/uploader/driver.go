package uploader

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/apper-canvas/dropzone-mesh-link/env"
)

const (
	DefaultTickInterval = time.Millisecond * 200

	maxTickIncrement = 20.0
	minTickSpeed     = 1.0
	maxTickSpeed     = 6.0
)

// ProgressFunc receives progress updates from a driver. Progress is in
// [0,100], speed in MB/s.
type ProgressFunc func(progress int, speed float64)

// Driver moves one file's bytes and reports progress along the way. The
// simulated driver below is the only production implementation; a real
// transport would satisfy the same contract: monotonic progress at a bounded
// rate, exactly 100 on success.
type Driver interface {
	Drive(ctx context.Context, handle FileHandle, report ProgressFunc) error
}

type simulatedDriver struct {
	tick time.Duration
}

func NewSimulatedDriver() (Driver, error) {
	tick, err := env.GetDuration(env.UploadTickInterval, DefaultTickInterval)
	if err != nil {
		return nil, err
	}

	return &simulatedDriver{tick: tick}, nil
}

func (d *simulatedDriver) Drive(ctx context.Context, handle FileHandle, report ProgressFunc) error {
	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	progress := 0.0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			progress += rand.Float64() * maxTickIncrement
			speed := minTickSpeed + rand.Float64()*(maxTickSpeed-minTickSpeed)

			if progress >= 100 {
				report(100, speed)
				return nil
			}
			report(int(math.Round(progress)), speed)
		}
	}
}
