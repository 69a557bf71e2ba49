package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/apper-canvas/dropzone-mesh-link/env"
)

const (
	DefaultLatencyMin = time.Millisecond * 200
	DefaultLatencyMax = time.Millisecond * 400
)

var (
	ErrNotFound = errors.New("not found")
)

type UpdateFileInput struct {
	Name         *string
	URL          *string
	ThumbnailURL *string
}

type UpdateSessionInput struct {
	EndTime *time.Time
}

// FileRepository owns the persisted file-record collection. Records are
// ordered most-recent-first; nobody mutates the collection except through
// these operations.
type FileRepository interface {
	GetAll(ctx context.Context) ([]*FileRecord, error)
	GetByID(ctx context.Context, id string) (*FileRecord, error)
	Create(ctx context.Context, input CreateFileInput) (*FileRecord, error)
	Update(ctx context.Context, id string, input UpdateFileInput) (*FileRecord, error)
	Delete(ctx context.Context, id string) (*FileRecord, error)
}

// SessionRepository owns the persisted upload-session collection.
type SessionRepository interface {
	GetAll(ctx context.Context) ([]*UploadSession, error)
	GetByID(ctx context.Context, id string) (*UploadSession, error)
	Create(ctx context.Context, input CreateSessionInput) (*UploadSession, error)
	Update(ctx context.Context, id string, input UpdateSessionInput) (*UploadSession, error)
	Delete(ctx context.Context, id string) (*UploadSession, error)
}

func latencyFromEnv() (time.Duration, time.Duration, error) {
	min, err := env.GetDuration(env.StoreLatencyMin, DefaultLatencyMin)
	if err != nil {
		return 0, 0, err
	}

	max, err := env.GetDuration(env.StoreLatencyMax, DefaultLatencyMax)
	if err != nil {
		return 0, 0, err
	}

	if max < min {
		return 0, 0, errors.Errorf("%s is lower than %s", env.StoreLatencyMax, env.StoreLatencyMin)
	}

	return min, max, nil
}
