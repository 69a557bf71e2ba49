package repository

import (
	"time"

	"github.com/google/uuid"
)

type FileStatus string

const (
	FileStatusCompleted FileStatus = "completed"
)

type FileRecord struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Size         int64      `json:"size"`
	Type         string     `json:"type"`
	UploadedAt   time.Time  `json:"uploadedAt"`
	Status       FileStatus `json:"status"`
	Progress     int        `json:"progress"`
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
}

type CreateFileInput struct {
	Name         string
	Size         int64
	Type         string
	URL          string
	ThumbnailURL string
}

func NewFileRecord(input CreateFileInput) FileRecord {
	return FileRecord{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Size:         input.Size,
		Type:         input.Type,
		UploadedAt:   time.Now().UTC(),
		Status:       FileStatusCompleted,
		Progress:     100,
		URL:          input.URL,
		ThumbnailURL: input.ThumbnailURL,
	}
}

type UploadSession struct {
	ID        string    `json:"id"`
	Files     []string  `json:"files"`
	TotalSize int64     `json:"totalSize"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type CreateSessionInput struct {
	Files     []string
	TotalSize int64
	StartTime time.Time
	EndTime   time.Time
}

func NewUploadSession(input CreateSessionInput) UploadSession {
	startTime := input.StartTime
	if startTime.IsZero() {
		startTime = time.Now().UTC()
	}

	return UploadSession{
		ID:        uuid.NewString(),
		Files:     append([]string(nil), input.Files...),
		TotalSize: input.TotalSize,
		StartTime: startTime,
		EndTime:   input.EndTime,
	}
}
