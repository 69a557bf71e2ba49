package uploader

import (
	"fmt"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusUploading TaskStatus = "uploading"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusError     TaskStatus = "error"
)

// FileHandle is the raw input to the queue: what the caller knows about a
// file before anything has been transferred.
type FileHandle struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// Task is one file's journey through the upload simulation. Tasks live only
// in the active queue and are never persisted.
type Task struct {
	ID       string     `json:"id"`
	File     FileHandle `json:"file"`
	Progress int        `json:"progress"`
	Status   TaskStatus `json:"status"`
	Speed    float64    `json:"speed"`
}

func newTask(handle FileHandle) *Task {
	return &Task{
		ID:     uuid.NewString(),
		File:   handle,
		Status: TaskStatusPending,
	}
}

// Rejection reports a file excluded from a batch by validation.
type Rejection struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Limit int64  `json:"limit"`
}

func (r Rejection) Error() string {
	return fmt.Sprintf("file %q is too large: %d bytes, limit %d", r.Name, r.Size, r.Limit)
}

// Batch groups the tasks created by one submission. Done is closed once
// every task has reached a terminal state and the session record is written.
type Batch struct {
	Tasks      []Task
	Rejections []Rejection

	done chan struct{}
}

func (b *Batch) Done() <-chan struct{} {
	return b.done
}
