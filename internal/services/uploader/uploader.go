package uploader

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apper-canvas/dropzone-mesh-link/env"
	"github.com/apper-canvas/dropzone-mesh-link/internal/helpers"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/repository"
)

const (
	DefaultMaxFileSize      = int64(10 << 20)
	DefaultCompletedTaskTTL = time.Second * 2
)

type Stats struct {
	TotalFiles    int   `json:"totalFiles"`
	TotalSize     int64 `json:"totalSize"`
	SessionsToday int   `json:"sessionsToday"`
}

// Uploader turns batches of file handles into validated tasks, drives each
// through the upload simulation and persists the resulting records. It is
// the only owner of the active task queue.
type Uploader interface {
	EnqueueBatch(ctx context.Context, handles []FileHandle) *Batch
	Queue() []Task
	CancelTask(id string)
	DeleteFile(ctx context.Context, id string) (*repository.FileRecord, error)
	Select(id string)
	Selected() string
	Stats(ctx context.Context) (Stats, error)
}

func New(
	files repository.FileRepository,
	sessions repository.SessionRepository,
	driver Driver,
	log *zap.SugaredLogger,
) (Uploader, error) {
	value := env.GetOptional(env.MaxFileSize, strconv.FormatInt(DefaultMaxFileSize, 10))
	maxFileSize, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s is not integer", env.MaxFileSize)
	}

	completedTTL, err := env.GetDuration(env.CompletedTaskTTL, DefaultCompletedTaskTTL)
	if err != nil {
		return nil, err
	}

	return &engine{
		files:        files,
		sessions:     sessions,
		driver:       driver,
		log:          log,
		maxFileSize:  maxFileSize,
		completedTTL: completedTTL,
	}, nil
}

type engine struct {
	locker sync.Mutex
	queue  []*Task

	files    repository.FileRepository
	sessions repository.SessionRepository
	driver   Driver
	log      *zap.SugaredLogger

	maxFileSize  int64
	completedTTL time.Duration
	selectedID   string
}

func (e *engine) EnqueueBatch(ctx context.Context, handles []FileHandle) *Batch {
	batch := &Batch{done: make(chan struct{})}

	var accepted []*Task
	for _, h := range handles {
		if h.Size > e.maxFileSize {
			batch.Rejections = append(batch.Rejections, Rejection{Name: h.Name, Size: h.Size, Limit: e.maxFileSize})
			continue
		}
		accepted = append(accepted, newTask(h))
	}

	if len(batch.Rejections) > 0 {
		errs := make([]error, 0, len(batch.Rejections))
		for _, r := range batch.Rejections {
			errs = append(errs, r)
		}
		e.log.With("err", helpers.FoldErrors(errs)).Warn("rejected files from batch")
	}

	// An all-rejected batch performs no further action: no tasks, no session.
	if len(accepted) == 0 {
		close(batch.done)
		return batch
	}

	e.locker.Lock()
	e.queue = append(e.queue, accepted...)
	for _, t := range accepted {
		batch.Tasks = append(batch.Tasks, *t)
	}
	e.locker.Unlock()

	go e.processBatch(batch, accepted)

	return batch
}

// processBatch drives the batch's tasks strictly in submission order and
// writes exactly one session record once every task is terminal.
func (e *engine) processBatch(batch *Batch, tasks []*Task) {
	defer close(batch.done)

	ctx := context.Background()
	startTime := time.Now().UTC()

	for _, t := range tasks {
		id := t.ID
		e.setStatus(id, TaskStatusUploading)

		err := e.driver.Drive(ctx, t.File, func(progress int, speed float64) {
			e.updateTask(id, progress, speed)
		})
		if err != nil {
			e.setStatus(id, TaskStatusError)
			e.log.With("err", err, "file", t.File.Name).Error("failed to upload")
			continue
		}

		record, err := e.files.Create(ctx, repository.CreateFileInput{
			Name:         t.File.Name,
			Size:         t.File.Size,
			Type:         t.File.Type,
			URL:          newFileURL(),
			ThumbnailURL: newThumbnailURL(t.File.Type),
		})
		if err != nil {
			e.setStatus(id, TaskStatusError)
			e.log.With("err", err, "file", t.File.Name).Error("failed to persist uploaded file")
			continue
		}

		e.completeTask(id)
		e.log.With("file", record.Name).Info("uploaded successfully")

		// Keep the completed task visible briefly before it disappears.
		time.AfterFunc(e.completedTTL, func() {
			e.removeTask(id)
		})
	}

	names := make([]string, 0, len(tasks))
	var totalSize int64
	for _, t := range tasks {
		names = append(names, t.File.Name)
		totalSize += t.File.Size
	}

	if _, err := e.sessions.Create(ctx, repository.CreateSessionInput{
		Files:     names,
		TotalSize: totalSize,
		StartTime: startTime,
		EndTime:   time.Now().UTC(),
	}); err != nil {
		e.log.With("err", err).Error("failed to persist upload session")
	}
}

func (e *engine) Queue() []Task {
	e.locker.Lock()
	defer e.locker.Unlock()

	snapshot := make([]Task, 0, len(e.queue))
	for _, t := range e.queue {
		snapshot = append(snapshot, *t)
	}
	return snapshot
}

// CancelTask removes the task from the visible queue regardless of status.
// An in-flight transfer keeps running; only its visibility is gone.
// Cancelling an unknown id is a no-op.
func (e *engine) CancelTask(id string) {
	if e.removeTask(id) {
		e.log.With("task", id).Info("upload cancelled")
	}
}

func (e *engine) DeleteFile(ctx context.Context, id string) (*repository.FileRecord, error) {
	record, err := e.files.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	e.locker.Lock()
	if e.selectedID == id {
		e.selectedID = ""
	}
	e.locker.Unlock()

	e.log.With("file", record.Name).Info("file deleted")
	return record, nil
}

func (e *engine) Select(id string) {
	e.locker.Lock()
	defer e.locker.Unlock()
	e.selectedID = id
}

func (e *engine) Selected() string {
	e.locker.Lock()
	defer e.locker.Unlock()
	return e.selectedID
}

func (e *engine) Stats(ctx context.Context) (Stats, error) {
	files, err := e.files.GetAll(ctx)
	if err != nil {
		return Stats{}, err
	}

	sessions, err := e.sessions.GetAll(ctx)
	if err != nil {
		return Stats{}, err
	}

	return ComputeStats(files, sessions), nil
}

// ComputeStats aggregates from scratch on every call; nothing is maintained
// incrementally.
func ComputeStats(files []*repository.FileRecord, sessions []*repository.UploadSession) Stats {
	var stats Stats

	stats.TotalFiles = len(files)
	for _, f := range files {
		stats.TotalSize += f.Size
	}

	now := time.Now().Local()
	for _, s := range sessions {
		start := s.StartTime.Local()
		if start.Year() == now.Year() && start.Month() == now.Month() && start.Day() == now.Day() {
			stats.SessionsToday++
		}
	}

	return stats
}

func (e *engine) updateTask(id string, progress int, speed float64) {
	e.locker.Lock()
	defer e.locker.Unlock()

	t := e.find(id)
	if t == nil {
		return
	}

	if progress > t.Progress {
		t.Progress = progress
	}
	if t.Progress > 100 {
		t.Progress = 100
	}
	t.Speed = speed
}

func (e *engine) setStatus(id string, status TaskStatus) {
	e.locker.Lock()
	defer e.locker.Unlock()

	if t := e.find(id); t != nil {
		t.Status = status
	}
}

func (e *engine) completeTask(id string) {
	e.locker.Lock()
	defer e.locker.Unlock()

	if t := e.find(id); t != nil {
		t.Status = TaskStatusCompleted
		t.Progress = 100
	}
}

func (e *engine) removeTask(id string) bool {
	e.locker.Lock()
	defer e.locker.Unlock()

	for i, t := range e.queue {
		if t.ID == id {
			e.queue = append(e.queue[:i], e.queue[i+1:]...)
			return true
		}
	}
	return false
}

func (e *engine) find(id string) *Task {
	for _, t := range e.queue {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func newFileURL() string {
	return fmt.Sprintf("https://picsum.photos/200/300?random=%s", uuid.NewString())
}

func newThumbnailURL(contentType string) string {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return ""
	}
	return fmt.Sprintf("https://picsum.photos/150/150?random=%s", uuid.NewString())
}
