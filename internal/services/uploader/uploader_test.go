package uploader_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/apper-canvas/dropzone-mesh-link/env"
	"github.com/apper-canvas/dropzone-mesh-link/internal/mocks"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/repository"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/uploader"
)

const mib = int64(1 << 20)

func TestAll(t *testing.T) {
	suite.Run(t, new(testSuite))
}

type testSuite struct {
	suite.Suite
	files    repository.FileRepository
	sessions repository.SessionRepository
}

func (t *testSuite) SetupTest() {
	t.T().Setenv(env.StoreLatencyMin, "0s")
	t.T().Setenv(env.StoreLatencyMax, "0s")
	t.T().Setenv(env.UploadTickInterval, "1ms")
	t.T().Setenv(env.CompletedTaskTTL, "25ms")

	ctn := dig.New()
	t.Require().NoError(ctn.Provide(repository.NewFileRepository))
	t.Require().NoError(ctn.Provide(repository.NewSessionRepository))

	err := ctn.Invoke(func(files repository.FileRepository, sessions repository.SessionRepository) {
		t.files = files
		t.sessions = sessions
	})
	t.Require().NoError(err)
}

func (t *testSuite) newUploader(driver uploader.Driver) uploader.Uploader {
	u, err := uploader.New(t.files, t.sessions, driver, zap.NewNop().Sugar())
	t.Require().NoError(err)
	return u
}

func (t *testSuite) waitDone(batch *uploader.Batch) {
	select {
	case <-batch.Done():
	case <-time.After(time.Second * 5):
		t.FailNow("batch did not finish in time")
	}
}

func (t *testSuite) TestOversizeFilesAreRejected() {
	ctx := context.Background()
	u := t.newUploader(&mocks.Driver{})

	batch := u.EnqueueBatch(ctx, []uploader.FileHandle{
		{Name: "photo.jpg", Size: mib, Type: "image/jpeg"},
		{Name: "notes.txt", Size: mib, Type: "text/plain"},
		{Name: "movie.mkv", Size: 12 * mib, Type: "video/x-matroska"},
	})

	t.Require().Len(batch.Tasks, 2)
	t.Require().Len(batch.Rejections, 1)
	t.Require().Equal("movie.mkv", batch.Rejections[0].Name)
	t.Require().Equal(uploader.DefaultMaxFileSize, batch.Rejections[0].Limit)

	t.waitDone(batch)

	sessions, err := t.sessions.GetAll(ctx)
	t.Require().NoError(err)
	t.Require().Len(sessions, 1)
	t.Require().Equal([]string{"photo.jpg", "notes.txt"}, sessions[0].Files)
	t.Require().Equal(2*mib, sessions[0].TotalSize)

	files, err := t.files.GetAll(ctx)
	t.Require().NoError(err)
	t.Require().Len(files, 2)
	for _, f := range files {
		t.Require().NotEqual("movie.mkv", f.Name)
	}
}

func (t *testSuite) TestAllRejectedBatchCreatesNothing() {
	ctx := context.Background()
	u := t.newUploader(&mocks.Driver{})

	batch := u.EnqueueBatch(ctx, []uploader.FileHandle{
		{Name: "huge.iso", Size: 20 * mib, Type: "application/octet-stream"},
	})

	t.Require().Empty(batch.Tasks)
	t.Require().Len(batch.Rejections, 1)
	t.waitDone(batch)

	t.Require().Empty(u.Queue())

	sessions, err := t.sessions.GetAll(ctx)
	t.Require().NoError(err)
	t.Require().Empty(sessions)
}

func (t *testSuite) TestCompletedTaskPersistsExactlyOneRecord() {
	ctx := context.Background()
	u := t.newUploader(&mocks.Driver{})

	batch := u.EnqueueBatch(ctx, []uploader.FileHandle{
		{Name: "pic.png", Size: 100, Type: "image/png"},
		{Name: "doc.txt", Size: 200, Type: "text/plain"},
	})
	t.waitDone(batch)

	files, err := t.files.GetAll(ctx)
	t.Require().NoError(err)
	t.Require().Len(files, 2)

	for _, f := range files {
		t.Require().Equal(repository.FileStatusCompleted, f.Status)
		t.Require().Equal(100, f.Progress)
		t.Require().NotEmpty(f.URL)

		if f.Name == "pic.png" {
			t.Require().NotEmpty(f.ThumbnailURL)
		} else {
			t.Require().Empty(f.ThumbnailURL)
		}
	}
}

func (t *testSuite) TestFailedTaskProducesNoRecordButSessionIsCreated() {
	ctx := context.Background()
	u := t.newUploader(&mocks.Driver{
		FailNames: map[string]struct{}{"broken.bin": {}},
	})

	batch := u.EnqueueBatch(ctx, []uploader.FileHandle{
		{Name: "good.txt", Size: 100, Type: "text/plain"},
		{Name: "broken.bin", Size: 300, Type: "application/octet-stream"},
	})
	t.waitDone(batch)

	files, err := t.files.GetAll(ctx)
	t.Require().NoError(err)
	t.Require().Len(files, 1)
	t.Require().Equal("good.txt", files[0].Name)

	sessions, err := t.sessions.GetAll(ctx)
	t.Require().NoError(err)
	t.Require().Len(sessions, 1)
	t.Require().Equal([]string{"good.txt", "broken.bin"}, sessions[0].Files)
	t.Require().Equal(int64(400), sessions[0].TotalSize)

	// Failed tasks stay in the queue until dismissed; the completed sibling
	// disappears once its grace period expires.
	t.Require().Eventually(func() bool {
		return len(u.Queue()) == 1
	}, time.Second, time.Millisecond*10)

	queue := u.Queue()
	t.Require().Equal(uploader.TaskStatusError, queue[0].Status)

	u.CancelTask(queue[0].ID)
	t.Require().Empty(u.Queue())
}

func (t *testSuite) TestOneSessionPerBatch() {
	ctx := context.Background()
	u := t.newUploader(&mocks.Driver{})

	first := u.EnqueueBatch(ctx, []uploader.FileHandle{{Name: "a.txt", Size: 1}})
	second := u.EnqueueBatch(ctx, []uploader.FileHandle{{Name: "b.txt", Size: 2}})

	t.waitDone(first)
	t.waitDone(second)

	sessions, err := t.sessions.GetAll(ctx)
	t.Require().NoError(err)
	t.Require().Len(sessions, 2)
}

func (t *testSuite) TestCancelIsImmediateAndIdempotent() {
	ctx := context.Background()
	release := make(chan struct{})
	u := t.newUploader(&mocks.Driver{Release: release})

	batch := u.EnqueueBatch(ctx, []uploader.FileHandle{{Name: "slow.zip", Size: 500, Type: "application/zip"}})
	t.Require().Len(batch.Tasks, 1)
	t.Require().Len(u.Queue(), 1)

	id := batch.Tasks[0].ID
	u.CancelTask(id)
	t.Require().Empty(u.Queue())

	u.CancelTask(id)
	t.Require().Empty(u.Queue())

	// Cancellation removes visibility only; the in-flight transfer finishes
	// and the record is still persisted.
	close(release)
	t.waitDone(batch)

	files, err := t.files.GetAll(ctx)
	t.Require().NoError(err)
	t.Require().Len(files, 1)
}

func (t *testSuite) TestCompletedTaskLeavesQueueAfterGracePeriod() {
	ctx := context.Background()
	u := t.newUploader(&mocks.Driver{})

	batch := u.EnqueueBatch(ctx, []uploader.FileHandle{{Name: "short.txt", Size: 10}})
	t.waitDone(batch)

	t.Require().Eventually(func() bool {
		return len(u.Queue()) == 0
	}, time.Second, time.Millisecond*10)
}

func (t *testSuite) TestDeleteFileClearsSelection() {
	ctx := context.Background()
	u := t.newUploader(&mocks.Driver{})

	record, err := t.files.Create(ctx, repository.CreateFileInput{Name: "selected.pdf", Size: 100, Type: "application/pdf"})
	t.Require().NoError(err)

	u.Select(record.ID)
	t.Require().Equal(record.ID, u.Selected())

	removed, err := u.DeleteFile(ctx, record.ID)
	t.Require().NoError(err)
	t.Require().Equal(record.ID, removed.ID)
	t.Require().Empty(u.Selected())

	files, err := t.files.GetAll(ctx)
	t.Require().NoError(err)
	t.Require().Empty(files)
}

func (t *testSuite) TestDeleteUnknownFileFails() {
	ctx := context.Background()
	u := t.newUploader(&mocks.Driver{})

	_, err := u.DeleteFile(ctx, uuid.NewString())
	t.Require().ErrorIs(err, repository.ErrNotFound)
}

func (t *testSuite) TestStats() {
	ctx := context.Background()
	u := t.newUploader(&mocks.Driver{})

	batch := u.EnqueueBatch(ctx, []uploader.FileHandle{
		{Name: "one.txt", Size: 100},
		{Name: "two.txt", Size: 250},
	})
	t.waitDone(batch)

	stats, err := u.Stats(ctx)
	t.Require().NoError(err)
	t.Require().Equal(2, stats.TotalFiles)
	t.Require().Equal(int64(350), stats.TotalSize)
	t.Require().Equal(1, stats.SessionsToday)
}

func TestComputeStatsCountsOnlyToday(t *testing.T) {
	now := time.Now()
	files := []*repository.FileRecord{
		{ID: "1", Size: 100},
		{ID: "2", Size: 200},
	}
	sessions := []*repository.UploadSession{
		{ID: "a", StartTime: now},
		{ID: "b", StartTime: now.Add(-time.Hour * 48)},
	}

	stats := uploader.ComputeStats(files, sessions)
	if stats.TotalFiles != 2 || stats.TotalSize != 300 || stats.SessionsToday != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
