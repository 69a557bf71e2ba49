package repository

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// latency simulates the bounded response time of a remote backend. Every
// store operation waits once before touching the collection.
type latency struct {
	min time.Duration
	max time.Duration
}

func (l latency) wait(ctx context.Context) error {
	d := l.min
	if l.max > l.min {
		d += time.Duration(rand.Int63n(int64(l.max - l.min)))
	}
	if d == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type fileMemory struct {
	locker  sync.Mutex
	latency latency
	records []FileRecord
}

func NewFileRepository() (FileRepository, error) {
	return NewFileRepositoryWith(nil)
}

func NewFileRepositoryWith(seed []FileRecord) (FileRepository, error) {
	min, max, err := latencyFromEnv()
	if err != nil {
		return nil, err
	}

	return &fileMemory{
		latency: latency{min: min, max: max},
		records: append([]FileRecord(nil), seed...),
	}, nil
}

func (m *fileMemory) GetAll(ctx context.Context) ([]*FileRecord, error) {
	if err := m.latency.wait(ctx); err != nil {
		return nil, err
	}

	m.locker.Lock()
	defer m.locker.Unlock()

	result := make([]*FileRecord, 0, len(m.records))
	for i := range m.records {
		record := m.records[i]
		result = append(result, &record)
	}
	return result, nil
}

func (m *fileMemory) GetByID(ctx context.Context, id string) (*FileRecord, error) {
	if err := m.latency.wait(ctx); err != nil {
		return nil, err
	}

	m.locker.Lock()
	defer m.locker.Unlock()

	idx := m.find(id)
	if idx < 0 {
		return nil, errors.Wrapf(ErrNotFound, "file %s", id)
	}

	record := m.records[idx]
	return &record, nil
}

func (m *fileMemory) Create(ctx context.Context, input CreateFileInput) (*FileRecord, error) {
	if err := m.latency.wait(ctx); err != nil {
		return nil, err
	}

	m.locker.Lock()
	defer m.locker.Unlock()

	record := NewFileRecord(input)
	m.records = append([]FileRecord{record}, m.records...)
	return &record, nil
}

func (m *fileMemory) Update(ctx context.Context, id string, input UpdateFileInput) (*FileRecord, error) {
	if err := m.latency.wait(ctx); err != nil {
		return nil, err
	}

	m.locker.Lock()
	defer m.locker.Unlock()

	idx := m.find(id)
	if idx < 0 {
		return nil, errors.Wrapf(ErrNotFound, "file %s", id)
	}

	if input.Name != nil {
		m.records[idx].Name = *input.Name
	}
	if input.URL != nil {
		m.records[idx].URL = *input.URL
	}
	if input.ThumbnailURL != nil {
		m.records[idx].ThumbnailURL = *input.ThumbnailURL
	}

	record := m.records[idx]
	return &record, nil
}

func (m *fileMemory) Delete(ctx context.Context, id string) (*FileRecord, error) {
	if err := m.latency.wait(ctx); err != nil {
		return nil, err
	}

	m.locker.Lock()
	defer m.locker.Unlock()

	idx := m.find(id)
	if idx < 0 {
		return nil, errors.Wrapf(ErrNotFound, "file %s", id)
	}

	record := m.records[idx]
	m.records = append(m.records[:idx], m.records[idx+1:]...)
	return &record, nil
}

func (m *fileMemory) find(id string) int {
	for i := range m.records {
		if m.records[i].ID == id {
			return i
		}
	}
	return -1
}

type sessionMemory struct {
	locker   sync.Mutex
	latency  latency
	sessions []UploadSession
}

func NewSessionRepository() (SessionRepository, error) {
	min, max, err := latencyFromEnv()
	if err != nil {
		return nil, err
	}

	return &sessionMemory{
		latency: latency{min: min, max: max},
	}, nil
}

func (m *sessionMemory) GetAll(ctx context.Context) ([]*UploadSession, error) {
	if err := m.latency.wait(ctx); err != nil {
		return nil, err
	}

	m.locker.Lock()
	defer m.locker.Unlock()

	result := make([]*UploadSession, 0, len(m.sessions))
	for i := range m.sessions {
		session := m.sessions[i]
		result = append(result, &session)
	}
	return result, nil
}

func (m *sessionMemory) GetByID(ctx context.Context, id string) (*UploadSession, error) {
	if err := m.latency.wait(ctx); err != nil {
		return nil, err
	}

	m.locker.Lock()
	defer m.locker.Unlock()

	idx := m.find(id)
	if idx < 0 {
		return nil, errors.Wrapf(ErrNotFound, "session %s", id)
	}

	session := m.sessions[idx]
	return &session, nil
}

func (m *sessionMemory) Create(ctx context.Context, input CreateSessionInput) (*UploadSession, error) {
	if err := m.latency.wait(ctx); err != nil {
		return nil, err
	}

	m.locker.Lock()
	defer m.locker.Unlock()

	session := NewUploadSession(input)
	m.sessions = append([]UploadSession{session}, m.sessions...)
	return &session, nil
}

func (m *sessionMemory) Update(ctx context.Context, id string, input UpdateSessionInput) (*UploadSession, error) {
	if err := m.latency.wait(ctx); err != nil {
		return nil, err
	}

	m.locker.Lock()
	defer m.locker.Unlock()

	idx := m.find(id)
	if idx < 0 {
		return nil, errors.Wrapf(ErrNotFound, "session %s", id)
	}

	if input.EndTime != nil {
		m.sessions[idx].EndTime = *input.EndTime
	}

	session := m.sessions[idx]
	return &session, nil
}

func (m *sessionMemory) Delete(ctx context.Context, id string) (*UploadSession, error) {
	if err := m.latency.wait(ctx); err != nil {
		return nil, err
	}

	m.locker.Lock()
	defer m.locker.Unlock()

	idx := m.find(id)
	if idx < 0 {
		return nil, errors.Wrapf(ErrNotFound, "session %s", id)
	}

	session := m.sessions[idx]
	m.sessions = append(m.sessions[:idx], m.sessions[idx+1:]...)
	return &session, nil
}

func (m *sessionMemory) find(id string) int {
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			return i
		}
	}
	return -1
}
