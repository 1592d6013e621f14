package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

// Ensure, that repositoryMock does implement repository.
var _ repository = &repositoryMock{}

type repositoryMock struct {
	LoadFunc        func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	SaveFunc        func(ctx context.Context, s *domain.Session) error
	DeleteStaleFunc func(ctx context.Context, before time.Time) (int64, error)

	calls struct {
		Load []struct {
			ID uuid.UUID
		}
		Save []struct {
			S *domain.Session
		}
		DeleteStale []struct {
			Before time.Time
		}
	}
	lockLoad        sync.RWMutex
	lockSave        sync.RWMutex
	lockDeleteStale sync.RWMutex
}

func (mock *repositoryMock) Load(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if mock.LoadFunc == nil {
		panic("repositoryMock.LoadFunc: method is nil but repository.Load was just called")
	}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, struct{ ID uuid.UUID }{ID: id})
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx, id)
}

func (mock *repositoryMock) Save(ctx context.Context, s *domain.Session) error {
	if mock.SaveFunc == nil {
		panic("repositoryMock.SaveFunc: method is nil but repository.Save was just called")
	}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, struct{ S *domain.Session }{S: s})
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, s)
}

func (mock *repositoryMock) SaveCalls() []struct{ S *domain.Session } {
	mock.lockSave.RLock()
	defer mock.lockSave.RUnlock()
	return mock.calls.Save
}

func (mock *repositoryMock) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	if mock.DeleteStaleFunc == nil {
		panic("repositoryMock.DeleteStaleFunc: method is nil but repository.DeleteStale was just called")
	}
	mock.lockDeleteStale.Lock()
	mock.calls.DeleteStale = append(mock.calls.DeleteStale, struct{ Before time.Time }{Before: before})
	mock.lockDeleteStale.Unlock()
	return mock.DeleteStaleFunc(ctx, before)
}

func (mock *repositoryMock) DeleteStaleCalls() []struct{ Before time.Time } {
	mock.lockDeleteStale.RLock()
	defer mock.lockDeleteStale.RUnlock()
	return mock.calls.DeleteStale
}
