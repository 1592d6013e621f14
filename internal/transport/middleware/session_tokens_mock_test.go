package middleware

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ensure, that sessionTokensMock does implement sessionTokens.
var _ sessionTokens = &sessionTokensMock{}

type sessionTokensMock struct {
	IssueFunc    func(sessionID uuid.UUID) (string, error)
	ValidateFunc func(token string) (uuid.UUID, error)
	TTLFunc      func() time.Duration

	calls struct {
		Issue []struct {
			SessionID uuid.UUID
		}
		Validate []struct {
			Token string
		}
	}
	lockIssue    sync.RWMutex
	lockValidate sync.RWMutex
}

func (mock *sessionTokensMock) Issue(sessionID uuid.UUID) (string, error) {
	if mock.IssueFunc == nil {
		panic("sessionTokensMock.IssueFunc: method is nil but sessionTokens.Issue was just called")
	}
	mock.lockIssue.Lock()
	mock.calls.Issue = append(mock.calls.Issue, struct{ SessionID uuid.UUID }{SessionID: sessionID})
	mock.lockIssue.Unlock()
	return mock.IssueFunc(sessionID)
}

func (mock *sessionTokensMock) IssueCalls() []struct{ SessionID uuid.UUID } {
	mock.lockIssue.RLock()
	defer mock.lockIssue.RUnlock()
	return mock.calls.Issue
}

func (mock *sessionTokensMock) Validate(token string) (uuid.UUID, error) {
	if mock.ValidateFunc == nil {
		panic("sessionTokensMock.ValidateFunc: method is nil but sessionTokens.Validate was just called")
	}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, struct{ Token string }{Token: token})
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(token)
}

func (mock *sessionTokensMock) ValidateCalls() []struct{ Token string } {
	mock.lockValidate.RLock()
	defer mock.lockValidate.RUnlock()
	return mock.calls.Validate
}

func (mock *sessionTokensMock) TTL() time.Duration {
	if mock.TTLFunc == nil {
		return time.Hour
	}
	return mock.TTLFunc()
}
