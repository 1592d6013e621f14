package quiz

import (
	"context"
	"sync"
)

var _ model = &modelMock{}

type modelMock struct {
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)

	calls struct {
		GenerateText []struct {
			Ctx    context.Context
			Prompt string
		}
	}
	lockGenerateText sync.RWMutex
}

func (mock *modelMock) GenerateText(ctx context.Context, prompt string) (string, error) {
	if mock.GenerateTextFunc == nil {
		panic("modelMock.GenerateTextFunc: method is nil but model.GenerateText was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Prompt string
	}{Ctx: ctx, Prompt: prompt}
	mock.lockGenerateText.Lock()
	mock.calls.GenerateText = append(mock.calls.GenerateText, callInfo)
	mock.lockGenerateText.Unlock()
	return mock.GenerateTextFunc(ctx, prompt)
}

func (mock *modelMock) GenerateTextCalls() []struct {
	Ctx    context.Context
	Prompt string
} {
	mock.lockGenerateText.RLock()
	calls := mock.calls.GenerateText
	mock.lockGenerateText.RUnlock()
	return calls
}
