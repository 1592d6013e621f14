package marking

import (
	"context"
	"sync"

	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
)

var _ model = &modelMock{}

type modelMock struct {
	GenerateWithImageFunc func(ctx context.Context, prompt string, img llm.Image) (string, error)

	calls struct {
		GenerateWithImage []struct {
			Ctx    context.Context
			Prompt string
			Img    llm.Image
		}
	}
	lockGenerateWithImage sync.RWMutex
}

func (mock *modelMock) GenerateWithImage(ctx context.Context, prompt string, img llm.Image) (string, error) {
	if mock.GenerateWithImageFunc == nil {
		panic("modelMock.GenerateWithImageFunc: method is nil but model.GenerateWithImage was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Prompt string
		Img    llm.Image
	}{Ctx: ctx, Prompt: prompt, Img: img}
	mock.lockGenerateWithImage.Lock()
	mock.calls.GenerateWithImage = append(mock.calls.GenerateWithImage, callInfo)
	mock.lockGenerateWithImage.Unlock()
	return mock.GenerateWithImageFunc(ctx, prompt, img)
}

func (mock *modelMock) GenerateWithImageCalls() []struct {
	Ctx    context.Context
	Prompt string
	Img    llm.Image
} {
	mock.lockGenerateWithImage.RLock()
	calls := mock.calls.GenerateWithImage
	mock.lockGenerateWithImage.RUnlock()
	return calls
}

var _ ImageArchive = &imageArchiveMock{}

type imageArchiveMock struct {
	PutFunc func(ctx context.Context, key string, img llm.Image) error

	calls struct {
		Put []struct {
			Ctx context.Context
			Key string
			Img llm.Image
		}
	}
	lockPut sync.RWMutex
}

func (mock *imageArchiveMock) Put(ctx context.Context, key string, img llm.Image) error {
	if mock.PutFunc == nil {
		panic("imageArchiveMock.PutFunc: method is nil but ImageArchive.Put was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
		Img llm.Image
	}{Ctx: ctx, Key: key, Img: img}
	mock.lockPut.Lock()
	mock.calls.Put = append(mock.calls.Put, callInfo)
	mock.lockPut.Unlock()
	return mock.PutFunc(ctx, key, img)
}

func (mock *imageArchiveMock) PutCalls() []struct {
	Ctx context.Context
	Key string
	Img llm.Image
} {
	mock.lockPut.RLock()
	calls := mock.calls.Put
	mock.lockPut.RUnlock()
	return calls
}
