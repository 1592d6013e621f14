package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
	"github.com/projectmoneymatter/psle-science-tutor/internal/service/quiz"
)

// Ensure, that quizServiceMock does implement quizService.
var _ quizService = &quizServiceMock{}

type quizServiceMock struct {
	GenerateQuestionFunc func(ctx context.Context, sess *domain.Session, in quiz.GenerateInput) (*domain.QuizQuestion, error)
	CheckAnswerFunc      func(ctx context.Context, sess *domain.Session, in quiz.AnswerInput) (*quiz.AnswerResult, error)

	calls struct {
		GenerateQuestion []struct {
			Ctx  context.Context
			Sess *domain.Session
			In   quiz.GenerateInput
		}
		CheckAnswer []struct {
			Ctx  context.Context
			Sess *domain.Session
			In   quiz.AnswerInput
		}
	}
	lockGenerateQuestion sync.RWMutex
	lockCheckAnswer      sync.RWMutex
}

func (mock *quizServiceMock) GenerateQuestion(ctx context.Context, sess *domain.Session, in quiz.GenerateInput) (*domain.QuizQuestion, error) {
	if mock.GenerateQuestionFunc == nil {
		panic("quizServiceMock.GenerateQuestionFunc: method is nil but quizService.GenerateQuestion was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Sess *domain.Session
		In   quiz.GenerateInput
	}{Ctx: ctx, Sess: sess, In: in}
	mock.lockGenerateQuestion.Lock()
	mock.calls.GenerateQuestion = append(mock.calls.GenerateQuestion, callInfo)
	mock.lockGenerateQuestion.Unlock()
	return mock.GenerateQuestionFunc(ctx, sess, in)
}

func (mock *quizServiceMock) GenerateQuestionCalls() []struct {
	Ctx  context.Context
	Sess *domain.Session
	In   quiz.GenerateInput
} {
	mock.lockGenerateQuestion.RLock()
	defer mock.lockGenerateQuestion.RUnlock()
	return mock.calls.GenerateQuestion
}

func (mock *quizServiceMock) CheckAnswer(ctx context.Context, sess *domain.Session, in quiz.AnswerInput) (*quiz.AnswerResult, error) {
	if mock.CheckAnswerFunc == nil {
		panic("quizServiceMock.CheckAnswerFunc: method is nil but quizService.CheckAnswer was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Sess *domain.Session
		In   quiz.AnswerInput
	}{Ctx: ctx, Sess: sess, In: in}
	mock.lockCheckAnswer.Lock()
	mock.calls.CheckAnswer = append(mock.calls.CheckAnswer, callInfo)
	mock.lockCheckAnswer.Unlock()
	return mock.CheckAnswerFunc(ctx, sess, in)
}

func (mock *quizServiceMock) CheckAnswerCalls() []struct {
	Ctx  context.Context
	Sess *domain.Session
	In   quiz.AnswerInput
} {
	mock.lockCheckAnswer.RLock()
	defer mock.lockCheckAnswer.RUnlock()
	return mock.calls.CheckAnswer
}

// Ensure, that markingServiceMock does implement markingService.
var _ markingService = &markingServiceMock{}

type markingServiceMock struct {
	MarkFunc func(ctx context.Context, sess *domain.Session, img llm.Image) domain.WorksheetFeedback

	calls struct {
		Mark []struct {
			Ctx  context.Context
			Sess *domain.Session
			Img  llm.Image
		}
	}
	lockMark sync.RWMutex
}

func (mock *markingServiceMock) Mark(ctx context.Context, sess *domain.Session, img llm.Image) domain.WorksheetFeedback {
	if mock.MarkFunc == nil {
		panic("markingServiceMock.MarkFunc: method is nil but markingService.Mark was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Sess *domain.Session
		Img  llm.Image
	}{Ctx: ctx, Sess: sess, Img: img}
	mock.lockMark.Lock()
	mock.calls.Mark = append(mock.calls.Mark, callInfo)
	mock.lockMark.Unlock()
	return mock.MarkFunc(ctx, sess, img)
}

func (mock *markingServiceMock) MarkCalls() []struct {
	Ctx  context.Context
	Sess *domain.Session
	Img  llm.Image
} {
	mock.lockMark.RLock()
	defer mock.lockMark.RUnlock()
	return mock.calls.Mark
}

// Ensure, that sessionStoreMock does implement sessionStore.
var _ sessionStore = &sessionStoreMock{}

type sessionStoreMock struct {
	LoadFunc func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	SaveFunc func(ctx context.Context, s *domain.Session) error

	calls struct {
		Load []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Save []struct {
			Ctx context.Context
			S   *domain.Session
		}
	}
	lockLoad sync.RWMutex
	lockSave sync.RWMutex
}

func (mock *sessionStoreMock) Load(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if mock.LoadFunc == nil {
		panic("sessionStoreMock.LoadFunc: method is nil but sessionStore.Load was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, callInfo)
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx, id)
}

func (mock *sessionStoreMock) LoadCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockLoad.RLock()
	defer mock.lockLoad.RUnlock()
	return mock.calls.Load
}

func (mock *sessionStoreMock) Save(ctx context.Context, s *domain.Session) error {
	if mock.SaveFunc == nil {
		panic("sessionStoreMock.SaveFunc: method is nil but sessionStore.Save was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.Session
	}{Ctx: ctx, S: s}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, s)
}

func (mock *sessionStoreMock) SaveCalls() []struct {
	Ctx context.Context
	S   *domain.Session
} {
	mock.lockSave.RLock()
	defer mock.lockSave.RUnlock()
	return mock.calls.Save
}
