package rest

import (
	"context"
	"sync"

	"github.com/vocadrill/backend/internal/domain"
	"github.com/vocadrill/backend/internal/service/study"
)

var _ studyService = &studyServiceMock{}

type studyServiceMock struct {
	ReviewCardFunc      func(ctx context.Context, input study.ReviewCardInput) (*study.ReviewResult, error)
	AnswerQuizFunc      func(ctx context.Context, input study.AnswerQuizInput) (*domain.LeitnerEntry, error)
	BuildSessionFunc    func(ctx context.Context, input study.BuildSessionInput) ([]string, error)
	EnsureEntriesFunc   func(ctx context.Context, input study.EnsureEntriesInput) (*study.EnsureResult, error)
	EvaluateWeightsFunc func(ctx context.Context, input study.EvaluateWeightsInput) (*study.EvaluationResult, error)
	SaveWeightsFunc     func(ctx context.Context, weights []float64) error
	GetDashboardFunc    func(ctx context.Context, deck string) (domain.Dashboard, error)

	calls struct {
		ReviewCard []struct {
			Ctx   context.Context
			Input study.ReviewCardInput
		}
		SaveWeights []struct {
			Ctx     context.Context
			Weights []float64
		}
	}
	lockReviewCard  sync.RWMutex
	lockSaveWeights sync.RWMutex
}

func (mock *studyServiceMock) ReviewCard(ctx context.Context, input study.ReviewCardInput) (*study.ReviewResult, error) {
	if mock.ReviewCardFunc == nil {
		panic("studyServiceMock.ReviewCardFunc: method is nil but studyService.ReviewCard was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input study.ReviewCardInput
	}{Ctx: ctx, Input: input}
	mock.lockReviewCard.Lock()
	mock.calls.ReviewCard = append(mock.calls.ReviewCard, callInfo)
	mock.lockReviewCard.Unlock()
	return mock.ReviewCardFunc(ctx, input)
}

func (mock *studyServiceMock) ReviewCardCalls() []struct {
	Ctx   context.Context
	Input study.ReviewCardInput
} {
	mock.lockReviewCard.RLock()
	calls := mock.calls.ReviewCard
	mock.lockReviewCard.RUnlock()
	return calls
}

func (mock *studyServiceMock) AnswerQuiz(ctx context.Context, input study.AnswerQuizInput) (*domain.LeitnerEntry, error) {
	if mock.AnswerQuizFunc == nil {
		panic("studyServiceMock.AnswerQuizFunc: method is nil but studyService.AnswerQuiz was just called")
	}
	return mock.AnswerQuizFunc(ctx, input)
}

func (mock *studyServiceMock) BuildSession(ctx context.Context, input study.BuildSessionInput) ([]string, error) {
	if mock.BuildSessionFunc == nil {
		panic("studyServiceMock.BuildSessionFunc: method is nil but studyService.BuildSession was just called")
	}
	return mock.BuildSessionFunc(ctx, input)
}

func (mock *studyServiceMock) EnsureEntries(ctx context.Context, input study.EnsureEntriesInput) (*study.EnsureResult, error) {
	if mock.EnsureEntriesFunc == nil {
		panic("studyServiceMock.EnsureEntriesFunc: method is nil but studyService.EnsureEntries was just called")
	}
	return mock.EnsureEntriesFunc(ctx, input)
}

func (mock *studyServiceMock) EvaluateWeights(ctx context.Context, input study.EvaluateWeightsInput) (*study.EvaluationResult, error) {
	if mock.EvaluateWeightsFunc == nil {
		panic("studyServiceMock.EvaluateWeightsFunc: method is nil but studyService.EvaluateWeights was just called")
	}
	return mock.EvaluateWeightsFunc(ctx, input)
}

func (mock *studyServiceMock) SaveWeights(ctx context.Context, weights []float64) error {
	if mock.SaveWeightsFunc == nil {
		panic("studyServiceMock.SaveWeightsFunc: method is nil but studyService.SaveWeights was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Weights []float64
	}{Ctx: ctx, Weights: weights}
	mock.lockSaveWeights.Lock()
	mock.calls.SaveWeights = append(mock.calls.SaveWeights, callInfo)
	mock.lockSaveWeights.Unlock()
	return mock.SaveWeightsFunc(ctx, weights)
}

func (mock *studyServiceMock) SaveWeightsCalls() []struct {
	Ctx     context.Context
	Weights []float64
} {
	mock.lockSaveWeights.RLock()
	calls := mock.calls.SaveWeights
	mock.lockSaveWeights.RUnlock()
	return calls
}

func (mock *studyServiceMock) GetDashboard(ctx context.Context, deck string) (domain.Dashboard, error) {
	if mock.GetDashboardFunc == nil {
		panic("studyServiceMock.GetDashboardFunc: method is nil but studyService.GetDashboard was just called")
	}
	return mock.GetDashboardFunc(ctx, deck)
}
