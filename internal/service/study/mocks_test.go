package study

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vocadrill/backend/internal/domain"
)

var (
	_ srsEntryRepo     = &srsEntryRepoMock{}
	_ leitnerEntryRepo = &leitnerEntryRepoMock{}
	_ reviewLogRepo    = &reviewLogRepoMock{}
	_ weightsRepo      = &weightsRepoMock{}
	_ txManager        = &txManagerMock{}
)

type srsEntryRepoMock struct {
	GetFunc          func(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.SRSEntry, error)
	GetForUpdateFunc func(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.SRSEntry, error)
	ListByDeckFunc   func(ctx context.Context, userID uuid.UUID, deck string) ([]domain.SRSEntry, error)
	UpsertFunc       func(ctx context.Context, entry *domain.SRSEntry) (*domain.SRSEntry, error)
	ExistingIDsFunc  func(ctx context.Context, userID uuid.UUID, deck string, vocabIDs []string) (map[string]bool, error)
	CountDueFunc     func(ctx context.Context, userID uuid.UUID, deck string, now time.Time) (int, error)
	CountNewFunc     func(ctx context.Context, userID uuid.UUID, deck string) (int, error)

	calls struct {
		GetForUpdate []struct {
			UserID        uuid.UUID
			Deck, VocabID string
		}
		Upsert []struct {
			Entry *domain.SRSEntry
		}
		ExistingIDs []struct {
			VocabIDs []string
		}
	}
	mu sync.RWMutex
}

func (m *srsEntryRepoMock) Get(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.SRSEntry, error) {
	if m.GetFunc == nil {
		panic("srsEntryRepoMock.GetFunc: method is nil but srsEntryRepo.Get was just called")
	}
	return m.GetFunc(ctx, userID, deck, vocabID)
}

func (m *srsEntryRepoMock) GetForUpdate(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.SRSEntry, error) {
	if m.GetForUpdateFunc == nil {
		panic("srsEntryRepoMock.GetForUpdateFunc: method is nil but srsEntryRepo.GetForUpdate was just called")
	}
	m.mu.Lock()
	m.calls.GetForUpdate = append(m.calls.GetForUpdate, struct {
		UserID        uuid.UUID
		Deck, VocabID string
	}{userID, deck, vocabID})
	m.mu.Unlock()
	return m.GetForUpdateFunc(ctx, userID, deck, vocabID)
}

func (m *srsEntryRepoMock) GetForUpdateCalls() []struct {
	UserID        uuid.UUID
	Deck, VocabID string
} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.GetForUpdate
}

func (m *srsEntryRepoMock) ListByDeck(ctx context.Context, userID uuid.UUID, deck string) ([]domain.SRSEntry, error) {
	if m.ListByDeckFunc == nil {
		panic("srsEntryRepoMock.ListByDeckFunc: method is nil but srsEntryRepo.ListByDeck was just called")
	}
	return m.ListByDeckFunc(ctx, userID, deck)
}

func (m *srsEntryRepoMock) Upsert(ctx context.Context, entry *domain.SRSEntry) (*domain.SRSEntry, error) {
	if m.UpsertFunc == nil {
		panic("srsEntryRepoMock.UpsertFunc: method is nil but srsEntryRepo.Upsert was just called")
	}
	m.mu.Lock()
	m.calls.Upsert = append(m.calls.Upsert, struct {
		Entry *domain.SRSEntry
	}{entry})
	m.mu.Unlock()
	return m.UpsertFunc(ctx, entry)
}

func (m *srsEntryRepoMock) UpsertCalls() []struct {
	Entry *domain.SRSEntry
} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Upsert
}

func (m *srsEntryRepoMock) ExistingIDs(ctx context.Context, userID uuid.UUID, deck string, vocabIDs []string) (map[string]bool, error) {
	if m.ExistingIDsFunc == nil {
		panic("srsEntryRepoMock.ExistingIDsFunc: method is nil but srsEntryRepo.ExistingIDs was just called")
	}
	m.mu.Lock()
	m.calls.ExistingIDs = append(m.calls.ExistingIDs, struct {
		VocabIDs []string
	}{vocabIDs})
	m.mu.Unlock()
	return m.ExistingIDsFunc(ctx, userID, deck, vocabIDs)
}

func (m *srsEntryRepoMock) CountDue(ctx context.Context, userID uuid.UUID, deck string, now time.Time) (int, error) {
	if m.CountDueFunc == nil {
		panic("srsEntryRepoMock.CountDueFunc: method is nil but srsEntryRepo.CountDue was just called")
	}
	return m.CountDueFunc(ctx, userID, deck, now)
}

func (m *srsEntryRepoMock) CountNew(ctx context.Context, userID uuid.UUID, deck string) (int, error) {
	if m.CountNewFunc == nil {
		panic("srsEntryRepoMock.CountNewFunc: method is nil but srsEntryRepo.CountNew was just called")
	}
	return m.CountNewFunc(ctx, userID, deck)
}

type leitnerEntryRepoMock struct {
	GetForUpdateFunc func(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.LeitnerEntry, error)
	ListByDeckFunc   func(ctx context.Context, userID uuid.UUID, deck string) ([]domain.LeitnerEntry, error)
	UpsertFunc       func(ctx context.Context, entry *domain.LeitnerEntry) (*domain.LeitnerEntry, error)
	ExistingIDsFunc  func(ctx context.Context, userID uuid.UUID, deck string, vocabIDs []string) (map[string]bool, error)
	CountByBoxFunc   func(ctx context.Context, userID uuid.UUID, deck string) (domain.BoxCounts, error)

	calls struct {
		Upsert []struct {
			Entry *domain.LeitnerEntry
		}
	}
	mu sync.RWMutex
}

func (m *leitnerEntryRepoMock) GetForUpdate(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.LeitnerEntry, error) {
	if m.GetForUpdateFunc == nil {
		panic("leitnerEntryRepoMock.GetForUpdateFunc: method is nil but leitnerEntryRepo.GetForUpdate was just called")
	}
	return m.GetForUpdateFunc(ctx, userID, deck, vocabID)
}

func (m *leitnerEntryRepoMock) ListByDeck(ctx context.Context, userID uuid.UUID, deck string) ([]domain.LeitnerEntry, error) {
	if m.ListByDeckFunc == nil {
		panic("leitnerEntryRepoMock.ListByDeckFunc: method is nil but leitnerEntryRepo.ListByDeck was just called")
	}
	return m.ListByDeckFunc(ctx, userID, deck)
}

func (m *leitnerEntryRepoMock) Upsert(ctx context.Context, entry *domain.LeitnerEntry) (*domain.LeitnerEntry, error) {
	if m.UpsertFunc == nil {
		panic("leitnerEntryRepoMock.UpsertFunc: method is nil but leitnerEntryRepo.Upsert was just called")
	}
	m.mu.Lock()
	m.calls.Upsert = append(m.calls.Upsert, struct {
		Entry *domain.LeitnerEntry
	}{entry})
	m.mu.Unlock()
	return m.UpsertFunc(ctx, entry)
}

func (m *leitnerEntryRepoMock) UpsertCalls() []struct {
	Entry *domain.LeitnerEntry
} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Upsert
}

func (m *leitnerEntryRepoMock) ExistingIDs(ctx context.Context, userID uuid.UUID, deck string, vocabIDs []string) (map[string]bool, error) {
	if m.ExistingIDsFunc == nil {
		panic("leitnerEntryRepoMock.ExistingIDsFunc: method is nil but leitnerEntryRepo.ExistingIDs was just called")
	}
	return m.ExistingIDsFunc(ctx, userID, deck, vocabIDs)
}

func (m *leitnerEntryRepoMock) CountByBox(ctx context.Context, userID uuid.UUID, deck string) (domain.BoxCounts, error) {
	if m.CountByBoxFunc == nil {
		panic("leitnerEntryRepoMock.CountByBoxFunc: method is nil but leitnerEntryRepo.CountByBox was just called")
	}
	return m.CountByBoxFunc(ctx, userID, deck)
}

type reviewLogRepoMock struct {
	CreateFunc      func(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error)
	ListByUserFunc  func(ctx context.Context, userID uuid.UUID) ([]domain.ReviewLog, error)
	CountByUserFunc func(ctx context.Context, userID uuid.UUID) (int, error)

	calls struct {
		Create []struct {
			Log *domain.ReviewLog
		}
	}
	mu sync.RWMutex
}

func (m *reviewLogRepoMock) Create(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error) {
	if m.CreateFunc == nil {
		panic("reviewLogRepoMock.CreateFunc: method is nil but reviewLogRepo.Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, struct {
		Log *domain.ReviewLog
	}{log})
	m.mu.Unlock()
	return m.CreateFunc(ctx, log)
}

func (m *reviewLogRepoMock) CreateCalls() []struct {
	Log *domain.ReviewLog
} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Create
}

func (m *reviewLogRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ReviewLog, error) {
	if m.ListByUserFunc == nil {
		panic("reviewLogRepoMock.ListByUserFunc: method is nil but reviewLogRepo.ListByUser was just called")
	}
	return m.ListByUserFunc(ctx, userID)
}

func (m *reviewLogRepoMock) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CountByUserFunc == nil {
		panic("reviewLogRepoMock.CountByUserFunc: method is nil but reviewLogRepo.CountByUser was just called")
	}
	return m.CountByUserFunc(ctx, userID)
}

type weightsRepoMock struct {
	GetFunc    func(ctx context.Context, userID uuid.UUID) ([]float64, error)
	UpsertFunc func(ctx context.Context, userID uuid.UUID, weights []float64) error
}

func (m *weightsRepoMock) Get(ctx context.Context, userID uuid.UUID) ([]float64, error) {
	if m.GetFunc == nil {
		panic("weightsRepoMock.GetFunc: method is nil but weightsRepo.Get was just called")
	}
	return m.GetFunc(ctx, userID)
}

func (m *weightsRepoMock) Upsert(ctx context.Context, userID uuid.UUID, weights []float64) error {
	if m.UpsertFunc == nil {
		panic("weightsRepoMock.UpsertFunc: method is nil but weightsRepo.Upsert was just called")
	}
	return m.UpsertFunc(ctx, userID, weights)
}

// txManagerMock runs the callback directly, without a real transaction.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}
