package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vocadrill/backend/internal/domain"
	"github.com/vocadrill/backend/internal/service/study/fsrs"
	"github.com/vocadrill/backend/internal/service/study/leitner"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type srsEntryRepo interface {
	Get(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.SRSEntry, error)
	GetForUpdate(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.SRSEntry, error)
	ListByDeck(ctx context.Context, userID uuid.UUID, deck string) ([]domain.SRSEntry, error)
	Upsert(ctx context.Context, entry *domain.SRSEntry) (*domain.SRSEntry, error)
	ExistingIDs(ctx context.Context, userID uuid.UUID, deck string, vocabIDs []string) (map[string]bool, error)
	CountDue(ctx context.Context, userID uuid.UUID, deck string, now time.Time) (int, error)
	CountNew(ctx context.Context, userID uuid.UUID, deck string) (int, error)
}

type leitnerEntryRepo interface {
	GetForUpdate(ctx context.Context, userID uuid.UUID, deck, vocabID string) (*domain.LeitnerEntry, error)
	ListByDeck(ctx context.Context, userID uuid.UUID, deck string) ([]domain.LeitnerEntry, error)
	Upsert(ctx context.Context, entry *domain.LeitnerEntry) (*domain.LeitnerEntry, error)
	ExistingIDs(ctx context.Context, userID uuid.UUID, deck string, vocabIDs []string) (map[string]bool, error)
	CountByBox(ctx context.Context, userID uuid.UUID, deck string) (domain.BoxCounts, error)
}

type reviewLogRepo interface {
	Create(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ReviewLog, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type weightsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) ([]float64, error)
	Upsert(ctx context.Context, userID uuid.UUID, weights []float64) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds the scheduling knobs for the study service.
type Config struct {
	DesiredRetention float64
	MaxIntervalDays  int
	Session          leitner.SessionConfig
}

// DefaultConfig returns the built-in scheduling configuration.
func DefaultConfig() Config {
	return Config{
		DesiredRetention: 0.9,
		MaxIntervalDays:  365,
		Session:          leitner.DefaultSessionConfig(),
	}
}

// Service implements the study business logic: reviews, quizzes, session
// building and weight evaluation.
type Service struct {
	srs     srsEntryRepo
	boxes   leitnerEntryRepo
	reviews reviewLogRepo
	weights weightsRepo
	tx      txManager
	log     *slog.Logger
	cfg     Config
}

// NewService creates a new study service.
func NewService(
	log *slog.Logger,
	srs srsEntryRepo,
	boxes leitnerEntryRepo,
	reviews reviewLogRepo,
	weights weightsRepo,
	tx txManager,
	cfg Config,
) (*Service, error) {
	if cfg.DesiredRetention <= 0 || cfg.DesiredRetention >= 1 {
		return nil, fmt.Errorf("invalid desired retention: %v", cfg.DesiredRetention)
	}

	return &Service{
		srs:     srs,
		boxes:   boxes,
		reviews: reviews,
		weights: weights,
		tx:      tx,
		log:     log.With("service", "study"),
		cfg:     cfg,
	}, nil
}

// userParameters builds the scheduling parameters for a user, falling back to
// the default weight vector when the persisted record is absent or malformed.
func (s *Service) userParameters(ctx context.Context, userID uuid.UUID) fsrs.Parameters {
	params := fsrs.Parameters{
		W:                fsrs.DefaultWeights,
		DesiredRetention: s.cfg.DesiredRetention,
		MaxIntervalDays:  s.cfg.MaxIntervalDays,
	}

	vals, err := s.weights.Get(ctx, userID)
	if err != nil {
		return params
	}
	params.W = fsrs.WeightsFromSlice(vals)
	return params
}
