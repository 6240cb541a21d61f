// Command evaluate replays a user's review history against a candidate FSRS
// weight vector and prints the mean cross-entropy loss. It is intended for
// offline weight tuning, not as part of the main server.
//
// Flags:
//
//	--user     user UUID whose history is replayed (required)
//	--weights  comma-separated vector of 17 floats (default: stored or built-in)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vocadrill/backend/internal/adapter/postgres"
	"github.com/vocadrill/backend/internal/adapter/postgres/reviewlog"
	"github.com/vocadrill/backend/internal/adapter/postgres/srsweights"
	"github.com/vocadrill/backend/internal/config"
	"github.com/vocadrill/backend/internal/domain"
	"github.com/vocadrill/backend/internal/service/study/fsrs"
	"github.com/vocadrill/backend/internal/service/study/optimizer"
)

func main() {
	userFlag := flag.String("user", "", "user UUID whose history is replayed")
	weightsFlag := flag.String("weights", "", "comma-separated vector of 17 floats")
	flag.Parse()

	if err := run(*userFlag, *weightsFlag); err != nil {
		log.Fatalf("evaluate: %v", err)
	}
}

func run(userRaw, weightsRaw string) error {
	userID, err := uuid.Parse(userRaw)
	if err != nil {
		return fmt.Errorf("--user: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	weights, source, err := resolveWeights(ctx, srsweights.New(pool), userID, weightsRaw)
	if err != nil {
		return err
	}

	logs, err := reviewlog.New(pool).ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list review logs: %w", err)
	}

	replay := make([]optimizer.Log, 0, len(logs))
	for _, l := range logs {
		replay = append(replay, optimizer.Log{
			CardID:     l.CardID(),
			ReviewedAt: l.ReviewedAt,
			Rating:     fsrs.Rating(l.Rating.Score()),
		})
	}

	loss := optimizer.LogLoss(weights, replay)

	fmt.Fprintf(os.Stdout, "user:    %s\n", userID)
	fmt.Fprintf(os.Stdout, "weights: %s\n", source)
	fmt.Fprintf(os.Stdout, "logs:    %d\n", len(replay))
	fmt.Fprintf(os.Stdout, "loss:    %.6f\n", loss)

	return nil
}

// resolveWeights picks the candidate vector: the --weights flag wins, then the
// user's stored vector, then the built-in defaults. A flag vector is taken
// verbatim; only stored records go through the lenient WeightsFromSlice path.
func resolveWeights(ctx context.Context, repo *srsweights.Repo, userID uuid.UUID, raw string) (fsrs.Weights, string, error) {
	if raw != "" {
		values, err := parseWeights(raw)
		if err != nil {
			return fsrs.Weights{}, "", fmt.Errorf("--weights: %w", err)
		}
		var w fsrs.Weights
		copy(w[:], values)
		return w, "flag", nil
	}

	stored, err := repo.Get(ctx, userID)
	switch {
	case err == nil:
		return fsrs.WeightsFromSlice(stored), "stored", nil
	case errors.Is(err, domain.ErrNotFound):
		return fsrs.DefaultWeights, "default", nil
	default:
		return fsrs.Weights{}, "", fmt.Errorf("load stored weights: %w", err)
	}
}

func parseWeights(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 17 {
		return nil, fmt.Errorf("want 17 values, got %d", len(parts))
	}
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		// ParseFloat accepts "NaN" and "Inf"; a candidate vector with
		// either is meaningless, so reject it here.
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite value %q", p)
		}
		values = append(values, v)
	}
	return values, nil
}
