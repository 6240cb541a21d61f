package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vocadrill/backend/internal/adapter/postgres"
	"github.com/vocadrill/backend/internal/adapter/postgres/testhelper"
)

// entryExists checks whether an srs_entries row with the given key exists.
func entryExists(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, deck, vocabID string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM srs_entries WHERE user_id = $1 AND deck = $2 AND vocab_id = $3)`,
		userID, deck, vocabID,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("entryExists query: %v", err)
	}
	return exists
}

func insertEntry(ctx context.Context, q postgres.Querier, userID uuid.UUID, deck, vocabID string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO srs_entries (user_id, deck, vocab_id, stability, difficulty, last_reviewed_at, state, next_interval_days, due_at, created_at, updated_at)
		 VALUES ($1, $2, $3, 0.01, 5, '', 'new', 0, '2024-01-01T00:00:00Z', now(), now())`,
		userID, deck, vocabID,
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	userID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		return insertEntry(ctx, q, userID, "tx-test", "commit")
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !entryExists(t, pool, userID, "tx-test", "commit") {
		t.Fatal("expected entry to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	userID := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if execErr := insertEntry(ctx, q, userID, "tx-test", "rollback"); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if entryExists(t, pool, userID, "tx-test", "rollback") {
		t.Fatal("expected entry NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	userID := uuid.New()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		// Verify data was rolled back.
		if entryExists(t, pool, userID, "tx-test", "panic") {
			t.Fatal("expected entry NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if err := insertEntry(ctx, q, userID, "tx-test", "panic"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	userID := uuid.New()

	// Insert inside a transaction, then verify it's visible within the same tx
	// but NOT outside until commit.
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if err := insertEntry(ctx, q, userID, "tx-test", "visibility"); err != nil {
			return err
		}

		// Should be visible within the transaction.
		var exists bool
		err := q.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM srs_entries WHERE user_id = $1 AND deck = 'tx-test' AND vocab_id = 'visibility')`,
			userID,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Error("expected entry to be visible inside the transaction")
		}

		// Should NOT be visible outside the transaction (pool connection).
		if entryExists(t, pool, userID, "tx-test", "visibility") {
			t.Error("expected entry to be invisible outside the uncommitted transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !entryExists(t, pool, userID, "tx-test", "visibility") {
		t.Fatal("expected entry to exist after commit")
	}
}
