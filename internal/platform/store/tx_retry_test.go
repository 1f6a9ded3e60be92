package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestRetryTx_RetriesSerializationFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retryTx(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retryTx: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestRetryTx_BoundedAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	deadlock := &pgconn.PgError{Code: "40P01"}
	err := retryTx(context.Background(), func() error {
		calls++
		return deadlock
	})
	if !errors.Is(err, deadlock) {
		t.Fatalf("expected the last error, got %v", err)
	}
	if calls != txRetryAttempts {
		t.Fatalf("calls = %d, want %d", calls, txRetryAttempts)
	}
}

func TestRetryTx_DoesNotRetryPlainErrors(t *testing.T) {
	t.Parallel()

	calls := 0
	boom := errors.New("unique constraint violated")
	err := retryTx(context.Background(), func() error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the error back, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestRetryTx_StopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retryTx(ctx, func() error {
		calls++
		cancel()
		return &pgconn.PgError{Code: "40001"}
	})
	if err == nil {
		t.Fatalf("expected error after cancellation")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want no retry after cancel", calls)
	}
}
