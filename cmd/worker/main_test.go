package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"videoforge/internal/queue"
)

type idleDB struct{}

func (idleDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (idleDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return noRows{}
}

type noRows struct{}

func (noRows) Scan(...any) error { return pgx.ErrNoRows }

func TestRunStopsPromptlyOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &uploadWorker{
		ctx:          ctx,
		queue:        queue.New(idleDB{}, zerolog.Nop()),
		logger:       zerolog.Nop(),
		pollInterval: time.Minute,
	}

	done := make(chan error, 1)
	go func() { done <- w.Run() }()

	// Let the loop reach its idle wait, then cancel. The worker must not
	// sit out the remaining poll interval.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}
