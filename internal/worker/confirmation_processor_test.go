package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func TestNewConfirmationProcessorDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	proc := NewConfirmationProcessor(&testhelpers.ConfirmationFacadeStub{}, time.Second, 0, 0, logger)
	if proc.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", proc.batchSize)
	}
	if proc.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", proc.workers)
	}
}

func TestConfirmationProcessorMarksSentOrders(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.ConfirmationFacadeStub{
		Orders: [][]model.Order{{{ID: 1, Number: "ORD-20250901-AAAAAA"}}},
	}
	proc := NewConfirmationProcessor(facade, 10*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		marked := len(facade.Marked) > 0
		facade.Unlock()
		if marked {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for confirmation retry")
		case <-time.After(10 * time.Millisecond):
		}
	}

	proc.Stop()
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Marked) == 0 {
		t.Fatalf("expected confirmation to be marked sent")
	}
	if facade.Marked[0] != 1 {
		t.Fatalf("expected order 1 to be marked, got %d", facade.Marked[0])
	}
}

func TestConfirmationProcessorRetriesFailedDelivery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	attempts := int32(0)
	facade := &testhelpers.ConfirmationFacadeStub{
		Orders: [][]model.Order{
			{{ID: 1, Number: "ORD-20250901-AAAAAA"}},
			{{ID: 1, Number: "ORD-20250901-AAAAAA"}},
		},
		SendFn: func(ctx context.Context, order *model.Order, items []model.OrderItem) model.NotificationOutcome {
			return model.NotificationOutcome{Sent: atomic.AddInt32(&attempts, 1) > 1}
		},
	}

	proc := NewConfirmationProcessor(facade, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	deadline := time.After(time.Second)
	for {
		facade.Lock()
		if len(facade.Marked) > 0 {
			facade.Unlock()
			break
		}
		facade.Unlock()
		select {
		case <-deadline:
			t.Fatal("timeout waiting for retry")
		case <-time.After(10 * time.Millisecond):
		}
	}
	proc.Stop()

	if atomic.LoadInt32(&attempts) < 2 {
		t.Fatalf("expected at least two delivery attempts, got %d", attempts)
	}
}

func TestConfirmationProcessorSkipsOnItemsError(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.ConfirmationFacadeStub{
		Orders:  [][]model.Order{{{ID: 1, Number: "ORD-20250901-AAAAAA"}}},
		ItemsFn: func(context.Context, int64) ([]model.OrderItem, error) { return nil, errors.New("db down") },
	}
	proc := NewConfirmationProcessor(facade, 5*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	proc.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Marked) != 0 {
		t.Fatalf("expected no orders marked sent, got %d", len(facade.Marked))
	}
}
