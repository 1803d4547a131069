package gateway

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

func newTestClient(delay time.Duration) *SimulatedClient {
	return NewSimulatedClient(delay, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func testCredential(t *testing.T) *model.PaymentCredential {
	t.Helper()
	cred, err := model.NewPaymentCredential("4111111111111111", "12/25", "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cred
}

func TestChargeAcceptsValidInput(t *testing.T) {
	client := newTestClient(0)
	decision := client.Charge(context.Background(), testCredential(t), decimal.RequireFromString("29.99"))

	if !decision.Accepted {
		t.Fatalf("expected accepted decision, got %+v", decision)
	}
	if decision.Message != "Payment processed successfully" {
		t.Fatalf("unexpected message %q", decision.Message)
	}
	if matched := regexp.MustCompile(`^TXN-[A-F0-9]{13}$`).MatchString(decision.TransactionID); !matched {
		t.Fatalf("unexpected transaction id %q", decision.TransactionID)
	}
}

func TestChargeGeneratesFreshTransactionIDs(t *testing.T) {
	client := newTestClient(0)
	cred := testCredential(t)
	amount := decimal.RequireFromString("10.00")

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		decision := client.Charge(context.Background(), cred, amount)
		if !decision.Accepted {
			t.Fatalf("expected accepted decision on call %d", i)
		}
		if _, dup := seen[decision.TransactionID]; dup {
			t.Fatalf("duplicate transaction id %q", decision.TransactionID)
		}
		seen[decision.TransactionID] = struct{}{}
	}
}

func TestChargeRejectsInvalidInput(t *testing.T) {
	client := newTestClient(0)

	cases := []struct {
		name       string
		credential *model.PaymentCredential
		amount     decimal.Decimal
	}{
		{"nil credential", nil, decimal.RequireFromString("10.00")},
		{"zero amount", testCredential(t), decimal.Zero},
		{"negative amount", testCredential(t), decimal.RequireFromString("-5.00")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := client.Charge(context.Background(), tc.credential, tc.amount)
			if decision.Accepted {
				t.Fatal("expected rejected decision")
			}
			if decision.TransactionID != "" {
				t.Fatalf("rejected decision must not carry a transaction id, got %q", decision.TransactionID)
			}
		})
	}
}

func TestChargeMapsCancellationToRejection(t *testing.T) {
	client := newTestClient(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	decision := client.Charge(ctx, testCredential(t), decimal.RequireFromString("10.00"))
	if decision.Accepted {
		t.Fatal("expected rejected decision for cancelled context")
	}
	if decision.Message != "Payment service is currently unavailable. Please try again." {
		t.Fatalf("unexpected message %q", decision.Message)
	}
	if decision.TransactionID != "" {
		t.Fatalf("unexpected transaction id %q", decision.TransactionID)
	}
}

func TestChargeWaitsProcessingDelay(t *testing.T) {
	delay := 50 * time.Millisecond
	client := newTestClient(delay)

	start := time.Now()
	decision := client.Charge(context.Background(), testCredential(t), decimal.RequireFromString("10.00"))
	elapsed := time.Since(start)

	if !decision.Accepted {
		t.Fatal("expected accepted decision")
	}
	if elapsed < delay {
		t.Fatalf("expected charge to take at least %s, took %s", delay, elapsed)
	}
}
