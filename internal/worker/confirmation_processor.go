package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// CheckoutFacade exposes the subset of application functionality required by the worker.
type CheckoutFacade interface {
	UnconfirmedOrders(ctx context.Context, limit int) ([]model.Order, error)
	OrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	SendConfirmation(ctx context.Context, order *model.Order, items []model.OrderItem) model.NotificationOutcome
	MarkConfirmationSent(ctx context.Context, orderID int64) error
}

// ConfirmationProcessor polls for orders whose confirmation never went out
// and retries delivery concurrently.
type ConfirmationProcessor struct {
	facade       CheckoutFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewConfirmationProcessor constructs confirmation retry worker pool.
func NewConfirmationProcessor(facade CheckoutFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *ConfirmationProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &ConfirmationProcessor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (p *ConfirmationProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *ConfirmationProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *ConfirmationProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *ConfirmationProcessor) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.UnconfirmedOrders(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch unconfirmed orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *ConfirmationProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *ConfirmationProcessor) handleOrder(ctx context.Context, order model.Order) {
	items, err := p.facade.OrderItems(ctx, order.ID)
	if err != nil {
		p.logger.Error("fetch order items failed", slog.String("order", order.Number), slog.String("error", err.Error()))
		return
	}

	outcome := p.facade.SendConfirmation(ctx, &order, items)
	if !outcome.Sent {
		// Next poll cycle picks the order up again.
		return
	}

	if err := p.facade.MarkConfirmationSent(ctx, order.ID); err != nil {
		p.logger.Error("mark confirmation sent failed", slog.String("order", order.Number), slog.String("error", err.Error()))
	}
}
