package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/ticket_inventory/internal/adapter/repository/memory"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
	"github.com/srgjo27/ticket_inventory/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newMemoryService(t *testing.T, capacity int) (*services.InventoryService, *memory.Store, domain.Event) {
	t.Helper()

	store := memory.NewStore()
	event := domain.Event{
		ID:               uuid.New(),
		OrganizerID:      uuid.New(),
		Title:            "Noche de Jazz",
		Price:            decimal.RequireFromString("75.25"),
		TotalCapacity:    capacity,
		TicketsAvailable: capacity,
		Active:           true,
	}
	store.AddEvent(event)

	svc := services.NewInventoryService(store, store, store, nil, nil, services.Config{})
	return svc, store, event
}

func purchase(svc *services.InventoryService, eventID uuid.UUID, quantity int) (*domain.PurchaseResult, error) {
	return svc.Purchase(context.Background(), services.PurchaseRequest{
		EventID:  eventID,
		Buyer:    buyer(),
		Quantity: quantity,
	})
}

func available(t *testing.T, store *memory.Store, eventID uuid.UUID) int {
	t.Helper()

	event, ok := store.Event(eventID)
	require.True(t, ok)
	return event.TicketsAvailable
}

func TestPurchase_LastSeatHasExactlyOneWinner(t *testing.T) {
	for round := 0; round < 20; round++ {
		svc, store, event := newMemoryService(t, 1)

		var won, lost atomic.Int32
		var g errgroup.Group
		for i := 0; i < 2; i++ {
			g.Go(func() error {
				_, err := purchase(svc, event.ID, 1)
				switch {
				case err == nil:
					won.Add(1)
				case errors.Is(err, domain.ErrInsufficientInventory):
					lost.Add(1)
				default:
					return err
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		assert.Equal(t, int32(1), won.Load())
		assert.Equal(t, int32(1), lost.Load())
		assert.Equal(t, 0, available(t, store, event.ID))
	}
}

func TestPurchase_NeverOversellsUnderContention(t *testing.T) {
	const capacity = 40
	svc, store, event := newMemoryService(t, capacity)

	var sold atomic.Int32
	var g errgroup.Group
	for i := 0; i < 120; i++ {
		quantity := i%3 + 1
		g.Go(func() error {
			res, err := purchase(svc, event.ID, quantity)
			if errors.Is(err, domain.ErrInsufficientInventory) {
				return nil
			}
			if err != nil {
				return err
			}
			sold.Add(int32(len(res.Tickets)))
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.LessOrEqual(t, int(sold.Load()), capacity)
	assert.Equal(t, capacity-int(sold.Load()), available(t, store, event.ID))

	drifts, err := store.FindInventoryDrift(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestPurchase_ExactRemainderThenSoldOut(t *testing.T) {
	svc, store, event := newMemoryService(t, 3)

	res, err := purchase(svc, event.ID, 3)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("225.75").Equal(res.TotalAmount))
	assert.Equal(t, 0, available(t, store, event.ID))

	for _, tk := range res.Tickets {
		stored, ok := store.Ticket(tk.TicketID)
		require.True(t, ok)
		assert.Equal(t, domain.TicketPaid, stored.State)

		txn, ok := store.TransactionFor(tk.TicketID)
		require.True(t, ok)
		assert.Equal(t, domain.TransactionCompleted, txn.State)
		assert.Equal(t, domain.DefaultPaymentMethod, txn.PaymentMethod)
	}

	_, err = purchase(svc, event.ID, 1)
	var inv *domain.InsufficientInventoryError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, 0, inv.Remaining)
	assert.Equal(t, 0, available(t, store, event.ID))
}

func TestCancel_RestoresInventoryAndRefunds(t *testing.T) {
	svc, store, event := newMemoryService(t, 5)
	owner := buyer()

	res, err := svc.Purchase(context.Background(), services.PurchaseRequest{EventID: event.ID, Buyer: owner, Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, 3, available(t, store, event.ID))

	ticketID := res.Tickets[0].TicketID
	require.NoError(t, svc.Cancel(context.Background(), ticketID, owner))

	assert.Equal(t, 4, available(t, store, event.ID))
	stored, _ := store.Ticket(ticketID)
	assert.Equal(t, domain.TicketCancelled, stored.State)
	txn, _ := store.TransactionFor(ticketID)
	assert.Equal(t, domain.TransactionRefunded, txn.State)

	err = svc.Cancel(context.Background(), ticketID, owner)
	assert.ErrorIs(t, err, domain.ErrTicketAlreadyCancelled)
	assert.Equal(t, 4, available(t, store, event.ID))
}

func TestCancel_ConcurrentCancelsRestoreOnce(t *testing.T) {
	svc, store, event := newMemoryService(t, 2)
	owner := buyer()

	res, err := svc.Purchase(context.Background(), services.PurchaseRequest{EventID: event.ID, Buyer: owner, Quantity: 1})
	require.NoError(t, err)
	ticketID := res.Tickets[0].TicketID

	var ok, already atomic.Int32
	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			err := svc.Cancel(context.Background(), ticketID, owner)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrTicketAlreadyCancelled):
				already.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(9), already.Load())
	assert.Equal(t, 2, available(t, store, event.ID))
}

func TestCancel_UsedTicketLeavesInventoryUnchanged(t *testing.T) {
	svc, store, event := newMemoryService(t, 2)
	owner := buyer()

	res, err := svc.Purchase(context.Background(), services.PurchaseRequest{EventID: event.ID, Buyer: owner, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, svc.MarkUsed(context.Background(), res.Tickets[0].Code))

	err = svc.Cancel(context.Background(), res.Tickets[0].TicketID, owner)

	assert.ErrorIs(t, err, domain.ErrTicketAlreadyUsed)
	assert.Equal(t, 1, available(t, store, event.ID))
	txn, _ := store.TransactionFor(res.Tickets[0].TicketID)
	assert.Equal(t, domain.TransactionCompleted, txn.State)
}

func TestMarkUsed_Lifecycle(t *testing.T) {
	svc, store, event := newMemoryService(t, 2)

	assert.ErrorIs(t, svc.MarkUsed(context.Background(), "TKT-DOESNOTEXIST"), domain.ErrTicketNotFound)

	res, err := purchase(svc, event.ID, 2)
	require.NoError(t, err)

	before := time.Now()
	require.NoError(t, svc.MarkUsed(context.Background(), res.Tickets[0].Code))

	stored, _ := store.Ticket(res.Tickets[0].TicketID)
	assert.Equal(t, domain.TicketUsed, stored.State)
	require.NotNil(t, stored.UsedAt)
	assert.False(t, stored.UsedAt.Before(stored.PurchasedAt))
	assert.False(t, stored.UsedAt.Before(before))

	assert.ErrorIs(t, svc.MarkUsed(context.Background(), res.Tickets[0].Code), domain.ErrTicketAlreadyUsed)
	assert.Equal(t, 0, available(t, store, event.ID))
}

func TestMarkUsed_ConcurrentScansAdmitOnce(t *testing.T) {
	svc, _, event := newMemoryService(t, 1)

	res, err := purchase(svc, event.ID, 1)
	require.NoError(t, err)
	code := res.Tickets[0].Code

	var admitted atomic.Int32
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			err := svc.MarkUsed(context.Background(), code)
			if err == nil {
				admitted.Add(1)
				return nil
			}
			if errors.Is(err, domain.ErrTicketAlreadyUsed) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), admitted.Load())
}

func TestPurchaseCancelRoundTrip(t *testing.T) {
	svc, store, event := newMemoryService(t, 10)
	owner := buyer()

	res, err := svc.Purchase(context.Background(), services.PurchaseRequest{EventID: event.ID, Buyer: owner, Quantity: 4})
	require.NoError(t, err)

	for _, tk := range res.Tickets {
		require.NoError(t, svc.Cancel(context.Background(), tk.TicketID, owner))
	}

	assert.Equal(t, 10, available(t, store, event.ID))

	page, err := svc.ListOwnedTickets(context.Background(), owner, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	for _, tk := range page.Tickets {
		assert.Equal(t, domain.TicketCancelled, tk.State)
	}

	reconciler := services.NewReconciler(store, time.Minute)
	drifts, err := reconciler.ReconcileOnce(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drifts)
}
