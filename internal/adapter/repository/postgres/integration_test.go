//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/url"
	"os"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/ticket_inventory/internal/adapter/repository/postgres"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
	"github.com/srgjo27/ticket_inventory/internal/core/ports"
	"github.com/srgjo27/ticket_inventory/internal/core/services"
	"github.com/srgjo27/ticket_inventory/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	testDB   *sql.DB
	testGorm *gorm.DB
)

func TestMain(m *testing.M) {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getEnv("TEST_DB_USER", "postgres"), getEnv("TEST_DB_PASSWORD", "postgres")),
		Host:     getEnv("TEST_DB_HOST", "localhost") + ":" + getEnv("TEST_DB_PORT", "5434"),
		Path:     "/" + getEnv("TEST_DB_NAME", "ticket_inventory_test"),
		RawQuery: "sslmode=disable",
	}

	var err error
	testDB, err = database.NewPostgresDB(context.Background(), database.Config{DSN: dsn.String(), MaxRetries: 3, MaxOpenConns: 20})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	testGorm, err = database.NewGormDB(testDB)
	if err != nil {
		log.Fatalf("failed to open gorm: %v", err)
	}

	dropTables()

	if err := postgres.Migrate(testGorm); err != nil {
		log.Fatalf("failed to migrate test database: %v", err)
	}

	code := m.Run()

	dropTables()
	testDB.Close()

	os.Exit(code)
}

func dropTables() {
	testDB.Exec("DROP TABLE IF EXISTS transactions")
	testDB.Exec("DROP TABLE IF EXISTS tickets")
	testDB.Exec("DROP TABLE IF EXISTS events")
}

func cleanTables(t *testing.T) {
	t.Helper()

	_, err := testDB.Exec("TRUNCATE transactions, tickets, events")
	require.NoError(t, err)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func seedEvent(t *testing.T, capacity int) postgres.EventRecord {
	t.Helper()

	event := postgres.EventRecord{
		ID:               uuid.New(),
		OrganizerID:      uuid.New(),
		Title:            "Integration Fest",
		Price:            decimal.RequireFromString("49.90"),
		TotalCapacity:    capacity,
		TicketsAvailable: capacity,
		Active:           true,
	}
	require.NoError(t, testGorm.Create(&event).Error)
	return event
}

func newService() *services.InventoryService {
	return services.NewInventoryService(
		postgres.NewStore(testDB),
		postgres.NewTicketRepository(testDB),
		postgres.NewQueryRepository(testGorm),
		nil,
		nil,
		services.Config{},
	)
}

func ticketsAvailable(t *testing.T, eventID uuid.UUID) int {
	t.Helper()

	var n int
	require.NoError(t, testDB.QueryRow("SELECT tickets_available FROM events WHERE id = $1", eventID).Scan(&n))
	return n
}

func buyer() domain.Principal {
	return domain.Principal{UserID: uuid.New(), Role: domain.RoleBuyer}
}

func TestPurchase_LastSeatRace(t *testing.T) {
	cleanTables(t)
	event := seedEvent(t, 1)
	svc := newService()

	var won, lost atomic.Int32
	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := svc.Purchase(context.Background(), services.PurchaseRequest{EventID: event.ID, Buyer: buyer(), Quantity: 1})
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
	assert.Equal(t, int32(9), lost.Load())
	assert.Equal(t, 0, ticketsAvailable(t, event.ID))

	var live int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM tickets WHERE event_id = $1 AND state <> 'cancelled'", event.ID).Scan(&live))
	assert.Equal(t, 1, live)
}

func TestPurchase_ConcurrentBuyersNeverOversell(t *testing.T) {
	cleanTables(t)
	event := seedEvent(t, 25)
	svc := newService()

	var g errgroup.Group
	for i := 0; i < 40; i++ {
		quantity := i%2 + 1
		g.Go(func() error {
			_, err := svc.Purchase(context.Background(), services.PurchaseRequest{EventID: event.ID, Buyer: buyer(), Quantity: quantity})
			if err != nil && !errors.Is(err, domain.ErrInsufficientInventory) {
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	drifts, err := postgres.NewAuditRepository(testDB).FindInventoryDrift(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drifts)
	assert.GreaterOrEqual(t, ticketsAvailable(t, event.ID), 0)
}

func TestLifecycle_PurchaseUseCancel(t *testing.T) {
	cleanTables(t)
	event := seedEvent(t, 3)
	svc := newService()
	owner := buyer()
	ctx := context.Background()

	res, err := svc.Purchase(ctx, services.PurchaseRequest{EventID: event.ID, Buyer: owner, Quantity: 2, PaymentMethod: "card"})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("99.80").Equal(res.TotalAmount))
	assert.Equal(t, 1, ticketsAvailable(t, event.ID))

	used, cancelled := res.Tickets[0], res.Tickets[1]

	require.NoError(t, svc.MarkUsed(ctx, used.Code))
	assert.ErrorIs(t, svc.MarkUsed(ctx, used.Code), domain.ErrTicketAlreadyUsed)
	assert.ErrorIs(t, svc.Cancel(ctx, used.TicketID, owner), domain.ErrTicketAlreadyUsed)

	require.NoError(t, svc.Cancel(ctx, cancelled.TicketID, owner))
	assert.ErrorIs(t, svc.Cancel(ctx, cancelled.TicketID, owner), domain.ErrTicketAlreadyCancelled)
	assert.ErrorIs(t, svc.MarkUsed(ctx, cancelled.Code), domain.ErrTicketCancelled)
	assert.Equal(t, 2, ticketsAvailable(t, event.ID))

	var state string
	require.NoError(t, testDB.QueryRow("SELECT state FROM transactions WHERE ticket_id = $1", cancelled.TicketID).Scan(&state))
	assert.Equal(t, string(domain.TransactionRefunded), state)

	page, err := svc.ListOwnedTickets(ctx, owner, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Tickets, 1)
	assert.Equal(t, "Integration Fest", page.Tickets[0].EventTitle)

	details, err := svc.GetTicketByCode(ctx, used.Code, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketUsed, details.State)
	require.NotNil(t, details.UsedAt)
	assert.False(t, details.UsedAt.Before(details.PurchasedAt))

	availability, err := svc.GetAvailability(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, availability.TicketsAvailable)
}

func TestStore_InventoryCheckConstraint(t *testing.T) {
	cleanTables(t)
	event := seedEvent(t, 1)

	err := postgres.NewStore(testDB).WithinTx(context.Background(), func(ctx context.Context, tx ports.InventoryTx) error {
		return tx.AdjustTicketsAvailable(ctx, event.ID, -2)
	})

	assert.Error(t, err)
	assert.Equal(t, 1, ticketsAvailable(t, event.ID))
}

func TestStore_DuplicateTicketCode(t *testing.T) {
	cleanTables(t)
	event := seedEvent(t, 2)
	ctx := context.Background()
	store := postgres.NewStore(testDB)

	insert := func() error {
		return store.WithinTx(ctx, func(ctx context.Context, tx ports.InventoryTx) error {
			return tx.InsertTicket(ctx, &domain.Ticket{
				ID:        uuid.New(),
				Code:      "TKT-DUPLICATE",
				EventID:   event.ID,
				OwnerID:   uuid.New(),
				PricePaid: event.Price,
				State:     domain.TicketPaid,
			})
		})
	}

	require.NoError(t, insert())
	assert.ErrorIs(t, insert(), domain.ErrDuplicateTicketCode)
}

func TestAudit_ReportsDrift(t *testing.T) {
	cleanTables(t)
	event := seedEvent(t, 5)
	svc := newService()

	_, err := svc.Purchase(context.Background(), services.PurchaseRequest{EventID: event.ID, Buyer: buyer(), Quantity: 2})
	require.NoError(t, err)

	_, err = testDB.Exec("UPDATE events SET tickets_available = total_capacity WHERE id = $1", event.ID)
	require.NoError(t, err)

	drifts, err := services.NewReconciler(postgres.NewAuditRepository(testDB), 0).ReconcileOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, event.ID, drifts[0].EventID)
	assert.Equal(t, 2, drifts[0].LiveTickets)
	assert.Equal(t, 2, drifts[0].Delta())
}

func TestAudit_ReportsEveryDriftingEvent(t *testing.T) {
	cleanTables(t)

	const drifting = 130
	for i := 0; i < drifting; i++ {
		event := seedEvent(t, 4)
		_, err := testDB.Exec("UPDATE events SET tickets_available = 3 WHERE id = $1", event.ID)
		require.NoError(t, err)
	}
	seedEvent(t, 4)

	drifts, err := services.NewReconciler(postgres.NewAuditRepository(testDB), 0).ReconcileOnce(context.Background())

	require.NoError(t, err)
	assert.Len(t, drifts, drifting)
}
