package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/srgjo27/ticket_inventory/internal/core/domain"
	"github.com/srgjo27/ticket_inventory/internal/core/ports"
	"github.com/srgjo27/ticket_inventory/internal/platform/monitoring"
)

const DefaultReconcileInterval = time.Minute

// Reconciler periodically compares each event's stored inventory with its live tickets.
// It only reports drift; it never rewrites inventory.
type Reconciler struct {
	auditor  ports.InventoryAuditor
	interval time.Duration
	monitor  *monitoring.Monitor
}

func NewReconciler(auditor ports.InventoryAuditor, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultReconcileInterval
	}

	return &Reconciler{
		auditor:  auditor,
		interval: interval,
		monitor:  monitoring.NewMonitor(),
	}
}

func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("Inventory reconciler started", "interval", r.interval.String())

	for {
		select {
		case <-ctx.Done():
			slog.Info("Inventory reconciler stopped")
			return
		case <-ticker.C:
			if _, err := r.ReconcileOnce(ctx); err != nil && ctx.Err() == nil {
				slog.Error("Inventory reconcile failed", "error", err)
			}
		}
	}
}

func (r *Reconciler) ReconcileOnce(ctx context.Context) ([]domain.InventoryDrift, error) {
	drifts, err := r.auditor.FindInventoryDrift(ctx)
	if err != nil {
		return nil, err
	}

	r.monitor.ResetDrift(len(drifts))

	for _, d := range drifts {
		r.monitor.TrackDrift(d.EventID.String(), d.Delta())
		slog.Warn("Inventory drift detected",
			"event_id", d.EventID,
			"total_capacity", d.TotalCapacity,
			"tickets_available", d.TicketsAvailable,
			"live_tickets", d.LiveTickets,
			"expected_available", d.Expected(),
		)
	}

	return drifts, nil
}
