package postgres

import (
	"fmt"

	"gorm.io/gorm"
)

// constraints the inventory protocol relies on but AutoMigrate cannot express
var constraints = []struct {
	table, name, check string
}{
	{"events", "chk_events_inventory", "tickets_available >= 0 AND tickets_available <= total_capacity"},
	{"tickets", "chk_tickets_state", "state IN ('paid', 'used', 'cancelled')"},
	{"tickets", "chk_tickets_used_at", "(state = 'used') = (used_at IS NOT NULL)"},
	{"transactions", "chk_transactions_state", "state IN ('completed', 'refunded')"},
}

// Migrate brings the inventory tables up to date on startup.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&EventRecord{}, &TicketRecord{}, &TransactionRecord{}); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	for _, c := range constraints {
		stmt := fmt.Sprintf(`
		DO $$ BEGIN
			ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$
		`, c.table, c.name, c.check)

		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", c.name, err)
		}
	}

	return nil
}
