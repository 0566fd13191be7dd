package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/content-hub/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleResult reports the state of a membership row after a toggle.
type ToggleResult struct {
	// Active is true when the row exists after the call.
	Active bool
	// Notification is the notification inserted together with the row. It is
	// nil on the "off" path, when no notification was requested, and when a
	// concurrent call created the row first.
	Notification *models.Notification
}

// toggleOp describes one membership set keyed by a composite identity.
type toggleOp struct {
	name string
	// row is inserted when the key is absent; it must carry the key columns.
	row any
	// model is the empty value used for the delete.
	model any
	// match selects the membership row by key.
	match func(*gorm.DB) *gorm.DB
	// reverse selects the notification created when the row was inserted.
	reverse func(*gorm.DB) *gorm.DB
	// notification is inserted alongside the row; may be nil.
	notification *models.Notification
}

// toggle flips the existence of a membership row in one transaction:
// delete-if-present, otherwise insert-if-absent against the unique index.
// Two concurrent toggles on the same key cannot both insert, and the row
// and its notification are written or removed together.
func toggle(ctx context.Context, db *gorm.DB, op toggleOp) (ToggleResult, error) {
	var result ToggleResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Scopes(op.match).Delete(op.model)
		if res.Error != nil {
			return fmt.Errorf("delete %s: %w", op.name, res.Error)
		}
		if res.RowsAffected > 0 {
			if err := tx.Scopes(op.reverse).Delete(&models.Notification{}).Error; err != nil {
				return fmt.Errorf("delete %s notification: %w", op.name, err)
			}
			return nil
		}

		res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(op.row)
		if res.Error != nil {
			return fmt.Errorf("insert %s: %w", op.name, res.Error)
		}
		result.Active = true
		if res.RowsAffected == 0 || op.notification == nil {
			return nil
		}
		if err := tx.Create(op.notification).Error; err != nil {
			return fmt.Errorf("insert %s notification: %w", op.name, err)
		}
		result.Notification = op.notification
		return nil
	})
	if err != nil {
		return ToggleResult{}, err
	}
	return result, nil
}
