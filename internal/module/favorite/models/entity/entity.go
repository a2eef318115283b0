package entity

import (
	"time"

	"github.com/google/uuid"

	booking "triplus-booking-service/internal/module/booking/models/entity"
)

// Favorite marks one (user, item) pair. The pair is unique, toggling is
// idempotent on it.
type Favorite struct {
	ID        uuid.UUID        `db:"id"`
	UserID    int64            `db:"user_id"`
	ItemKind  booking.ItemKind `db:"item_kind"`
	ItemID    int64            `db:"item_id"`
	CreatedAt time.Time        `db:"created_at"`
}
