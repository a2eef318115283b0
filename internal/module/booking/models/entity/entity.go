package entity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ItemKind discriminates the bookable item union: a booking or favorite
// points at exactly one destination, offer or package.
type ItemKind string

const (
	ItemDestination ItemKind = "destination"
	ItemOffer       ItemKind = "offer"
	ItemPackage     ItemKind = "package"
)

func ParseItemKind(s string) (ItemKind, bool) {
	switch ItemKind(s) {
	case ItemDestination, ItemOffer, ItemPackage:
		return ItemKind(s), true
	default:
		return "", false
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return Status(s), true
	default:
		return "", false
	}
}

// allowedTransitions is the booking state machine. cancelled and completed
// are terminal.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusCompleted: true, StatusCancelled: true},
	StatusCancelled: {},
	StatusCompleted: {},
}

func (s Status) CanTransitionTo(to Status) bool {
	m, ok := allowedTransitions[s]
	if !ok {
		return false
	}
	return m[to]
}

func (s Status) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

type Booking struct {
	ID               uuid.UUID      `db:"id"`
	UserID           int64          `db:"user_id"`
	ItemKind         ItemKind       `db:"item_kind"`
	ItemID           int64          `db:"item_id"`
	Status           Status         `db:"status"`
	TotalPrice       float64        `db:"total_price"`
	GuestCount       int            `db:"guest_count"`
	PaymentMethod    string         `db:"payment_method"`
	ConfirmationCode string         `db:"confirmation_code"`
	Notes            sql.NullString `db:"notes"`
	TravelDate       time.Time      `db:"travel_date"`
	TaskID           string         `db:"task_id"`
	Reviewed         bool           `db:"reviewed"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        sql.NullTime   `db:"updated_at"`
	DeletedAt        sql.NullTime   `db:"deleted_at"`
}

type Review struct {
	ID        int64          `db:"id"`
	BookingID uuid.UUID      `db:"booking_id"`
	Rating    int            `db:"rating"`
	Comment   sql.NullString `db:"comment"`
	CreatedAt time.Time      `db:"created_at"`
}

// CatalogItem is the read model of a destination, offer or package as this
// service needs it: search text, category, pricing and the offer validity
// window. Prices come over as raw strings and are parsed where needed.
type CatalogItem struct {
	Kind          ItemKind       `db:"kind"`
	ID            int64          `db:"id"`
	Title         string         `db:"title"`
	Location      string         `db:"location"`
	Description   string         `db:"description"`
	CompanyName   sql.NullString `db:"company_name"`
	Category      string         `db:"category"`
	Price         string         `db:"price"`
	DiscountPrice sql.NullString `db:"discount_price"`
	Active        bool           `db:"active"`
	ExpiresAt     sql.NullTime   `db:"expires_at"`
}
