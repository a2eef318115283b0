package response

import "time"

type UserServiceValidate struct {
	IsValid   bool   `json:"is_valid"`
	UserID    int64  `json:"user_id"`
	EmailUser string `json:"email_user"`
}

type CatalogServicePrice struct {
	TotalPrice float64 `json:"total_price"`
	Currency   string  `json:"currency"`
}

// BookingView is one row of the booking listing: the stored booking joined
// with its catalog item plus the eligibility flags the client renders
// (cancel button, countdown, rate button).
type BookingView struct {
	ID               string    `json:"id"`
	ItemKind         string    `json:"item_kind"`
	ItemID           int64     `json:"item_id"`
	Title            string    `json:"title"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	CompanyName      string    `json:"company_name,omitempty"`
	Status           string    `json:"status"`
	TotalPrice       float64   `json:"total_price"`
	GuestCount       int       `json:"guest_count"`
	PaymentMethod    string    `json:"payment_method"`
	ConfirmationCode string    `json:"confirmation_code"`
	Notes            string    `json:"notes,omitempty"`
	BookedAt         string    `json:"booked_at"`
	CanCancel        bool      `json:"can_cancel"`
	CancelCountdown  string    `json:"cancel_countdown,omitempty"`
	CanRate          bool      `json:"can_rate"`
	Reviewed         bool      `json:"reviewed"`
	CreatedAt        time.Time `json:"-"`
	PriceTag         string    `json:"-"`
}

func (v BookingView) SearchFields() []string {
	return []string{v.Title, v.Location, v.Description, v.CompanyName}
}

func (v BookingView) FilterKey() string { return v.Status }

func (v BookingView) CreatedTime() time.Time { return v.CreatedAt }

func (v BookingView) Price() string { return v.PriceTag }

func (v BookingView) DiscountPrice() string { return "" }

type BookingList struct {
	Bookings   []BookingView `json:"bookings"`
	TotalPages int           `json:"total_pages"`
	Page       int           `json:"page"`
}

type SubmittedReview struct {
	ID        int64  `json:"id"`
	BookingID string `json:"booking_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

type PendingBookingCount struct {
	ItemKind string `json:"item_kind"`
	ItemID   int64  `json:"item_id"`
	Count    int64  `json:"count"`
}
