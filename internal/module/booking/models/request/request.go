package request

type Checkout struct {
	ItemKind      string  `json:"item_kind" validate:"required,oneof=destination offer package"`
	ItemID        int64   `json:"item_id" validate:"required"`
	GuestCount    int     `json:"guest_count" validate:"required,min=1"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
	TravelDate    string  `json:"travel_date" validate:"required"`
	Notes         string  `json:"notes"`
	UserID        int64   `json:"user_id"`
	EmailUser     string  `json:"email_user"`
	TotalPrice    float64 `json:"total_price"`
}

type Cancellation struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

type Confirmation struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

type Rating struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type BookingList struct {
	Query    string   `query:"q"`
	Filters  []string `query:"status"`
	Sort     string   `query:"sort"`
	Page     int      `query:"page"`
	PageSize int      `query:"page_size"`
}

type BookingCompletion struct {
	BookingID string `json:"booking_id" validate:"required"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}

type NotificationBookingCancelled struct {
	BookingID        string `json:"booking_id" validate:"required"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
	EmailRecipient   string `json:"email_recipient" validate:"required"`
}

type NotificationReviewCreated struct {
	BookingID      string `json:"booking_id" validate:"required"`
	Rating         int    `json:"rating" validate:"required"`
	EmailRecipient string `json:"email_recipient" validate:"required"`
}
