package usecases

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"

	"triplus-booking-service/internal/module/booking/models/entity"
	"triplus-booking-service/internal/module/booking/models/request"
	"triplus-booking-service/internal/module/booking/models/response"
	"triplus-booking-service/internal/module/booking/policy"
	"triplus-booking-service/internal/module/booking/repositories"
	"triplus-booking-service/internal/pkg/errors"
	"triplus-booking-service/internal/pkg/helpers"
	"triplus-booking-service/internal/pkg/listing"
	"triplus-booking-service/internal/pkg/scheduler"
)

const travelDateLayout = "2006-01-02"

type usecase struct {
	repo    repositories.Repositories
	log     *otelzap.Logger
	publish message.Publisher
}

type Usecase interface {
	// http
	CheckoutBooking(ctx context.Context, payload *request.Checkout, userID int64, emailUser string) error
	ConfirmBooking(ctx context.Context, payload *request.Confirmation) error
	CancelBooking(ctx context.Context, payload *request.Cancellation, userID int64, emailUser string) error
	SubmitRating(ctx context.Context, payload *request.Rating, userID int64, emailUser string) (response.SubmittedReview, error)
	ShowBookings(ctx context.Context, userID int64, params listing.Params) (response.BookingList, error)
	CountPendingBookings(ctx context.Context, kind string, itemID int64) (response.PendingBookingCount, error)
	// message stream
	ConsumeCheckoutQueue(ctx context.Context, payload *request.Checkout) error
	// scheduler
	SetBookingCompleted(ctx context.Context, payload *request.BookingCompletion) error
}

func New(repo repositories.Repositories, log *otelzap.Logger, publish message.Publisher) Usecase {
	return &usecase{
		repo:    repo,
		log:     log,
		publish: publish,
	}
}

// CheckoutBooking validates the bookable item, locks in the authoritative
// price and enqueues the booking for the consumer to persist.
func (u *usecase) CheckoutBooking(ctx context.Context, payload *request.Checkout, userID int64, emailUser string) error {
	kind, ok := entity.ParseItemKind(payload.ItemKind)
	if !ok {
		return errors.BadRequest("unknown item kind")
	}

	item, err := u.repo.FindCatalogItem(ctx, kind, payload.ItemID)
	if err != nil {
		return err
	}

	if !itemBookable(item, time.Now()) {
		return errors.NotEligible("item is not available for booking")
	}

	if _, err := time.Parse(travelDateLayout, payload.TravelDate); err != nil {
		return errors.BadRequest("invalid travel date")
	}

	price, err := u.repo.InquireItemPrice(ctx, kind, payload.ItemID, payload.GuestCount)
	if err != nil {
		return errors.InternalServerError("error inquire item price")
	}

	payload.UserID = userID
	payload.EmailUser = emailUser
	payload.TotalPrice = price

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return errors.InternalServerError("error marshal checkout payload")
	}

	err = u.publish.Publish("booking_checkout", message.NewMessage(watermill.NewUUID(), jsonPayload))
	if err != nil {
		return errors.InternalServerError("error publish checkout")
	}

	return nil
}

// itemBookable gates inactive items and expired offers.
func itemBookable(item entity.CatalogItem, now time.Time) bool {
	if !item.Active {
		return false
	}
	if item.Kind == entity.ItemOffer && item.ExpiresAt.Valid && !item.ExpiresAt.Time.After(now) {
		return false
	}
	return true
}

// ConsumeCheckoutQueue persists the booking in pending with the price fixed
// at checkout time and schedules the completion flip for after the stay.
func (u *usecase) ConsumeCheckoutQueue(ctx context.Context, payload *request.Checkout) error {
	kind, ok := entity.ParseItemKind(payload.ItemKind)
	if !ok {
		return errors.BadRequest("unknown item kind")
	}

	travelDate, err := time.Parse(travelDateLayout, payload.TravelDate)
	if err != nil {
		return errors.BadRequest("invalid travel date")
	}

	booking := entity.Booking{
		ID:               uuid.New(),
		UserID:           payload.UserID,
		ItemKind:         kind,
		ItemID:           payload.ItemID,
		Status:           entity.StatusPending,
		TotalPrice:       payload.TotalPrice,
		GuestCount:       payload.GuestCount,
		PaymentMethod:    payload.PaymentMethod,
		ConfirmationCode: newConfirmationCode(),
		TravelDate:       travelDate,
		CreatedAt:        time.Now(),
	}
	if payload.Notes != "" {
		booking.Notes.String = payload.Notes
		booking.Notes.Valid = true
	}

	if err := u.repo.InsertBooking(ctx, &booking); err != nil {
		return err
	}

	// flip to completed one day after the stay date
	completion := request.BookingCompletion{BookingID: booking.ID.String()}
	jsonCompletion, err := json.Marshal(completion)
	if err != nil {
		return errors.InternalServerError("error marshal completion payload")
	}

	delay := helpers.DurationCalculation(travelDate.Add(24 * time.Hour))
	taskID, err := u.repo.SetTaskScheduler(ctx, scheduler.TypeSetBookingCompleted, delay, jsonCompletion)
	if err != nil {
		return err
	}

	if err := u.repo.UpdateBookingTaskID(ctx, booking.ID.String(), taskID); err != nil {
		return err
	}

	return nil
}

// ConfirmBooking is the operator/payment confirmation input: pending to
// confirmed, rejected for any other current status.
func (u *usecase) ConfirmBooking(ctx context.Context, payload *request.Confirmation) error {
	applied, err := u.repo.UpdateBookingStatus(ctx, payload.BookingID,
		[]entity.Status{entity.StatusPending}, entity.StatusConfirmed)
	if err != nil {
		return err
	}
	if !applied {
		return errors.NotEligible("booking is not pending confirmation")
	}
	return nil
}

// CancelBooking transitions pending/confirmed to cancelled while the
// cancellation window is open. The redsync mutex plus the conditional status
// update guarantee only one of two concurrent requests succeeds.
func (u *usecase) CancelBooking(ctx context.Context, payload *request.Cancellation, userID int64, emailUser string) error {
	unlock, err := u.repo.AcquireBookingLock(ctx, payload.BookingID)
	if err != nil {
		return err
	}
	defer unlock()

	booking, err := u.repo.FindBookingByID(ctx, payload.BookingID)
	if err != nil {
		return err
	}

	// another user's booking is indistinguishable from a missing one
	if booking.UserID != userID {
		return errors.NotFound("booking not found")
	}

	now := time.Now()

	if booking.Status == entity.StatusCancelled {
		return errors.AlreadyCancelled("booking is already cancelled")
	}

	if !policy.CanCancel(booking, now) {
		if booking.Status == entity.StatusCompleted {
			return errors.NotEligible("booking can no longer be cancelled")
		}
		return errors.NotEligible("cancellation window has expired")
	}

	applied, err := u.repo.UpdateBookingStatus(ctx, payload.BookingID,
		[]entity.Status{entity.StatusPending, entity.StatusConfirmed}, entity.StatusCancelled)
	if err != nil {
		return err
	}
	if !applied {
		return errors.AlreadyCancelled("booking is already cancelled")
	}

	// no completion flip for a cancelled booking
	if err := u.repo.DeleteTaskScheduler(ctx, booking.TaskID); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error delete completion task: %v", err))
	}

	notification := request.NotificationBookingCancelled{
		BookingID:        booking.ID.String(),
		ConfirmationCode: booking.ConfirmationCode,
		EmailRecipient:   emailUser,
	}
	jsonNotification, _ := json.Marshal(notification)
	if err := u.publish.Publish("booking_cancelled", message.NewMessage(watermill.NewUUID(), jsonNotification)); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error publish booking_cancelled: %v", err))
	}

	return nil
}

// SubmitRating attaches exactly one review to a completed booking. Checks run
// in order, first failure wins: eligibility window, rating bounds, comment
// length, then the one-review invariant (also enforced by the unique
// constraint at the store).
func (u *usecase) SubmitRating(ctx context.Context, payload *request.Rating, userID int64, emailUser string) (response.SubmittedReview, error) {
	unlock, err := u.repo.AcquireBookingLock(ctx, payload.BookingID)
	if err != nil {
		return response.SubmittedReview{}, err
	}
	defer unlock()

	booking, err := u.repo.FindBookingByID(ctx, payload.BookingID)
	if err != nil {
		return response.SubmittedReview{}, err
	}

	if booking.UserID != userID {
		return response.SubmittedReview{}, errors.NotFound("booking not found")
	}

	now := time.Now()

	if !policy.RatingWindowOpen(booking, now) {
		if booking.Status != entity.StatusCompleted {
			return response.SubmittedReview{}, errors.NotEligible("booking is not completed")
		}
		return response.SubmittedReview{}, errors.NotEligible("rating window is not open yet")
	}

	if payload.Rating < 1 || payload.Rating > 5 {
		return response.SubmittedReview{}, errors.InvalidRating("rating must be between 1 and 5")
	}

	if utf8.RuneCountInString(payload.Comment) > 500 {
		return response.SubmittedReview{}, errors.CommentTooLong("comment must be at most 500 characters")
	}

	if booking.Reviewed {
		return response.SubmittedReview{}, errors.AlreadyRated("booking already has a review")
	}

	review := entity.Review{
		BookingID: booking.ID,
		Rating:    payload.Rating,
		CreatedAt: now,
	}
	if payload.Comment != "" {
		review.Comment.String = payload.Comment
		review.Comment.Valid = true
	}

	if err := u.repo.InsertReview(ctx, &review); err != nil {
		return response.SubmittedReview{}, err
	}

	notification := request.NotificationReviewCreated{
		BookingID:      booking.ID.String(),
		Rating:         review.Rating,
		EmailRecipient: emailUser,
	}
	jsonNotification, _ := json.Marshal(notification)
	if err := u.publish.Publish("review_created", message.NewMessage(watermill.NewUUID(), jsonNotification)); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error publish review_created: %v", err))
	}

	return response.SubmittedReview{
		ID:        review.ID,
		BookingID: review.BookingID.String(),
		Rating:    review.Rating,
		Comment:   payload.Comment,
		CreatedAt: review.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// ShowBookings builds the listing view: each stored booking joined with its
// catalog item and the eligibility flags, then searched, filtered, sorted and
// paginated by the listing engine.
func (u *usecase) ShowBookings(ctx context.Context, userID int64, params listing.Params) (response.BookingList, error) {
	bookings, err := u.repo.FindBookingsByUserID(ctx, userID)
	if err != nil {
		return response.BookingList{}, err
	}

	now := time.Now()

	views := make([]response.BookingView, 0, len(bookings))
	for _, b := range bookings {
		item, err := u.repo.FindCatalogItem(ctx, b.ItemKind, b.ItemID)
		if err != nil {
			// keep the booking visible even if the catalog row is gone
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error find catalog item %s/%d: %v", b.ItemKind, b.ItemID, err))
		}

		view := response.BookingView{
			ID:               b.ID.String(),
			ItemKind:         string(b.ItemKind),
			ItemID:           b.ItemID,
			Title:            item.Title,
			Location:         item.Location,
			Description:      item.Description,
			CompanyName:      item.CompanyName.String,
			Status:           string(b.Status),
			TotalPrice:       b.TotalPrice,
			GuestCount:       b.GuestCount,
			PaymentMethod:    b.PaymentMethod,
			ConfirmationCode: b.ConfirmationCode,
			Notes:            b.Notes.String,
			BookedAt:         b.CreatedAt.Format("2006-01-02 15:04:05"),
			CanCancel:        policy.CanCancel(b, now),
			CanRate:          policy.CanRate(b, now),
			Reviewed:         b.Reviewed,
			CreatedAt:        b.CreatedAt,
			PriceTag:         strconv.FormatFloat(b.TotalPrice, 'f', 2, 64),
		}
		if countdown, ok := policy.CancelCountdown(b, now); ok {
			view.CancelCountdown = policy.FormatCountdown(countdown)
		}

		views = append(views, view)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	visible, totalPages := listing.Paginate(views, params)

	return response.BookingList{
		Bookings:   visible,
		TotalPages: totalPages,
		Page:       page,
	}, nil
}

// CountPendingBookings serves the private operator endpoint.
func (u *usecase) CountPendingBookings(ctx context.Context, kind string, itemID int64) (response.PendingBookingCount, error) {
	itemKind, ok := entity.ParseItemKind(kind)
	if !ok {
		return response.PendingBookingCount{}, errors.BadRequest("unknown item kind")
	}

	count, err := u.repo.CountPendingBookings(ctx, itemKind, itemID)
	if err != nil {
		return response.PendingBookingCount{}, err
	}

	return response.PendingBookingCount{
		ItemKind: kind,
		ItemID:   itemID,
		Count:    count,
	}, nil
}

// SetBookingCompleted is the scheduled completion flip, confirmed bookings
// only. A booking that was cancelled or never confirmed is left alone.
func (u *usecase) SetBookingCompleted(ctx context.Context, payload *request.BookingCompletion) error {
	applied, err := u.repo.UpdateBookingStatus(ctx, payload.BookingID,
		[]entity.Status{entity.StatusConfirmed}, entity.StatusCompleted)
	if err != nil {
		return err
	}
	if !applied {
		u.log.Ctx(ctx).Info(fmt.Sprintf("booking %s not confirmed, skip completion", payload.BookingID))
	}
	return nil
}

func newConfirmationCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("TRP-%s", id[:8])
}
