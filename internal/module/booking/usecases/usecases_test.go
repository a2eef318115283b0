package usecases_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"triplus-booking-service/internal/module/booking/mocks"
	"triplus-booking-service/internal/module/booking/models/entity"
	"triplus-booking-service/internal/module/booking/models/request"
	"triplus-booking-service/internal/module/booking/usecases"
	"triplus-booking-service/internal/pkg/errors"
	"triplus-booking-service/internal/pkg/listing"
	log_internal "triplus-booking-service/internal/pkg/log"
)

var (
	uc       usecases.Usecase
	repoMock *mocks.Repositories
	p        *mockPublisher
)

type mockPublisher struct {
	topics   []string
	messages []*message.Message
}

// Close implements message.Publisher.
func (m *mockPublisher) Close() error {
	return nil
}

// Publish implements message.Publisher.
func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	m.topics = append(m.topics, topic)
	m.messages = append(m.messages, messages...)
	return nil
}

func NewMockPublisher() *mockPublisher {
	return &mockPublisher{}
}

func setup() {
	repoMock = new(mocks.Repositories)
	p = NewMockPublisher()
	logger := log_internal.Setup()
	uc = usecases.New(repoMock, logger, p)
}

func teardown() {
	repoMock = nil
	uc = nil
}

func noopUnlock() {}

func mockBooking(userID int64, age time.Duration, status entity.Status) entity.Booking {
	return entity.Booking{
		ID:               uuid.New(),
		UserID:           userID,
		ItemKind:         entity.ItemPackage,
		ItemID:           7,
		Status:           status,
		TotalPrice:       499.99,
		GuestCount:       2,
		PaymentMethod:    "card",
		ConfirmationCode: "TRP-AB12CD34",
		TaskID:           "task-1",
		CreatedAt:        time.Now().Add(-age),
	}
}

func TestCheckoutBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success fixes the inquired price on the queued payload", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.Checkout{ItemKind: "destination", ItemID: 5, GuestCount: 2,
			PaymentMethod: "card", TravelDate: "2024-06-01"}
		item := entity.CatalogItem{Kind: entity.ItemDestination, ID: 5, Title: "Kyoto", Active: true}

		repoMock.On("FindCatalogItem", ctx, entity.ItemDestination, int64(5)).Return(item, nil)
		repoMock.On("InquireItemPrice", ctx, entity.ItemDestination, int64(5), 2).Return(350.50, nil)

		err := uc.CheckoutBooking(ctx, &payload, 1, "test@test.com")

		assert.NoError(t, err)
		assert.Equal(t, []string{"booking_checkout"}, p.topics)

		var queued request.Checkout
		assert.NoError(t, json.Unmarshal(p.messages[0].Payload, &queued))
		assert.Equal(t, 350.50, queued.TotalPrice)
		assert.Equal(t, int64(1), queued.UserID)
		assert.Equal(t, "test@test.com", queued.EmailUser)
	})

	t.Run("inactive item is not bookable", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.Checkout{ItemKind: "package", ItemID: 9, GuestCount: 1,
			PaymentMethod: "card", TravelDate: "2024-06-01"}
		item := entity.CatalogItem{Kind: entity.ItemPackage, ID: 9, Active: false}

		repoMock.On("FindCatalogItem", ctx, entity.ItemPackage, int64(9)).Return(item, nil)

		err := uc.CheckoutBooking(ctx, &payload, 1, "test@test.com")

		assert.Equal(t, errors.KindNotEligible, errors.Kind(err))
		assert.Empty(t, p.topics)
		repoMock.AssertNotCalled(t, "InquireItemPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired offer is not bookable", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.Checkout{ItemKind: "offer", ItemID: 3, GuestCount: 2,
			PaymentMethod: "card", TravelDate: "2024-06-01"}
		item := entity.CatalogItem{Kind: entity.ItemOffer, ID: 3, Active: true,
			ExpiresAt: sql.NullTime{Time: time.Now().Add(-time.Minute), Valid: true}}

		repoMock.On("FindCatalogItem", ctx, entity.ItemOffer, int64(3)).Return(item, nil)

		err := uc.CheckoutBooking(ctx, &payload, 1, "test@test.com")

		assert.Equal(t, errors.KindNotEligible, errors.Kind(err))
		assert.Empty(t, p.topics)
	})

	t.Run("offer without an expiry stays bookable", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.Checkout{ItemKind: "offer", ItemID: 3, GuestCount: 2,
			PaymentMethod: "card", TravelDate: "2024-06-01"}
		item := entity.CatalogItem{Kind: entity.ItemOffer, ID: 3, Active: true}

		repoMock.On("FindCatalogItem", ctx, entity.ItemOffer, int64(3)).Return(item, nil)
		repoMock.On("InquireItemPrice", ctx, entity.ItemOffer, int64(3), 2).Return(120.00, nil)

		err := uc.CheckoutBooking(ctx, &payload, 1, "test@test.com")

		assert.NoError(t, err)
		assert.Equal(t, []string{"booking_checkout"}, p.topics)
	})

	t.Run("unknown item kind", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.Checkout{ItemKind: "cruise", ItemID: 1, GuestCount: 1,
			PaymentMethod: "card", TravelDate: "2024-06-01"}

		err := uc.CheckoutBooking(ctx, &payload, 1, "test@test.com")

		assert.Equal(t, errors.KindBadRequest, errors.Kind(err))
		repoMock.AssertNotCalled(t, "FindCatalogItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid travel date", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.Checkout{ItemKind: "destination", ItemID: 5, GuestCount: 2,
			PaymentMethod: "card", TravelDate: "01-06-2024"}
		item := entity.CatalogItem{Kind: entity.ItemDestination, ID: 5, Active: true}

		repoMock.On("FindCatalogItem", ctx, entity.ItemDestination, int64(5)).Return(item, nil)

		err := uc.CheckoutBooking(ctx, &payload, 1, "test@test.com")

		assert.Equal(t, errors.KindBadRequest, errors.Kind(err))
		assert.Empty(t, p.topics)
	})

	t.Run("price inquiry failure", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.Checkout{ItemKind: "destination", ItemID: 5, GuestCount: 2,
			PaymentMethod: "card", TravelDate: "2024-06-01"}
		item := entity.CatalogItem{Kind: entity.ItemDestination, ID: 5, Active: true}

		repoMock.On("FindCatalogItem", ctx, entity.ItemDestination, int64(5)).Return(item, nil)
		repoMock.On("InquireItemPrice", ctx, entity.ItemDestination, int64(5), 2).
			Return(0.0, errors.InternalServerError("catalog service down"))

		err := uc.CheckoutBooking(ctx, &payload, 1, "test@test.com")

		assert.Equal(t, errors.KindInternal, errors.Kind(err))
		assert.Empty(t, p.topics)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel just in time", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(1, 11*time.Hour+59*time.Minute, entity.StatusConfirmed)
		payload := request.Cancellation{BookingID: booking.ID.String()}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)
		repoMock.On("UpdateBookingStatus", ctx, payload.BookingID,
			[]entity.Status{entity.StatusPending, entity.StatusConfirmed}, entity.StatusCancelled).Return(true, nil)
		repoMock.On("DeleteTaskScheduler", ctx, booking.TaskID).Return(nil)

		err := uc.CancelBooking(ctx, &payload, 1, "test@test.com")
		assert.NoError(t, err)
		repoMock.AssertExpectations(t)
	})

	t.Run("cancel too late", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(1, 12*time.Hour+time.Minute, entity.StatusConfirmed)
		payload := request.Cancellation{BookingID: booking.ID.String()}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)

		err := uc.CancelBooking(ctx, &payload, 1, "test@test.com")
		assert.Equal(t, errors.KindNotEligible, errors.Kind(err))
		repoMock.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already cancelled", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(1, time.Hour, entity.StatusCancelled)
		payload := request.Cancellation{BookingID: booking.ID.String()}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)

		err := uc.CancelBooking(ctx, &payload, 1, "test@test.com")
		assert.Equal(t, errors.KindAlreadyCancelled, errors.Kind(err))
	})

	t.Run("completed booking is not cancellable", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(1, time.Hour, entity.StatusCompleted)
		payload := request.Cancellation{BookingID: booking.ID.String()}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)

		err := uc.CancelBooking(ctx, &payload, 1, "test@test.com")
		assert.Equal(t, errors.KindNotEligible, errors.Kind(err))
	})

	t.Run("concurrent loser sees already cancelled", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(1, time.Hour, entity.StatusPending)
		payload := request.Cancellation{BookingID: booking.ID.String()}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)
		repoMock.On("UpdateBookingStatus", ctx, payload.BookingID,
			[]entity.Status{entity.StatusPending, entity.StatusConfirmed}, entity.StatusCancelled).Return(false, nil)

		err := uc.CancelBooking(ctx, &payload, 1, "test@test.com")
		assert.Equal(t, errors.KindAlreadyCancelled, errors.Kind(err))
	})

	t.Run("someone else's booking looks missing", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(2, time.Hour, entity.StatusPending)
		payload := request.Cancellation{BookingID: booking.ID.String()}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)

		err := uc.CancelBooking(ctx, &payload, 1, "test@test.com")
		assert.Equal(t, errors.KindNotFound, errors.Kind(err))
	})
}

func TestSubmitRating(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(1, 25*time.Hour, entity.StatusCompleted)
		payload := request.Rating{BookingID: booking.ID.String(), Rating: 5, Comment: "great stay"}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)
		repoMock.On("InsertReview", ctx, mock.AnythingOfType("*entity.Review")).Return(nil)

		resp, err := uc.SubmitRating(ctx, &payload, 1, "test@test.com")
		assert.NoError(t, err)
		assert.Equal(t, booking.ID.String(), resp.BookingID)
		assert.Equal(t, 5, resp.Rating)
	})

	t.Run("rate before window", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(1, 23*time.Hour, entity.StatusCompleted)
		payload := request.Rating{BookingID: booking.ID.String(), Rating: 4}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)

		_, err := uc.SubmitRating(ctx, &payload, 1, "test@test.com")
		assert.Equal(t, errors.KindNotEligible, errors.Kind(err))
	})

	t.Run("invalid rating leaves no review behind", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(1, 25*time.Hour, entity.StatusCompleted)
		payload := request.Rating{BookingID: booking.ID.String(), Rating: 6}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)

		_, err := uc.SubmitRating(ctx, &payload, 1, "test@test.com")
		assert.Equal(t, errors.KindInvalidRating, errors.Kind(err))
		repoMock.AssertNotCalled(t, "InsertReview", mock.Anything, mock.Anything)
	})

	t.Run("comment too long", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(1, 25*time.Hour, entity.StatusCompleted)
		long := make([]byte, 501)
		for i := range long {
			long[i] = 'x'
		}
		payload := request.Rating{BookingID: booking.ID.String(), Rating: 4, Comment: string(long)}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)

		_, err := uc.SubmitRating(ctx, &payload, 1, "test@test.com")
		assert.Equal(t, errors.KindCommentTooLong, errors.Kind(err))
	})

	t.Run("second rating fails with already rated", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(1, 25*time.Hour, entity.StatusCompleted)
		booking.Reviewed = true
		payload := request.Rating{BookingID: booking.ID.String(), Rating: 4}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)

		_, err := uc.SubmitRating(ctx, &payload, 1, "test@test.com")
		assert.Equal(t, errors.KindAlreadyRated, errors.Kind(err))
		repoMock.AssertNotCalled(t, "InsertReview", mock.Anything, mock.Anything)
	})

	t.Run("constraint violation surfaces as already rated", func(t *testing.T) {
		setup()
		defer teardown()

		booking := mockBooking(1, 25*time.Hour, entity.StatusCompleted)
		payload := request.Rating{BookingID: booking.ID.String(), Rating: 4}

		repoMock.On("AcquireBookingLock", ctx, payload.BookingID).Return(noopUnlock, nil)
		repoMock.On("FindBookingByID", ctx, payload.BookingID).Return(booking, nil)
		repoMock.On("InsertReview", ctx, mock.AnythingOfType("*entity.Review")).
			Return(errors.AlreadyRated("booking already has a review"))

		_, err := uc.SubmitRating(ctx, &payload, 1, "test@test.com")
		assert.Equal(t, errors.KindAlreadyRated, errors.Kind(err))
	})
}

func TestShowBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("joins catalog items and flags eligibility", func(t *testing.T) {
		setup()
		defer teardown()

		fresh := mockBooking(1, time.Hour, entity.StatusConfirmed)
		stale := mockBooking(1, 48*time.Hour, entity.StatusCompleted)

		repoMock.On("FindBookingsByUserID", ctx, int64(1)).Return([]entity.Booking{fresh, stale}, nil)
		repoMock.On("FindCatalogItem", ctx, entity.ItemPackage, int64(7)).Return(entity.CatalogItem{
			Kind:     entity.ItemPackage,
			ID:       7,
			Title:    "Paris Getaway",
			Location: "Paris",
			Category: "city_break",
			Price:    "499.99",
			Active:   true,
		}, nil)

		resp, err := uc.ShowBookings(ctx, 1, listing.Params{})
		assert.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
		assert.Equal(t, 1, resp.TotalPages)

		// FindBookingsByUserID returns newest first, the engine keeps that
		assert.True(t, resp.Bookings[0].CanCancel)
		assert.NotEmpty(t, resp.Bookings[0].CancelCountdown)
		assert.False(t, resp.Bookings[0].CanRate)

		assert.False(t, resp.Bookings[1].CanCancel)
		assert.True(t, resp.Bookings[1].CanRate)
		assert.Equal(t, "Paris Getaway", resp.Bookings[1].Title)
	})

	t.Run("status filter narrows the listing", func(t *testing.T) {
		setup()
		defer teardown()

		fresh := mockBooking(1, time.Hour, entity.StatusConfirmed)
		done := mockBooking(1, 48*time.Hour, entity.StatusCompleted)

		repoMock.On("FindBookingsByUserID", ctx, int64(1)).Return([]entity.Booking{fresh, done}, nil)
		repoMock.On("FindCatalogItem", ctx, entity.ItemPackage, int64(7)).Return(entity.CatalogItem{Title: "Paris Getaway"}, nil)

		resp, err := uc.ShowBookings(ctx, 1, listing.Params{Filters: []string{"completed"}})
		assert.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
		assert.Equal(t, "completed", resp.Bookings[0].Status)
	})
}

func TestConfirmBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.Confirmation{BookingID: uuid.New().String()}
		repoMock.On("UpdateBookingStatus", ctx, payload.BookingID,
			[]entity.Status{entity.StatusPending}, entity.StatusConfirmed).Return(true, nil)

		assert.NoError(t, uc.ConfirmBooking(ctx, &payload))
	})

	t.Run("non-pending booking rejected", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.Confirmation{BookingID: uuid.New().String()}
		repoMock.On("UpdateBookingStatus", ctx, payload.BookingID,
			[]entity.Status{entity.StatusPending}, entity.StatusConfirmed).Return(false, nil)

		err := uc.ConfirmBooking(ctx, &payload)
		assert.Equal(t, errors.KindNotEligible, errors.Kind(err))
	})
}

func TestConsumeCheckoutQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("persists pending booking and schedules completion", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.Checkout{
			ItemKind:      "offer",
			ItemID:        3,
			GuestCount:    2,
			PaymentMethod: "card",
			TravelDate:    time.Now().Add(72 * time.Hour).Format("2006-01-02"),
			UserID:        1,
			EmailUser:     "test@test.com",
			TotalPrice:    240,
		}

		repoMock.On("InsertBooking", ctx, mock.AnythingOfType("*entity.Booking")).Return(nil)
		repoMock.On("SetTaskScheduler", ctx, "set_booking_completed", mock.AnythingOfType("time.Duration"), mock.Anything).Return("task-9", nil)
		repoMock.On("UpdateBookingTaskID", ctx, mock.AnythingOfType("string"), "task-9").Return(nil)

		err := uc.ConsumeCheckoutQueue(ctx, &payload)
		assert.NoError(t, err)

		inserted := repoMock.Calls[0].Arguments.Get(1).(*entity.Booking)
		assert.Equal(t, entity.StatusPending, inserted.Status)
		assert.Equal(t, float64(240), inserted.TotalPrice)
		assert.NotEmpty(t, inserted.ConfirmationCode)
	})
}

func TestSetBookingCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("flips confirmed booking", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.BookingCompletion{BookingID: uuid.New().String()}
		repoMock.On("UpdateBookingStatus", ctx, payload.BookingID,
			[]entity.Status{entity.StatusConfirmed}, entity.StatusCompleted).Return(true, nil)

		assert.NoError(t, uc.SetBookingCompleted(ctx, &payload))
	})

	t.Run("unconfirmed booking left alone", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.BookingCompletion{BookingID: uuid.New().String()}
		repoMock.On("UpdateBookingStatus", ctx, payload.BookingID,
			[]entity.Status{entity.StatusConfirmed}, entity.StatusCompleted).Return(false, nil)

		assert.NoError(t, uc.SetBookingCompleted(ctx, &payload))
	})
}
