package repositories_test

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	sqlxmock "github.com/zhashkevych/go-sqlxmock"

	"triplus-booking-service/config"
	"triplus-booking-service/internal/module/booking/models/entity"
	"triplus-booking-service/internal/module/booking/repositories"
	"triplus-booking-service/internal/pkg/errors"
	"triplus-booking-service/internal/pkg/httpclient"
	log_internal "triplus-booking-service/internal/pkg/log"
)

var (
	mock    sqlxmock.Sqlmock
	dbx     *sqlx.DB
	logMock *otelzap.Logger
)

func setup() {
	dbx, mock, _ = sqlxmock.Newx()
	logMock = log_internal.Setup()
}

func newRepo() repositories.Repositories {
	return repositories.New(dbx, logMock, nil, nil, nil, nil, nil, nil, nil)
}

func bookingColumns() []string {
	return []string{
		"id", "user_id", "item_kind", "item_id", "status", "total_price",
		"guest_count", "payment_method", "confirmation_code", "notes",
		"travel_date", "task_id", "created_at", "updated_at", "deleted_at", "reviewed",
	}
}

func TestFindBookingByID(t *testing.T) {
	setup()
	repo := newRepo()

	bookingID := uuid.New()
	createdAt := time.Now().Add(-2 * time.Hour)

	query := regexp.QuoteMeta(`SELECT b.*, EXISTS(SELECT 1 FROM reviews rv WHERE rv.booking_id = b.id) AS reviewed
		FROM bookings b WHERE b.id = $1 AND b.deleted_at IS NULL`)

	t.Run("booking found", func(t *testing.T) {
		rows := sqlxmock.NewRows(bookingColumns()).
			AddRow(bookingID, int64(1), "package", int64(7), "confirmed", 499.99,
				2, "card", "TRP-AB12CD34", nil, createdAt.Add(72*time.Hour), "task-1",
				createdAt, nil, nil, false)
		mock.ExpectQuery(query).WithArgs(bookingID.String()).WillReturnRows(rows)

		booking, err := repo.FindBookingByID(context.Background(), bookingID.String())

		assert.NoError(t, err)
		assert.Equal(t, bookingID, booking.ID)
		assert.Equal(t, entity.StatusConfirmed, booking.Status)
		assert.False(t, booking.Reviewed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("booking not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(bookingID.String()).WillReturnError(sql.ErrNoRows)

		_, err := repo.FindBookingByID(context.Background(), bookingID.String())

		assert.Equal(t, errors.KindNotFound, errors.Kind(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	setup()
	repo := newRepo()

	bookingID := uuid.New().String()

	query := regexp.QuoteMeta(`
		UPDATE bookings SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = ANY($3) AND deleted_at IS NULL
	`)

	t.Run("transition applied", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs("cancelled", bookingID, pq.Array([]string{"pending", "confirmed"})).
			WillReturnResult(sqlxmock.NewResult(0, 1))

		applied, err := repo.UpdateBookingStatus(context.Background(), bookingID,
			[]entity.Status{entity.StatusPending, entity.StatusConfirmed}, entity.StatusCancelled)

		assert.NoError(t, err)
		assert.True(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("status already moved on", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs("cancelled", bookingID, pq.Array([]string{"pending", "confirmed"})).
			WillReturnResult(sqlxmock.NewResult(0, 0))

		applied, err := repo.UpdateBookingStatus(context.Background(), bookingID,
			[]entity.Status{entity.StatusPending, entity.StatusConfirmed}, entity.StatusCancelled)

		assert.NoError(t, err)
		assert.False(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInsertReview(t *testing.T) {
	setup()
	repo := newRepo()

	bookingID := uuid.New()
	now := time.Now()

	query := regexp.QuoteMeta(`INSERT INTO reviews (booking_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`)

	t.Run("review inserted", func(t *testing.T) {
		review := entity.Review{BookingID: bookingID, Rating: 5, CreatedAt: now}

		mock.ExpectQuery(query).
			WithArgs(bookingID, 5, review.Comment, now).
			WillReturnRows(sqlxmock.NewRows([]string{"id"}).AddRow(int64(11)))

		err := repo.InsertReview(context.Background(), &review)

		assert.NoError(t, err)
		assert.Equal(t, int64(11), review.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation means already rated", func(t *testing.T) {
		review := entity.Review{BookingID: bookingID, Rating: 5, CreatedAt: now}

		mock.ExpectQuery(query).
			WithArgs(bookingID, 5, review.Comment, now).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.InsertReview(context.Background(), &review)

		assert.Equal(t, errors.KindAlreadyRated, errors.Kind(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountPendingBookings(t *testing.T) {
	setup()
	repo := newRepo()

	query := regexp.QuoteMeta(`SELECT COUNT(*) FROM bookings
		WHERE item_kind = $1 AND item_id = $2 AND status = $3 AND deleted_at IS NULL`)

	mock.ExpectQuery(query).
		WithArgs("offer", int64(3), "pending").
		WillReturnRows(sqlxmock.NewRows([]string{"count"}).AddRow(int64(4)))

	count, err := repo.CountPendingBookings(context.Background(), entity.ItemOffer, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func newUserServiceRepo(t *testing.T, srvURL string, redisClient *redis.Client) repositories.Repositories {
	host, port, err := net.SplitHostPort(strings.TrimPrefix(srvURL, "http://"))
	assert.NoError(t, err)

	clientCfg := config.HttpClientConfig{Timeout: 5, ConsecutiveFailures: 5}
	cb := httpclient.InitCircuitBreaker(&clientCfg, httpclient.TypeConsecutive)
	client := httpclient.InitHttpClient(&clientCfg, cb)

	setup()
	return repositories.New(dbx, logMock, client, redisClient, nil, nil, nil,
		&config.UserServiceConfig{Host: host, Port: port}, nil)
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token hits the user service once", func(t *testing.T) {
		mr := miniredis.RunT(t)
		redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits++
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"is_valid":true,"user_id":1,"email_user":"test@test.com"}`))
		}))
		defer srv.Close()

		repo := newUserServiceRepo(t, srv.URL, redisClient)

		first, err := repo.ValidateToken(ctx, "tok-123")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), first.UserID)

		second, err := repo.ValidateToken(ctx, "tok-123")
		assert.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, hits)
	})

	t.Run("invalid token is never cached", func(t *testing.T) {
		mr := miniredis.RunT(t)
		redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits++
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"is_valid":false}`))
		}))
		defer srv.Close()

		repo := newUserServiceRepo(t, srv.URL, redisClient)

		_, err := repo.ValidateToken(ctx, "tok-bad")
		assert.Equal(t, errors.KindUnauthorized, errors.Kind(err))

		_, err = repo.ValidateToken(ctx, "tok-bad")
		assert.Equal(t, errors.KindUnauthorized, errors.Kind(err))
		assert.Equal(t, 2, hits)
	})
}
