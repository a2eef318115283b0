package repositories

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"

	"triplus-booking-service/config"
	"triplus-booking-service/internal/module/booking/models/entity"
	"triplus-booking-service/internal/module/booking/models/response"
	"triplus-booking-service/internal/pkg/errors"
)

const (
	catalogCacheTTL = 5 * time.Minute
	tokenCacheTTL   = time.Minute
)

type repositories struct {
	db                *sqlx.DB
	log               *otelzap.Logger
	httpClient        *circuit.HTTPClient
	redisClient       *redis.Client
	redsync           *redsync.Redsync
	asynqClient       *asynq.Client
	asynqInspector    *asynq.Inspector
	cfgUserService    *config.UserServiceConfig
	cfgCatalogService *config.CatalogServiceConfig
}

type Repositories interface {
	// http
	ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error)
	InquireItemPrice(ctx context.Context, kind entity.ItemKind, itemID int64, guestCount int) (float64, error)
	// db
	FindCatalogItem(ctx context.Context, kind entity.ItemKind, itemID int64) (entity.CatalogItem, error)
	InsertBooking(ctx context.Context, booking *entity.Booking) error
	FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error)
	FindBookingsByUserID(ctx context.Context, userID int64) ([]entity.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, from []entity.Status, to entity.Status) (bool, error)
	UpdateBookingTaskID(ctx context.Context, bookingID string, taskID string) error
	CountPendingBookings(ctx context.Context, kind entity.ItemKind, itemID int64) (int64, error)
	InsertReview(ctx context.Context, review *entity.Review) error
	// locking
	AcquireBookingLock(ctx context.Context, bookingID string) (func(), error)
	// scheduler
	SetTaskScheduler(ctx context.Context, taskType string, delay time.Duration, payload []byte) (string, error)
	DeleteTaskScheduler(ctx context.Context, taskID string) error
}

func New(
	db *sqlx.DB,
	log *otelzap.Logger,
	httpClient *circuit.HTTPClient,
	redisClient *redis.Client,
	rs *redsync.Redsync,
	asynqClient *asynq.Client,
	asynqInspector *asynq.Inspector,
	cfgUserService *config.UserServiceConfig,
	cfgCatalogService *config.CatalogServiceConfig,
) Repositories {
	return &repositories{
		db:                db,
		log:               log,
		httpClient:        httpClient,
		redisClient:       redisClient,
		redsync:           rs,
		asynqClient:       asynqClient,
		asynqInspector:    asynqInspector,
		cfgUserService:    cfgUserService,
		cfgCatalogService: cfgCatalogService,
	}
}

var catalogQueries = map[entity.ItemKind]string{
	entity.ItemDestination: `SELECT 'destination' AS kind, id, title, location, description,
		NULL::text AS company_name, category, price, NULL::text AS discount_price,
		active, NULL::timestamptz AS expires_at
		FROM destinations WHERE id = $1`,
	entity.ItemOffer: `SELECT 'offer' AS kind, id, title, location, description,
		company_name, category, price, discount_price, active, expires_at
		FROM offers WHERE id = $1`,
	entity.ItemPackage: `SELECT 'package' AS kind, id, title, location, description,
		company_name, category, price, NULL::text AS discount_price,
		active, NULL::timestamptz AS expires_at
		FROM packages WHERE id = $1`,
}

// FindCatalogItem implements Repositories. Reads go through a short-lived
// redis cache, the catalog changes rarely relative to listing traffic.
func (r *repositories) FindCatalogItem(ctx context.Context, kind entity.ItemKind, itemID int64) (entity.CatalogItem, error) {
	cacheKey := fmt.Sprintf("catalog:%s:%d", kind, itemID)
	if cached, err := r.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var item entity.CatalogItem
		if err := json.Unmarshal([]byte(cached), &item); err == nil {
			return item, nil
		}
	}

	query, ok := catalogQueries[kind]
	if !ok {
		return entity.CatalogItem{}, errors.BadRequest("unknown item kind")
	}

	var item entity.CatalogItem
	err := r.db.GetContext(ctx, &item, query, itemID)
	if err == sql.ErrNoRows {
		return entity.CatalogItem{}, errors.NotFound("item not found")
	}
	if err != nil {
		return entity.CatalogItem{}, errors.InternalServerError("error find catalog item")
	}

	if payload, err := json.Marshal(item); err == nil {
		r.redisClient.Set(ctx, cacheKey, payload, catalogCacheTTL)
	}

	return item, nil
}

// InsertBooking implements Repositories.
func (r *repositories) InsertBooking(ctx context.Context, booking *entity.Booking) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO bookings (id, user_id, item_kind, item_id, status, total_price,
			guest_count, payment_method, confirmation_code, notes, travel_date, task_id, created_at)
		VALUES (:id, :user_id, :item_kind, :item_id, :status, :total_price,
			:guest_count, :payment_method, :confirmation_code, :notes, :travel_date, :task_id, :created_at)
	`, booking)
	if err != nil {
		return errors.InternalServerError("error insert booking")
	}
	return nil
}

// FindBookingByID implements Repositories.
func (r *repositories) FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error) {
	query := `SELECT b.*, EXISTS(SELECT 1 FROM reviews rv WHERE rv.booking_id = b.id) AS reviewed
		FROM bookings b WHERE b.id = $1 AND b.deleted_at IS NULL`
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, bookingID)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		return entity.Booking{}, errors.InternalServerError("error find booking by id")
	}
	return booking, nil
}

// FindBookingsByUserID implements Repositories.
func (r *repositories) FindBookingsByUserID(ctx context.Context, userID int64) ([]entity.Booking, error) {
	query := `SELECT b.*, EXISTS(SELECT 1 FROM reviews rv WHERE rv.booking_id = b.id) AS reviewed
		FROM bookings b WHERE b.user_id = $1 AND b.deleted_at IS NULL ORDER BY b.created_at DESC`
	var bookings []entity.Booking
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, errors.InternalServerError("error find bookings by user id")
	}
	return bookings, nil
}

// UpdateBookingStatus implements Repositories. The transition is a single
// conditional update keyed on the current status, so of two concurrent
// requests only one observes rows affected = 1.
func (r *repositories) UpdateBookingStatus(ctx context.Context, bookingID string, from []entity.Status, to entity.Status) (bool, error) {
	fromStr := make([]string, len(from))
	for i, s := range from {
		fromStr[i] = string(s)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = ANY($3) AND deleted_at IS NULL
	`, string(to), bookingID, pq.Array(fromStr))
	if err != nil {
		return false, errors.InternalServerError("error update booking status")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.InternalServerError("error update booking status")
	}
	return affected == 1, nil
}

// UpdateBookingTaskID implements Repositories.
func (r *repositories) UpdateBookingTaskID(ctx context.Context, bookingID string, taskID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE bookings SET task_id = $1, updated_at = NOW() WHERE id = $2
	`, taskID, bookingID)
	if err != nil {
		return errors.InternalServerError("error update booking task id")
	}
	return nil
}

// CountPendingBookings implements Repositories.
func (r *repositories) CountPendingBookings(ctx context.Context, kind entity.ItemKind, itemID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings
		WHERE item_kind = $1 AND item_id = $2 AND status = $3 AND deleted_at IS NULL`
	var count int64
	err := r.db.GetContext(ctx, &count, query, string(kind), itemID, string(entity.StatusPending))
	if err != nil {
		return 0, errors.InternalServerError("error count pending bookings")
	}
	return count, nil
}

// InsertReview implements Repositories. The unique constraint on booking_id
// is the authoritative one-review-per-booking guard; a violation surfaces as
// AlreadyRated.
func (r *repositories) InsertReview(ctx context.Context, review *entity.Review) error {
	query := `INSERT INTO reviews (booking_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		review.BookingID, review.Rating, review.Comment, review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errors.AlreadyRated("booking already has a review")
		}
		return errors.InternalServerError("error insert review")
	}
	return nil
}

// AcquireBookingLock implements Repositories.
func (r *repositories) AcquireBookingLock(ctx context.Context, bookingID string) (func(), error) {
	mutex := r.redsync.NewMutex(
		fmt.Sprintf("booking:lock:%s", bookingID),
		redsync.WithExpiry(8*time.Second),
		redsync.WithTries(3),
	)

	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.InternalServerError("error acquire booking lock")
	}

	return func() {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			r.log.Ctx(ctx).Error(fmt.Sprintf("error release booking lock: %v", err))
		}
	}, nil
}

// SetTaskScheduler implements Repositories.
func (r *repositories) SetTaskScheduler(ctx context.Context, taskType string, delay time.Duration, payload []byte) (string, error) {
	task := asynq.NewTask(taskType, payload)
	info, err := r.asynqClient.EnqueueContext(ctx, task, asynq.ProcessIn(delay))
	if err != nil {
		return "", errors.InternalServerError("error enqueue scheduled task")
	}
	return info.ID, nil
}

// DeleteTaskScheduler implements Repositories.
func (r *repositories) DeleteTaskScheduler(ctx context.Context, taskID string) error {
	if taskID == "" {
		return nil
	}
	if err := r.asynqInspector.DeleteTask("default", taskID); err != nil {
		// the task may already have run, nothing to undo then
		r.log.Ctx(ctx).Warn(fmt.Sprintf("error delete scheduled task %s: %v", taskID, err))
	}
	return nil
}

// ValidateToken implements Repositories. Valid tokens go through a short
// redis cache so the user service is not hit on every request; failures are
// never cached. The key carries a hash of the token, not the token itself.
func (r *repositories) ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error) {
	cacheKey := fmt.Sprintf("token:%x", sha256.Sum256([]byte(token)))
	if cached, err := r.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var respData response.UserServiceValidate
		if err := json.Unmarshal([]byte(cached), &respData); err == nil {
			return respData, nil
		}
	}

	url := fmt.Sprintf("http://%s:%s/api/private/token/validate?token=%s",
		r.cfgUserService.Host, r.cfgUserService.Port, token)
	resp, err := r.httpClient.Get(url)
	if err != nil {
		return response.UserServiceValidate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		r.log.Ctx(ctx).Error(fmt.Sprintf("invalid token, status %d", resp.StatusCode))
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}

	var respData response.UserServiceValidate
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&respData); err != nil {
		return response.UserServiceValidate{}, err
	}

	if !respData.IsValid {
		r.log.Ctx(ctx).Error("invalid token")
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}

	if payload, err := json.Marshal(respData); err == nil {
		r.redisClient.Set(ctx, cacheKey, payload, tokenCacheTTL)
	}

	return respData, nil
}

// InquireItemPrice asks the catalog service for the authoritative total price
// of an item for the given party size. The result is stored on the booking at
// creation, later catalog price changes never touch existing bookings.
func (r *repositories) InquireItemPrice(ctx context.Context, kind entity.ItemKind, itemID int64, guestCount int) (float64, error) {
	url := fmt.Sprintf("http://%s:%s/api/private/price?kind=%s&id=%d&guests=%d",
		r.cfgCatalogService.Host, r.cfgCatalogService.Port, kind, itemID, guestCount)
	resp, err := r.httpClient.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		r.log.Ctx(ctx).Error(fmt.Sprintf("price inquiry failed, status %d", resp.StatusCode))
		return 0, errors.InternalServerError("error inquire item price")
	}

	var respData response.CatalogServicePrice
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&respData); err != nil {
		return 0, err
	}

	return respData.TotalPrice, nil
}
