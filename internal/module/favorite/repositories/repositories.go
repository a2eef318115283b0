package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"

	bookingentity "triplus-booking-service/internal/module/booking/models/entity"
	"triplus-booking-service/internal/module/favorite/models/entity"
	"triplus-booking-service/internal/pkg/errors"
)

const catalogCacheTTL = 5 * time.Minute

type repositories struct {
	db          *sqlx.DB
	log         *otelzap.Logger
	redisClient *redis.Client
}

type Repositories interface {
	ToggleFavorite(ctx context.Context, favorite *entity.Favorite) (bool, error)
	FindFavoritesByUserID(ctx context.Context, userID int64) ([]entity.Favorite, error)
	FindCatalogItem(ctx context.Context, kind bookingentity.ItemKind, itemID int64) (bookingentity.CatalogItem, error)
}

func New(db *sqlx.DB, log *otelzap.Logger, redisClient *redis.Client) Repositories {
	return &repositories{
		db:          db,
		log:         log,
		redisClient: redisClient,
	}
}

// ToggleFavorite implements Repositories as an atomic flip on the unique
// (user, item) pair: the insert either lands (now favorited) or conflicts, in
// which case the existing row is removed. Concurrent toggles converge on one
// row at most.
func (r *repositories) ToggleFavorite(ctx context.Context, favorite *entity.Favorite) (bool, error) {
	insert := `INSERT INTO favorites (id, user_id, item_kind, item_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, item_kind, item_id) DO NOTHING
		RETURNING id`

	var insertedID string
	err := r.db.QueryRowxContext(ctx, insert,
		favorite.ID, favorite.UserID, string(favorite.ItemKind), favorite.ItemID, favorite.CreatedAt,
	).Scan(&insertedID)
	if err == nil {
		return true, nil
	}
	if err != sql.ErrNoRows {
		return false, errors.InternalServerError("error toggle favorite")
	}

	// pair already existed, the toggle removes it
	_, err = r.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND item_kind = $2 AND item_id = $3
	`, favorite.UserID, string(favorite.ItemKind), favorite.ItemID)
	if err != nil {
		return false, errors.InternalServerError("error toggle favorite")
	}

	return false, nil
}

// FindFavoritesByUserID implements Repositories.
func (r *repositories) FindFavoritesByUserID(ctx context.Context, userID int64) ([]entity.Favorite, error) {
	query := `SELECT id, user_id, item_kind, item_id, created_at
		FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`
	var favorites []entity.Favorite
	err := r.db.SelectContext(ctx, &favorites, query, userID)
	if err != nil {
		return nil, errors.InternalServerError("error find favorites by user id")
	}
	return favorites, nil
}

var catalogQueries = map[bookingentity.ItemKind]string{
	bookingentity.ItemDestination: `SELECT 'destination' AS kind, id, title, location, description,
		NULL::text AS company_name, category, price, NULL::text AS discount_price,
		active, NULL::timestamptz AS expires_at
		FROM destinations WHERE id = $1`,
	bookingentity.ItemOffer: `SELECT 'offer' AS kind, id, title, location, description,
		company_name, category, price, discount_price, active, expires_at
		FROM offers WHERE id = $1`,
	bookingentity.ItemPackage: `SELECT 'package' AS kind, id, title, location, description,
		company_name, category, price, NULL::text AS discount_price,
		active, NULL::timestamptz AS expires_at
		FROM packages WHERE id = $1`,
}

// FindCatalogItem implements Repositories. Shares the catalog cache keys with
// the booking module, both read the same read model.
func (r *repositories) FindCatalogItem(ctx context.Context, kind bookingentity.ItemKind, itemID int64) (bookingentity.CatalogItem, error) {
	cacheKey := fmt.Sprintf("catalog:%s:%d", kind, itemID)
	if cached, err := r.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var item bookingentity.CatalogItem
		if err := json.Unmarshal([]byte(cached), &item); err == nil {
			return item, nil
		}
	}

	query, ok := catalogQueries[kind]
	if !ok {
		return bookingentity.CatalogItem{}, errors.BadRequest("unknown item kind")
	}

	var item bookingentity.CatalogItem
	err := r.db.GetContext(ctx, &item, query, itemID)
	if err == sql.ErrNoRows {
		return bookingentity.CatalogItem{}, errors.NotFound("item not found")
	}
	if err != nil {
		return bookingentity.CatalogItem{}, errors.InternalServerError("error find catalog item")
	}

	if payload, err := json.Marshal(item); err == nil {
		r.redisClient.Set(ctx, cacheKey, payload, catalogCacheTTL)
	}

	return item, nil
}
