package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"

	bookingentity "triplus-booking-service/internal/module/booking/models/entity"
	"triplus-booking-service/internal/module/favorite/models/entity"
	"triplus-booking-service/internal/module/favorite/models/request"
	"triplus-booking-service/internal/module/favorite/models/response"
	"triplus-booking-service/internal/module/favorite/repositories"
	"triplus-booking-service/internal/pkg/errors"
	"triplus-booking-service/internal/pkg/listing"
)

type usecase struct {
	repo repositories.Repositories
	log  *otelzap.Logger
}

type Usecase interface {
	ToggleFavorite(ctx context.Context, payload *request.Toggle, userID int64) (response.ToggleResult, error)
	ShowFavorites(ctx context.Context, userID int64, params listing.Params) (response.FavoriteList, error)
}

func New(repo repositories.Repositories, log *otelzap.Logger) Usecase {
	return &usecase{
		repo: repo,
		log:  log,
	}
}

// ToggleFavorite flips the (user, item) pair and returns the authoritative
// final state. The caller may have applied an optimistic flip already; this
// result is what it reconciles against.
func (u *usecase) ToggleFavorite(ctx context.Context, payload *request.Toggle, userID int64) (response.ToggleResult, error) {
	kind, ok := bookingentity.ParseItemKind(payload.ItemKind)
	if !ok {
		return response.ToggleResult{}, errors.BadRequest("unknown item kind")
	}

	if _, err := u.repo.FindCatalogItem(ctx, kind, payload.ItemID); err != nil {
		return response.ToggleResult{}, err
	}

	favorite := entity.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		ItemKind:  kind,
		ItemID:    payload.ItemID,
		CreatedAt: time.Now(),
	}

	added, err := u.repo.ToggleFavorite(ctx, &favorite)
	if err != nil {
		return response.ToggleResult{}, err
	}

	result := response.ToggleResult{IsFavorite: added}
	if added {
		result.FavoriteID = favorite.ID.String()
	}
	return result, nil
}

// ShowFavorites joins each favorite with its catalog item and hands the rows
// to the listing engine.
func (u *usecase) ShowFavorites(ctx context.Context, userID int64, params listing.Params) (response.FavoriteList, error) {
	favorites, err := u.repo.FindFavoritesByUserID(ctx, userID)
	if err != nil {
		return response.FavoriteList{}, err
	}

	views := make([]response.FavoriteView, 0, len(favorites))
	for _, f := range favorites {
		item, err := u.repo.FindCatalogItem(ctx, f.ItemKind, f.ItemID)
		if err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error find catalog item %s/%d: %v", f.ItemKind, f.ItemID, err))
		}

		views = append(views, response.FavoriteView{
			ID:          f.ID.String(),
			ItemKind:    string(f.ItemKind),
			ItemID:      f.ItemID,
			Title:       item.Title,
			Location:    item.Location,
			Description: item.Description,
			CompanyName: item.CompanyName.String,
			Category:    item.Category,
			BasePrice:   item.Price,
			Discount:    item.DiscountPrice.String,
			AddedAt:     f.CreatedAt.Format("2006-01-02 15:04:05"),
			CreatedAt:   f.CreatedAt,
		})
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	visible, totalPages := listing.Paginate(views, params)

	return response.FavoriteList{
		Favorites:  visible,
		TotalPages: totalPages,
		Page:       page,
	}, nil
}
