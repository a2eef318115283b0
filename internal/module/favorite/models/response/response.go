package response

import "time"

// ToggleResult is the authoritative state after a toggle. FavoriteID is empty
// when the pair was removed.
type ToggleResult struct {
	IsFavorite bool   `json:"is_favorite"`
	FavoriteID string `json:"favorite_id,omitempty"`
}

// FavoriteView is one row of the favorites listing: the favorite joined with
// its catalog item.
type FavoriteView struct {
	ID            string    `json:"id"`
	ItemKind      string    `json:"item_kind"`
	ItemID        int64     `json:"item_id"`
	Title         string    `json:"title"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	CompanyName   string    `json:"company_name,omitempty"`
	Category      string    `json:"category"`
	BasePrice     string    `json:"price"`
	Discount      string    `json:"discount_price,omitempty"`
	AddedAt       string    `json:"added_at"`
	CreatedAt     time.Time `json:"-"`
}

func (v FavoriteView) SearchFields() []string {
	return []string{v.Title, v.Location, v.Description, v.CompanyName}
}

func (v FavoriteView) FilterKey() string { return v.Category }

func (v FavoriteView) CreatedTime() time.Time { return v.CreatedAt }

func (v FavoriteView) Price() string { return v.BasePrice }

func (v FavoriteView) DiscountPrice() string { return v.Discount }

type FavoriteList struct {
	Favorites  []FavoriteView `json:"favorites"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
}
