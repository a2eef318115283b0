package request

type Toggle struct {
	ItemKind string `json:"item_kind" validate:"required,oneof=destination offer package"`
	ItemID   int64  `json:"item_id" validate:"required"`
}

type FavoriteList struct {
	Query    string   `query:"q"`
	Filters  []string `query:"category"`
	Sort     string   `query:"sort"`
	Page     int      `query:"page"`
	PageSize int      `query:"page_size"`
}
