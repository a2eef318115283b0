package handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"

	"triplus-booking-service/internal/module/favorite/models/request"
	"triplus-booking-service/internal/module/favorite/usecases"
	"triplus-booking-service/internal/pkg/errors"
	"triplus-booking-service/internal/pkg/helpers"
	"triplus-booking-service/internal/pkg/listing"
)

type FavoriteHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	PageSize  int
}

func (h *FavoriteHandler) Toggle(ctx *fiber.Ctx) error {
	var req request.Toggle
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.ToggleFavorite(ctx.UserContext(), &req, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error toggle favorite: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success toggle favorite")
}

func (h *FavoriteHandler) ShowFavorites(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)

	var req request.FavoriteList
	if err := ctx.QueryParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse query: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse query"))
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = h.PageSize
	}

	params := listing.Params{
		Query:    req.Query,
		Filters:  req.Filters,
		Sort:     listing.Sort(req.Sort),
		Page:     req.Page,
		PageSize: pageSize,
	}

	resp, err := h.Usecase.ShowFavorites(ctx.UserContext(), userID, params)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show favorites: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show favorites")
}
