package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"

	"triplus-booking-service/internal/module/booking/models/entity"
	"triplus-booking-service/internal/module/booking/models/request"
	"triplus-booking-service/internal/module/booking/repositories"
	"triplus-booking-service/internal/pkg/errors"
	"triplus-booking-service/internal/pkg/helpers"
)

type Middleware struct {
	Log  *otelzap.Logger
	Repo repositories.Repositories
}

func (m *Middleware) ValidateToken(ctx *fiber.Ctx) error {
	auth := ctx.Get("Authorization")
	if auth == "" {
		m.Log.Ctx(ctx.UserContext()).Error("error get token from header")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error get token from header"))
	}

	token := strings.TrimPrefix(auth, "Bearer ")
	if token == auth {
		m.Log.Ctx(ctx.UserContext()).Error("malformed authorization header")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("malformed authorization header"))
	}

	resp, err := m.Repo.ValidateToken(ctx.UserContext(), token)
	if err != nil {
		m.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate token: %v", err))
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error validate token"))
	}

	if !resp.IsValid {
		m.Log.Ctx(ctx.UserContext()).Error("error validate token")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error validate token"))
	}

	ctx.Locals("user_id", resp.UserID)
	ctx.Locals("email_user", resp.EmailUser)

	return ctx.Next()
}

// CheckOfferValidity gates checkout requests that reference an offer: the
// offer must be active and not expired before the request reaches the
// handler. Other item kinds pass through.
func (m *Middleware) CheckOfferValidity(ctx *fiber.Ctx) error {
	var req request.Checkout
	if err := ctx.BodyParser(&req); err != nil {
		m.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, m.Log, errors.BadRequest("error parse request"))
	}

	if req.ItemKind != string(entity.ItemOffer) {
		return ctx.Next()
	}

	offer, err := m.Repo.FindCatalogItem(ctx.UserContext(), entity.ItemOffer, req.ItemID)
	if err != nil {
		m.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error find offer: %v", err))
		return helpers.RespError(ctx, m.Log, err)
	}

	if !offer.Active {
		return helpers.RespError(ctx, m.Log, errors.NotEligible("offer is not active"))
	}

	if offer.ExpiresAt.Valid && !offer.ExpiresAt.Time.After(time.Now()) {
		return helpers.RespError(ctx, m.Log, errors.NotEligible("offer has expired"))
	}

	return ctx.Next()
}
