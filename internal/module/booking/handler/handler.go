package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"

	"triplus-booking-service/internal/module/booking/models/request"
	"triplus-booking-service/internal/module/booking/usecases"
	"triplus-booking-service/internal/pkg/errors"
	"triplus-booking-service/internal/pkg/helpers"
	"triplus-booking-service/internal/pkg/listing"
)

type BookingHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	Publish   message.Publisher
	PageSize  int
}

func (h *BookingHandler) Checkout(ctx *fiber.Ctx) error {
	var req request.Checkout
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)
	emailUser := ctx.Locals("email_user").(string)

	err := h.Usecase.CheckoutBooking(ctx.UserContext(), &req, userID, emailUser)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error checkout booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, nil, "booking queued, confirmation will follow shortly")
}

func (h *BookingHandler) ConsumeCheckoutQueue(msg *message.Message) error {
	msg.Ack()
	var req request.Checkout
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error unmarshal message: %v", err))

		reqPoisoned := request.PoisonedQueue{
			TopicTarget: "booking_checkout",
			ErrorMsg:    err.Error(),
			Payload:     msg.Payload,
		}

		jsonPayload, _ := json.Marshal(reqPoisoned)
		err = h.Publish.Publish("poisoned_queue", message.NewMessage(watermill.NewUUID(), jsonPayload))
		if err != nil {
			h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error publish to poison queue: %v", err))
		}

		return err
	}

	ctx := context.Background()

	err := h.Usecase.ConsumeCheckoutQueue(ctx, &req)
	if err != nil {
		reqPoisoned := request.PoisonedQueue{
			TopicTarget: "booking_checkout",
			ErrorMsg:    err.Error(),
			Payload:     msg.Payload,
		}

		jsonPayload, _ := json.Marshal(reqPoisoned)
		if pubErr := h.Publish.Publish("poisoned_queue", message.NewMessage(watermill.NewUUID(), jsonPayload)); pubErr != nil {
			h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error publish to poison queue: %v", pubErr))
		}

		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error consume checkout queue: %v", err))

		return err
	}

	return nil
}

func (h *BookingHandler) Cancel(ctx *fiber.Ctx) error {
	var req request.Cancellation
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)
	emailUser := ctx.Locals("email_user").(string)

	err := h.Usecase.CancelBooking(ctx.UserContext(), &req, userID, emailUser)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error cancel booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, nil, "booking cancelled")
}

func (h *BookingHandler) Rate(ctx *fiber.Ctx) error {
	var req request.Rating
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)
	emailUser := ctx.Locals("email_user").(string)

	resp, err := h.Usecase.SubmitRating(ctx.UserContext(), &req, userID, emailUser)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error submit rating: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "review submitted")
}

func (h *BookingHandler) ShowBookings(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)

	var req request.BookingList
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

	resp, err := h.Usecase.ShowBookings(ctx.UserContext(), userID, params)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show bookings: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show bookings")
}

func (h *BookingHandler) Confirm(ctx *fiber.Ctx) error {
	var req request.Confirmation
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	err := h.Usecase.ConfirmBooking(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error confirm booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, nil, "booking confirmed")
}

func (h *BookingHandler) CountPendingBookings(ctx *fiber.Ctx) error {
	kind := ctx.Query("item_kind")
	itemID, err := strconv.ParseInt(ctx.Query("item_id"), 10, 64)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse item id: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse item id"))
	}

	resp, err := h.Usecase.CountPendingBookings(ctx.UserContext(), kind, itemID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error count pending bookings: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success count pending bookings")
}

func (h *BookingHandler) SetBookingCompleted(ctx context.Context, t *asynq.Task) error {
	var req request.BookingCompletion
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
		return err
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return err
	}

	err := h.Usecase.SetBookingCompleted(ctx, &req)
	if err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error set booking completed: %v", err))
		return err
	}

	return nil
}
