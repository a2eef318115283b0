package router

import (
	"github.com/gofiber/fiber/v2"

	bookinghandler "triplus-booking-service/internal/module/booking/handler"
	favoritehandler "triplus-booking-service/internal/module/favorite/handler"
	"triplus-booking-service/internal/pkg/middleware"
)

func Initialize(app *fiber.App, handlerBooking *bookinghandler.BookingHandler, handlerFavorite *favoritehandler.FavoriteHandler, m *middleware.Middleware) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	Api := app.Group("/api")

	// public routes
	v1 := Api.Group("/v1")
	v1.Get("/bookings", m.ValidateToken, handlerBooking.ShowBookings)
	v1.Post("/checkout", m.ValidateToken, m.CheckOfferValidity, handlerBooking.Checkout)
	v1.Post("/bookings/cancel", m.ValidateToken, handlerBooking.Cancel)
	v1.Post("/bookings/rate", m.ValidateToken, handlerBooking.Rate)
	v1.Get("/favorites", m.ValidateToken, handlerFavorite.ShowFavorites)
	v1.Post("/favorites/toggle", m.ValidateToken, handlerFavorite.Toggle)

	private := Api.Group("/private")
	private.Post("/bookings/confirm", handlerBooking.Confirm)
	private.Get("/bookings/pending", handlerBooking.CountPendingBookings)

	return app

}
