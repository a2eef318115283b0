package main

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"triplus-booking-service/config"
	bookinghandler "triplus-booking-service/internal/module/booking/handler"
	bookingrepositories "triplus-booking-service/internal/module/booking/repositories"
	bookingusecases "triplus-booking-service/internal/module/booking/usecases"
	favoritehandler "triplus-booking-service/internal/module/favorite/handler"
	favoriterepositories "triplus-booking-service/internal/module/favorite/repositories"
	favoriteusecases "triplus-booking-service/internal/module/favorite/usecases"
	"triplus-booking-service/internal/pkg/database"
	"triplus-booking-service/internal/pkg/http"
	"triplus-booking-service/internal/pkg/httpclient"
	log_internal "triplus-booking-service/internal/pkg/log"
	"triplus-booking-service/internal/pkg/messagestream"
	"triplus-booking-service/internal/pkg/middleware"
	"triplus-booking-service/internal/pkg/redis"
	"triplus-booking-service/internal/pkg/scheduler"
	router "triplus-booking-service/internal/route"
)

func main() {
	cfg := config.InitConfig()

	app, messageRouters, sched, bookingHandler := initService(cfg)

	for _, r := range messageRouters {
		ctx := context.Background()
		go func(r *message.Router) {
			if err := r.Run(ctx); err != nil {
				log.Fatal(err)
			}
		}(r)
	}

	// scheduled completion flips + monitoring
	go sched.StartHandler(&cfg.Redis,
		[]string{scheduler.TypeSetBookingCompleted},
		[]func(ctx context.Context, t *asynq.Task) error{bookingHandler.SetBookingCompleted})
	go sched.StartMonitoring(&cfg.Redis)

	// start http server
	http.StartHttpServer(app, cfg.HttpServer.Port)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router, *scheduler.Scheduler, *bookinghandler.BookingHandler) {

	// init database
	db := database.GetConnection(&cfg.Database)
	// init redis
	redisClient := redis.SetupClient(&cfg.Redis)
	rs := redis.SetupRedsync(redisClient)
	// init logger
	logger := log_internal.Setup()
	// init http client
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)

	ctx := context.Background()
	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream)

	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Ctx(ctx).Error("failed to create subscriber")
	}

	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Ctx(ctx).Error("failed to create publisher")
	}

	// init scheduler
	sched := &scheduler.Scheduler{Log: logger}
	asynqClient := sched.InitClient(&cfg.Redis)
	asynqInspector := sched.InitInspector(&cfg.Redis)

	bookingRepo := bookingrepositories.New(db, logger, httpClient, redisClient, rs,
		asynqClient, asynqInspector, &cfg.UserService, &cfg.CatalogService)
	bookingUsecase := bookingusecases.New(bookingRepo, logger, publisher)

	favoriteRepo := favoriterepositories.New(db, logger, redisClient)
	favoriteUsecase := favoriteusecases.New(favoriteRepo, logger)

	m := &middleware.Middleware{
		Log:  logger,
		Repo: bookingRepo,
	}

	v := validator.New()
	bookingHandler := &bookinghandler.BookingHandler{
		Log:       logger,
		Validator: v,
		Usecase:   bookingUsecase,
		Publish:   publisher,
		PageSize:  cfg.Booking.PageSize,
	}
	favoriteHandler := &favoritehandler.FavoriteHandler{
		Log:       logger,
		Validator: v,
		Usecase:   favoriteUsecase,
		PageSize:  cfg.Booking.PageSize,
	}

	var messageRouters []*message.Router

	consumeCheckoutRouter, err := messagestream.NewRouter(publisher,
		"booking_checkout_poisoned", "booking_checkout_handler", "booking_checkout",
		subscriber, bookingHandler.ConsumeCheckoutQueue)
	if err != nil {
		logger.Ctx(ctx).Error("failed to create booking_checkout router")
	}

	messageRouters = append(messageRouters, consumeCheckoutRouter)

	serverHttp := http.SetupHttpEngine()

	r := router.Initialize(serverHttp, bookingHandler, favoriteHandler, m)

	return r, messageRouters, sched, bookingHandler
}
