package scheduler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"

	"triplus-booking-service/config"
)

const (
	TypeSetBookingCompleted = "set_booking_completed"
)

type Scheduler struct {
	Log *otelzap.Logger
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func (s *Scheduler) InitClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

func (s *Scheduler) InitInspector(cfg *config.RedisConfig) *asynq.Inspector {
	return asynq.NewInspector(redisOpt(cfg))
}

func (s *Scheduler) StartMonitoring(cfg *config.RedisConfig) {
	ctx := context.Background()
	h := asynqmon.New(asynqmon.Options{
		RootPath:     "/monitoring",
		RedisConnOpt: redisOpt(cfg),
	})

	http.Handle(h.RootPath()+"/", h)

	err := http.ListenAndServe(":8090", nil)
	s.Log.Ctx(ctx).Error(fmt.Sprintf("error start monitoring scheduler: %v", err))
}

func (s *Scheduler) StartHandler(cfg *config.RedisConfig, taskTypes []string, handlerFunc []func(ctx context.Context, t *asynq.Task) error) {
	ctx := context.Background()
	srv := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 10,
			},
		},
	)

	mux := asynq.NewServeMux()
	for i, taskType := range taskTypes {
		mux.HandleFunc(taskType, handlerFunc[i])
	}

	if err := srv.Run(mux); err != nil {
		s.Log.Ctx(ctx).Error(fmt.Sprintf("error start handler scheduler: %v", err))
	}
}
