package messagestream

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"triplus-booking-service/config"
)

type MessageStream interface {
	NewSubscriber() (message.Subscriber, error)
	NewPublisher() (message.Publisher, error)
}

type ampq struct {
	cfg    *config.MessageStreamConfig
	logger watermill.LoggerAdapter
}

func NewAmpq(cfg *config.MessageStreamConfig) MessageStream {
	return &ampq{
		cfg:    cfg,
		logger: watermill.NewStdLogger(false, false),
	}
}

func (a *ampq) uri() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", a.cfg.User, a.cfg.Password, a.cfg.Host, a.cfg.Port)
}

func (a *ampq) NewSubscriber() (message.Subscriber, error) {
	amqpConfig := amqp.NewDurableQueueConfig(a.uri())
	return amqp.NewSubscriber(amqpConfig, a.logger)
}

func (a *ampq) NewPublisher() (message.Publisher, error) {
	amqpConfig := amqp.NewDurableQueueConfig(a.uri())
	return amqp.NewPublisher(amqpConfig, a.logger)
}

// NewRouter wires a consumer for one topic with a poisoned-queue fallback:
// messages whose handler keeps failing end up on poisonedTopic instead of
// blocking the queue.
func NewRouter(publisher message.Publisher, poisonedTopic, handlerName, topic string, subscriber message.Subscriber, handlerFunc message.NoPublishHandlerFunc) (*message.Router, error) {
	logger := watermill.NewStdLogger(false, false)

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}

	poisonMiddleware, err := middleware.PoisonQueue(publisher, poisonedTopic)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(poisonMiddleware)
	router.AddNoPublisherHandler(handlerName, topic, subscriber, handlerFunc)

	return router, nil
}
