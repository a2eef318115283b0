package httpclient

import (
	"time"

	circuit "github.com/rubyist/circuitbreaker"

	"triplus-booking-service/config"
)

const (
	TypeConsecutive = "consecutive"
	TypeErrorRate   = "error_rate"
	TypeThreshold   = "threshold"
)

func InitCircuitBreaker(cfg *config.HttpClientConfig, typeCircuitBreaker string) *circuit.Breaker {
	switch typeCircuitBreaker {
	case TypeErrorRate:
		return circuit.NewRateBreaker(cfg.ErrorRate, 100)
	case TypeThreshold:
		return circuit.NewThresholdBreaker(cfg.Threshold)
	default:
		return circuit.NewConsecutiveBreaker(cfg.ConsecutiveFailures)
	}
}

func InitHttpClient(cfg *config.HttpClientConfig, cb *circuit.Breaker) *circuit.HTTPClient {
	timeout := time.Duration(cfg.Timeout) * time.Second
	client := circuit.NewHTTPClientWithBreaker(cb, timeout, nil)
	return client
}
