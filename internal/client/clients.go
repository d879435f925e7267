package client

import (
	"github.com/pollify/backend/internal/dto"
	"github.com/sirupsen/logrus"
)

type Clients interface {
	RabbitMQClient() RabbitClient
}

type clients struct {
	rabbitClient RabbitClient
}

func (c clients) RabbitMQClient() RabbitClient {
	return c.rabbitClient
}

// NewClients wires the optional external collaborators. A missing or
// unreachable RabbitMQ is not fatal: vote updates then stay process-local.
func NewClients(cfg dto.Config) Clients {
	var rabbitClient RabbitClient
	if cfg.RabbitMQURL != "" {
		created, err := NewRabbitMQClient(cfg)
		if err != nil {
			logrus.Warnf("RabbitMQ unavailable, vote updates stay process-local: %v", err)
		} else {
			rabbitClient = created
		}
	}

	return &clients{
		rabbitClient: rabbitClient,
	}
}
