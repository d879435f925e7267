package client

import (
	"context"
	"sync"
	"time"

	"github.com/pollify/backend/internal/dto"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// RabbitClient fans vote updates out across processes through a fanout
// exchange. Each process consumes from its own exclusive queue, so every
// process sees every published update, including its own.
type RabbitClient interface {
	PublishMessage(message []byte) error
	ConsumeMessages() (<-chan []byte, error)
	Close() error
}

type rabbitClient struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	exchangeName string
	out          chan []byte
	consuming    bool
	mutex        sync.Mutex
}

func NewRabbitMQClient(config dto.Config) (RabbitClient, error) {
	conn, err := amqp.Dial(config.RabbitMQURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	exchangeName := "vote_updates"
	err = ch.ExchangeDeclare(
		exchangeName, // name
		"fanout",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	client := &rabbitClient{
		conn:         conn,
		channel:      ch,
		exchangeName: exchangeName,
		out:          make(chan []byte, 100),
	}

	go client.monitorConnection(config.RabbitMQURL)

	return client, nil
}

func (c *rabbitClient) monitorConnection(connectionStr string) {
	connCloseChan := make(chan *amqp.Error)
	c.conn.NotifyClose(connCloseChan)

	err := <-connCloseChan
	if err == nil {
		// Deliberate Close, nothing to recover.
		return
	}
	logrus.Errorf("RabbitMQ connection closed: %v", err)

	for {
		time.Sleep(5 * time.Second)

		logrus.Info("Attempting to reconnect to RabbitMQ...")
		conn, err := amqp.Dial(connectionStr)
		if err != nil {
			logrus.Errorf("Failed to reconnect to RabbitMQ: %v", err)
			continue
		}

		ch, err := conn.Channel()
		if err != nil {
			logrus.Errorf("Failed to open a channel: %v", err)
			conn.Close()
			continue
		}

		err = ch.ExchangeDeclare(
			c.exchangeName, // name
			"fanout",       // type
			true,           // durable
			false,          // auto-deleted
			false,          // internal
			false,          // no-wait
			nil,            // arguments
		)
		if err != nil {
			logrus.Errorf("Failed to declare an exchange: %v", err)
			ch.Close()
			conn.Close()
			continue
		}

		c.mutex.Lock()
		oldConn := c.conn
		oldChannel := c.channel
		c.conn = conn
		c.channel = ch
		consuming := c.consuming
		c.mutex.Unlock()

		if oldChannel != nil {
			oldChannel.Close()
		}
		if oldConn != nil {
			oldConn.Close()
		}

		if consuming {
			if err := c.startConsumer(); err != nil {
				logrus.Errorf("Failed to restart consumer after reconnect: %v", err)
			}
		}

		go c.monitorConnection(connectionStr)
		break
	}
}

func (c *rabbitClient) PublishMessage(message []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c.mutex.Lock()
	ch := c.channel
	c.mutex.Unlock()

	return ch.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		"",             // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        message,
		})
}

// ConsumeMessages binds an exclusive queue to the exchange and returns the
// channel delivering raw message bodies. The same channel survives
// reconnects. Delivery is best-effort: if the buffer is full the message is
// dropped.
func (c *rabbitClient) ConsumeMessages() (<-chan []byte, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.consuming {
		return c.out, nil
	}
	if err := c.startConsumerLocked(); err != nil {
		return nil, err
	}
	c.consuming = true

	return c.out, nil
}

func (c *rabbitClient) startConsumer() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.startConsumerLocked()
}

func (c *rabbitClient) startConsumerLocked() error {
	q, err := c.channel.QueueDeclare(
		"",    // name - let RabbitMQ generate a unique name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = c.channel.QueueBind(
		q.Name,         // queue name
		"",             // routing key
		c.exchangeName, // exchange
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return err
	}

	go func() {
		for d := range msgs {
			select {
			case c.out <- d.Body:
			default:
			}
		}
	}()

	return nil
}

func (c *rabbitClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
