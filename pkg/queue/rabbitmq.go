package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"blog-api/pkg/config"
	"blog-api/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationQueueName = "notification_queue"
	NotificationExchange  = "notifications"
	LikeRoutingKey        = "post_liked"

	maxPriority = 10
)

// NotificationTask is the message body consumed by the notification workers.
type NotificationTask struct {
	Type     string `json:"type"`
	UserID   string `json:"user_id"`
	LikerID  string `json:"liker_id,omitempty"`
	PostID   string `json:"post_id,omitempty"`
	Priority int    `json:"priority"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		NotificationExchange, // name
		"direct",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		NotificationQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		amqp.Table{
			"x-max-priority": maxPriority,
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		NotificationQueueName, // queue name
		LikeRoutingKey,        // routing key
		NotificationExchange,  // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishNotificationTask publishes a persistent task with the task's priority
// clamped to the queue's supported range.
func (c *Client) PublishNotificationTask(task NotificationTask) error {
	msg, err := newPublishing(task, time.Now())
	if err != nil {
		return err
	}

	err = c.channel.Publish(
		NotificationExchange, // exchange
		LikeRoutingKey,       // routing key
		false,                // mandatory
		false,                // immediate
		msg,
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish message to exchange=%s, routing_key=%s: %v", NotificationExchange, LikeRoutingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug("[RABBITMQ] Published notification task to exchange=%s, routing_key=%s: %s", NotificationExchange, LikeRoutingKey, string(msg.Body))
	return nil
}

func newPublishing(task NotificationTask, now time.Time) (amqp.Publishing, error) {
	task.Priority = clampPriority(task.Priority)

	body, err := json.Marshal(task)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal task: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		Priority:     uint8(task.Priority),
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
	}, nil
}

func clampPriority(p int) int {
	if p < 0 {
		return 0
	}
	if p > maxPriority {
		return maxPriority
	}
	return p
}
