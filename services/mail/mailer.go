package mail

import (
	"encoding/json"
	"fmt"

	"questbook/config"

	"github.com/hibiken/asynq"
)

// TypeMailSend is the asynq task type for outbound email.
const TypeMailSend = "mail:send"

// Message is the payload of a mail:send task.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AsynqMailer queues messages on the Redis-backed mail queue.
type AsynqMailer struct {
	client *asynq.Client
}

// NewAsynqMailer creates a Mailer backed by the configured Redis mail queue.
func NewAsynqMailer() *AsynqMailer {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})
	return &AsynqMailer{client: client}
}

// Enqueue schedules a single message for delivery.
func (m *AsynqMailer) Enqueue(to, subject, body string) error {
	payload, err := json.Marshal(Message{To: to, Subject: subject, Body: body})
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}
	task := asynq.NewTask(TypeMailSend, payload)
	if _, err := m.client.Enqueue(task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("failed to enqueue mail to %s: %w", to, err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (m *AsynqMailer) Close() error {
	return m.client.Close()
}
