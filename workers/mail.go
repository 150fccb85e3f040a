package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"questbook/config"
	"questbook/services/mail"
	"questbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitMailWorker runs the async mail worker in background.
func InitMailWorker() {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(mail.TypeMailSend, handleMailTask(logger))

	go func() {
		logger.Info("mail worker starting")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("mail worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("mail worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleMailTask(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var msg mail.Message
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			logger.Error("mail worker: invalid payload", zap.Error(err))
			return err
		}

		if err := deliver(msg); err != nil {
			logger.Error("mail worker: delivery failed",
				zap.String("to", msg.To), zap.String("subject", msg.Subject), zap.Error(err))
			return err
		}

		logger.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
		return nil
	}
}

// deliver sends one message over SMTP.
func deliver(msg mail.Message) error {
	addr := config.AppConfig.SMTPHost + ":" + config.AppConfig.SMTPPort
	from := config.AppConfig.SMTPFrom
	return smtp.SendMail(addr, nil, from, []string{msg.To}, []byte(buildMessage(from, msg)))
}

// buildMessage renders a minimal RFC 5322 message; enough for Mailpit and
// most SMTP relays.
func buildMessage(from string, msg mail.Message) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		msg.To,
		msg.Subject,
		msg.Body,
	)
}
