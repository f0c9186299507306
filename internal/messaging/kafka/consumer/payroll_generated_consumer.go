package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-hrms/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PayslipStore renders and persists payslips for a committed run.
type PayslipStore interface {
	StorePayslips(ctx context.Context, event events.PayrollGeneratedEvent) (int, error)
}

const maxHandleAttempts = 3

// ConsumePayrollGenerated retries a failed message in place with a linear
// backoff of retryDelay. A message that still fails is left uncommitted and
// the consumer moves on; payslips stay downloadable on demand.
func ConsumePayrollGenerated(
	ctx context.Context,
	reader MessageReader,
	store PayslipStore,
	logger *zap.Logger,
	retryDelay time.Duration,
) {
	log := logger.Named("kafka.consumer.payroll_generated")
	log.Info("payroll generated consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll generated consumer stopped")
				return
			}
			log.Error("fetch payroll generated message failed", zap.Error(err))
			continue
		}

		if err := handleWithRetry(ctx, msg, store, log, retryDelay); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("giving up on payroll generated message",
				zap.Int64("offset", msg.Offset),
				zap.Int("attempts", maxHandleAttempts),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll generated message failed", zap.Error(err))
		}
	}
}

func handleWithRetry(ctx context.Context, msg kafkago.Message, store PayslipStore, log *zap.Logger, retryDelay time.Duration) error {
	var err error
	for attempt := 1; attempt <= maxHandleAttempts; attempt++ {
		if err = HandlePayrollGenerated(ctx, msg, store, log); err == nil {
			return nil
		}
		if attempt == maxHandleAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryDelay):
		}
	}
	return err
}

// HandlePayrollGenerated stores payslips for one message. Undecodable
// payloads return nil so they are committed and skipped.
func HandlePayrollGenerated(ctx context.Context, msg kafkago.Message, store PayslipStore, log *zap.Logger) error {
	var event events.PayrollGeneratedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode payroll generated event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}
	if event.EventType != "" && event.EventType != events.PayrollGeneratedEventType {
		log.Warn("unexpected event type, skipping", zap.String("event_type", event.EventType))
		return nil
	}

	stored, err := store.StorePayslips(ctx, event)
	if err != nil {
		log.Error("store payslips failed",
			zap.String("organization_id", event.OrganizationID),
			zap.String("admin_id", event.AdminID),
			zap.String("period", fmt.Sprintf("%04d-%02d", event.Year, event.Month)),
			zap.String("request_id", header(msg, "request_id")),
			zap.Error(err),
		)
		return err
	}

	log.Info("payslips stored",
		zap.String("organization_id", event.OrganizationID),
		zap.String("admin_id", event.AdminID),
		zap.String("period", fmt.Sprintf("%04d-%02d", event.Year, event.Month)),
		zap.Int("count", stored),
	)
	return nil
}
