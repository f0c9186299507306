package kafka_test

import (
	"context"
	"strings"
	"testing"

	"go-hrms/internal/messaging/kafka"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupOutboxDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.NoError(t, db.AutoMigrate(&kafka.OutboxEvent{}))
	return db
}

func pendingEvent(topic string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "payroll_period",
		AggregateID:   uuid.NewString(),
		EventType:     "payroll.generated",
		Topic:         topic,
		Payload:       []byte(`{"month":4}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Lifecycle(t *testing.T) {
	db := setupOutboxDB(t)
	repo := kafka.NewOutboxRepository(db)
	ctx := context.Background()

	first := pendingEvent("hr.payroll.generated.v1")
	second := pendingEvent("hr.payroll.generated.v1")
	assert.NoError(t, repo.Create(ctx, first))
	assert.NoError(t, repo.Create(ctx, second))

	pending, err := repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, pending, 2)

	t.Run("failed event waits for backoff", func(t *testing.T) {
		assert.NoError(t, repo.MarkFailed(ctx, first, strings.Repeat("x", 800)))

		pending, err := repo.ListPending(ctx, 10)
		assert.NoError(t, err)
		assert.Len(t, pending, 1)
		assert.Equal(t, second.ID, pending[0].ID)

		var stored kafka.OutboxEvent
		assert.NoError(t, db.First(&stored, "id = ?", first.ID).Error)
		assert.Equal(t, kafka.OutboxStatusFailed, stored.Status)
		assert.Equal(t, 1, stored.RetryCount)
		assert.NotNil(t, stored.NextRetryAt)
		assert.Len(t, *stored.ErrorMessage, 500)
	})

	t.Run("sent event leaves the queue", func(t *testing.T) {
		assert.NoError(t, repo.MarkSent(ctx, second.ID))

		pending, err := repo.ListPending(ctx, 10)
		assert.NoError(t, err)
		assert.Empty(t, pending)

		var stored kafka.OutboxEvent
		assert.NoError(t, db.First(&stored, "id = ?", second.ID).Error)
		assert.Equal(t, kafka.OutboxStatusSent, stored.Status)
		assert.NotNil(t, stored.ProcessedAt)
	})
}

func TestOutboxRepository_CreateRejectsInvalidEvent(t *testing.T) {
	repo := kafka.NewOutboxRepository(setupOutboxDB(t))

	event := pendingEvent("")
	err := repo.Create(context.Background(), event)
	assert.EqualError(t, err, "outbox topic is required")

	event = pendingEvent("topic")
	event.Status = "queued"
	err = repo.Create(context.Background(), event)
	assert.EqualError(t, err, "invalid outbox status: queued")
}
