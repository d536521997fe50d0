package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/worker"
)

const (
	maxBatchSize    = 10
	emptyQueueSleep = 100 * time.Millisecond
	errorSleep      = time.Second
	// defaultRetryDelay умножается на номер попытки
	defaultRetryDelay = 2 * time.Second
	// pendingMinIdle - сообщение без ack дольше этого считается брошенным consumer'ом
	pendingMinIdle = time.Minute
	// claimInterval - как часто проверять pending-список группы
	claimInterval = 30 * time.Second
)

// LeadNotificationWorker отправляет письмо агентству на каждое событие новой заявки
type LeadNotificationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	notifier     repository.LeadNotifier
	consumerName string
	maxRetries   int
	retryDelay   time.Duration
	minIdle      time.Duration
	lastClaim    time.Time
}

// NewLeadNotificationWorker создает новый LeadNotificationWorker
func NewLeadNotificationWorker(
	streamRepo repository.StreamRepository,
	notifier repository.LeadNotifier,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *LeadNotificationWorker {
	hostname, _ := os.Hostname()
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &LeadNotificationWorker{
		BaseWorker:   worker.NewBaseWorker("lead-notification", domain.StreamLeadCreated, consumerGroup, logger),
		streamRepo:   streamRepo,
		notifier:     notifier,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:   maxRetries,
		retryDelay:   defaultRetryDelay,
		minIdle:      pendingMinIdle,
	}
}

// Start читает стрим до остановки воркера
func (w *LeadNotificationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting lead notification worker",
		zap.String("stream", w.Stream()),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_retries", w.maxRetries))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.processBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Sleep(ctx, errorSleep)
			continue
		}
		if processed == 0 {
			w.Sleep(ctx, emptyQueueSleep)
		}
	}
}

// processBatch обрабатывает до maxBatchSize сообщений и возвращает их количество.
// Раз в claimInterval сначала забираются сообщения, брошенные другими consumer'ами
// (например, процессом, остановленным посреди повторов).
func (w *LeadNotificationWorker) processBatch(ctx context.Context) (int, error) {
	if time.Since(w.lastClaim) >= claimInterval {
		claimed, err := w.streamRepo.ClaimPending(ctx, w.Stream(), w.ConsumerGroup(), w.consumerName, w.minIdle, maxBatchSize)
		if err != nil {
			return 0, fmt.Errorf("failed to claim pending messages: %w", err)
		}
		// полная пачка - в pending может остаться ещё, проверим на следующем шаге
		if len(claimed) < maxBatchSize {
			w.lastClaim = time.Now()
		}
		if len(claimed) > 0 {
			for _, msg := range claimed {
				w.handle(ctx, msg)
			}
			return len(claimed), nil
		}
	}

	messages, err := w.streamRepo.ConsumeBatch(ctx, w.Stream(), w.ConsumerGroup(), w.consumerName, maxBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	for _, msg := range messages {
		w.handle(ctx, msg)
	}
	return len(messages), nil
}

// handle отправляет уведомление с повторами. Сообщение подтверждается после
// успешной отправки или после исчерпания попыток; битое сообщение подтверждается сразу.
// Если воркер остановлен посреди повторов, сообщение остаётся в pending
// и через pendingMinIdle его заберёт ClaimPending.
func (w *LeadNotificationWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.LeadCreatedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse lead event, skipping", zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}
	logger = logger.With(zap.Int64("lead_id", event.LeadID))

	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		err := w.notifier.NotifyLead(ctx, event)
		if err == nil {
			w.ack(ctx, msg.ID)
			return
		}

		logger.Warn("Lead notification failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", w.maxRetries),
			zap.Error(err))

		if attempt == w.maxRetries {
			break
		}
		if !w.Sleep(ctx, time.Duration(attempt)*w.retryDelay) {
			return
		}
	}

	logger.Error("Dropping lead notification after retries",
		zap.String("email", event.Email),
		zap.Int("attempts", w.maxRetries))
	w.ack(ctx, msg.ID)
}

func (w *LeadNotificationWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, w.Stream(), w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", messageID), zap.Error(err))
	}
}
