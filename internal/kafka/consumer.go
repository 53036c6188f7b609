package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/wiki_search/internal/ports"
	"github.com/Gunvolt24/wiki_search/pkg/metrics"
)

// Проверка, что Consumer удовлетворяет порту приложения.
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader - минимальный контракт над kafka.Reader, подменяется моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// articleImporter - бизнес-логика импорта: парсинг, валидация, создание статьи.
type articleImporter interface {
	ImportFromMessage(ctx context.Context, raw []byte) error
}

// Consumer - импорт статей из топика через сервис.
type Consumer struct {
	reader         reader
	importer       articleImporter
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer - конструктор. ReaderConfig настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, importer articleImporter, log ports.Logger) *Consumer {
	return newConsumer(kafka.NewReader(cfg.ReaderConfig()), cfg, importer, log)
}

func newConsumer(r reader, cfg *ConsumerConfig, importer articleImporter, log ports.Logger) *Consumer {
	return &Consumer{
		reader:         r,
		importer:       importer,
		log:            log,
		processTimeout: orDefault(cfg.ProcessTimeout, 5*time.Second),
		retryInitial:   orDefault(cfg.RetryInitial, time.Second),
		retryMax:       orDefault(cfg.RetryMax, 30*time.Second),
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run - основной цикл:
// 1) читаем сообщение без авто-коммита;
// 2) успешный импорт -> CommitMessages;
// 3) невалидное сообщение -> лог и CommitMessages (пропускаем навсегда);
// 4) временная ошибка -> без коммита (повторная доставка, at-least-once).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	// экспоненциальный backoff на ошибках FetchMessage с equal-jitter
	retry := c.retryInitial

	for {
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		msgCtx := messageContext(ctx, &msg)
		if c.handleMessage(msgCtx, rc.Topic, &msg) {
			c.commitSafely(msgCtx, &msg)
			continue
		}
		// пауза после временной ошибки, чтобы не долбить внешние зависимости
		_ = c.sleepWithBackoff(ctx, c.withJitterEqual(min(c.retryInitial, 500*time.Millisecond)))
	}
}

// Close - закрывает reader. Повторные вызовы безопасны.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
