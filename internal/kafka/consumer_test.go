package kafka

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/wiki_search/internal/kafka/mocks"
	"github.com/Gunvolt24/wiki_search/internal/usecase"
	"github.com/Gunvolt24/wiki_search/pkg/ctxmeta"
	"github.com/Gunvolt24/wiki_search/pkg/validate"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

var testReaderConfig = kafka.ReaderConfig{Topic: "articles", GroupID: "g1", Brokers: []string{"b:9092"}}

// runAsync запускает Consumer.Run в горутине и возвращает канал с ошибкой.
func runAsync(ctx context.Context, c *Consumer) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()
	return errCh
}

func newTestConsumer(r reader, imp articleImporter) *Consumer {
	c := newConsumer(r, &ConsumerConfig{
		ProcessTimeout: 30 * time.Millisecond,
		RetryInitial:   5 * time.Millisecond,
		RetryMax:       10 * time.Millisecond,
	}, imp, nopLogger{})
	c.jitterRand = rand.New(rand.NewSource(1))
	return c
}

// expectBlockingFetch - следующий fetch ждёт отмены контекста.
func expectBlockingFetch(r *mocks.Mockreader) {
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		})
}

// stopAndWait отменяет контекст и ждёт выхода Run с context.Canceled.
func stopAndWait(t *testing.T, cancel context.CancelFunc, errCh <-chan error) {
	t.Helper()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for Run to stop")
	}
}

// Успешный импорт + коммит
func TestRun_OK_Commits(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	imp := mocks.NewMockarticleImporter(ctrl)

	msg := kafka.Message{Topic: "articles", Partition: 0, Offset: 1, Value: []byte(`{"title":"Cat"}`)}
	r.EXPECT().Config().Return(testReaderConfig).AnyTimes()
	r.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil)
	imp.EXPECT().ImportFromMessage(gomock.Any(), msg.Value).
		DoAndReturn(func(ctx context.Context, _ []byte) error {
			// контекст сообщения размечен источником и request_id
			if src, _ := ctxmeta.SourceFromContext(ctx); src != ctxmeta.SourceKafka {
				return fmt.Errorf("source=%q", src)
			}
			if rid, _ := ctxmeta.RequestIDFromContext(ctx); rid != "articles/0/1" {
				return fmt.Errorf("request_id=%q", rid)
			}
			return nil
		})
	r.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil)
	expectBlockingFetch(r)

	ctx, cancel := context.WithCancel(context.Background())
	stopAndWait(t, cancel, runAsync(ctx, newTestConsumer(r, imp)))
}

// Невалидные сообщения коммитятся, чтобы не ретраить мусор
func TestRun_PermanentErrors_Commit(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"malformed", fmt.Errorf("%w: invalid json", usecase.ErrMalformedMessage)},
		{"invalid_article", fmt.Errorf("validation failed: %w", validate.ErrInvalidArticle)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			r := mocks.NewMockreader(ctrl)
			imp := mocks.NewMockarticleImporter(ctrl)

			r.EXPECT().Config().Return(testReaderConfig).AnyTimes()
			r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 7, Value: []byte("bad")}, nil)
			imp.EXPECT().ImportFromMessage(gomock.Any(), []byte("bad")).Return(tt.err)
			r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)
			expectBlockingFetch(r)

			ctx, cancel := context.WithCancel(context.Background())
			stopAndWait(t, cancel, runAsync(ctx, newTestConsumer(r, imp)))
		})
	}
}

// Временная ошибка (БД/сеть/таймаут) => без коммита
func TestRun_TemporaryFailure_NoCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	imp := mocks.NewMockarticleImporter(ctrl)

	r.EXPECT().Config().Return(testReaderConfig).AnyTimes()
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 2, Value: []byte("x")}, nil)
	imp.EXPECT().ImportFromMessage(gomock.Any(), []byte("x")).Return(errors.New("db down"))
	// CommitMessages не ожидается: лишний вызов уронит тест
	expectBlockingFetch(r)

	ctx, cancel := context.WithCancel(context.Background())
	stopAndWait(t, cancel, runAsync(ctx, newTestConsumer(r, imp)))
}

// Ошибки FetchMessage ретраятся; по дедлайну контекста - выход
func TestRun_FetchError_RetryThenStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	imp := mocks.NewMockarticleImporter(ctrl)

	r.EXPECT().Config().Return(testReaderConfig).AnyTimes()
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, errors.New("broker error")).MinTimes(2)

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	if err := newTestConsumer(r, imp).Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want DeadlineExceeded, got %v", err)
	}
}

// Ошибка коммита только логируется, цикл продолжается
func TestRun_CommitWarnOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	imp := mocks.NewMockarticleImporter(ctrl)

	r.EXPECT().Config().Return(testReaderConfig).AnyTimes()
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 3, Value: []byte("ok")}, nil)
	imp.EXPECT().ImportFromMessage(gomock.Any(), []byte("ok")).Return(nil)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(errors.New("temporary"))
	expectBlockingFetch(r)

	ctx, cancel := context.WithCancel(context.Background())
	stopAndWait(t, cancel, runAsync(ctx, newTestConsumer(r, imp)))
}

// Close делегирует reader.Close ровно один раз
func TestClose_DelegatesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)

	r.EXPECT().Close().Return(nil).Times(1)

	c := newTestConsumer(r, mocks.NewMockarticleImporter(ctrl))
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil from Close, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close must be a no-op, got %v", err)
	}
}

func TestBackoffHelpers(t *testing.T) {
	c := newTestConsumer(nil, nil)

	if got := c.nextBackoff(4 * time.Millisecond); got != 8*time.Millisecond {
		t.Fatalf("nextBackoff(4ms) = %s", got)
	}
	if got := c.nextBackoff(8 * time.Millisecond); got != c.retryMax {
		t.Fatalf("nextBackoff must cap at retryMax, got %s", got)
	}

	for i := 0; i < 100; i++ {
		got := c.withJitterEqual(10 * time.Millisecond)
		if got < 5*time.Millisecond || got > 10*time.Millisecond {
			t.Fatalf("jitter out of [d/2, d]: %s", got)
		}
	}
	if c.withJitterEqual(0) != 0 {
		t.Fatalf("zero delay must stay zero")
	}
}

func TestNewConsumer_Defaults(t *testing.T) {
	c := newConsumer(nil, &ConsumerConfig{}, nil, nopLogger{})
	if c.processTimeout != 5*time.Second || c.retryInitial != time.Second || c.retryMax != 30*time.Second {
		t.Fatalf("unexpected defaults: %s %s %s", c.processTimeout, c.retryInitial, c.retryMax)
	}
}
