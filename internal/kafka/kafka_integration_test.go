//go:build integration

package kafka_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/wiki_search/internal/cache/memory"
	"github.com/Gunvolt24/wiki_search/internal/domain"
	ikafka "github.com/Gunvolt24/wiki_search/internal/kafka"
	pgrepo "github.com/Gunvolt24/wiki_search/internal/repo/postgres"
	"github.com/Gunvolt24/wiki_search/internal/testutil"
	"github.com/Gunvolt24/wiki_search/internal/usecase"
	"github.com/Gunvolt24/wiki_search/internal/wiki"
	"github.com/Gunvolt24/wiki_search/pkg/logger"
	"github.com/Gunvolt24/wiki_search/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

type stack struct {
	ctx     context.Context
	repo    *pgrepo.ArticleRepository
	svc     *usecase.ArticleService
	log     *logger.ZapLogger
	brokers []string
}

// newStack - Postgres + Redpanda в контейнерах и сервис статей поверх них.
func newStack(t *testing.T) *stack {
	t.Helper()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	t.Cleanup(cancel)

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logg, cleanup, err := logger.NewZapLogger(false, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	repo := pgrepo.NewArticleRepository(pool)
	// поиск в этих тестах не вызывается, клиент никуда не ходит
	knowledge := wiki.NewClient(wiki.Options{BaseURL: "http://127.0.0.1:1/w/api.php", Timeout: time.Second})
	svc := usecase.NewArticleService(repo, knowledge, cachemem.NewOperationCache[domain.CacheEntry](), logg, validate.NewArticleValidator())

	return &stack{ctx: ctx, repo: repo, svc: svc, log: logg, brokers: kf.Brokers}
}

// startConsumer - уникальный топик и запущенный консьюмер.
func (s *stack) startConsumer(t *testing.T, startOffset string, beforeStart func(topic string)) string {
	t.Helper()

	topic, group := testutil.UniqueTopicAndGroup("articles-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(s.ctx, s.brokers[0], topic))
	if beforeStart != nil {
		beforeStart(topic)
	}

	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        s.brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    startOffset,
		ProcessTimeout: 5 * time.Second,
		RetryInitial:   200 * time.Millisecond,
		RetryMax:       2 * time.Second,
	}, s.svc, s.log)

	runCtx, cancelRun := context.WithCancel(s.ctx)
	t.Cleanup(func() {
		cancelRun()
		_ = consumer.Close()
	})
	go func() { _ = consumer.Run(runCtx) }()

	// даём консьюмеру присоединиться к группе
	time.Sleep(1500 * time.Millisecond)
	return topic
}

// waitTitle ждёт появления статьи с заголовком title в хранилище.
func (s *stack) waitTitle(t *testing.T, title string) *domain.Article {
	t.Helper()
	deadline := time.Now().Add(20 * time.Second)
	for {
		all, err := s.repo.FindAll(s.ctx)
		require.NoError(t, err)
		for _, a := range all {
			if a.Title == title {
				return a
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("article %q not saved in time", title)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// 1) Валидная статья импортируется
func TestKafka_Valid_Imported_TC(t *testing.T) {
	s := newStack(t)
	topic := s.startConsumer(t, "first", nil)

	a := testutil.MakeArticle()
	require.NoError(t, testutil.PublishArticles(s.ctx, s.brokers, topic, a))

	got := s.waitTitle(t, a.Title)
	require.Equal(t, a.Content, got.Content)
	require.NotZero(t, got.ID)
}

// 2) Мусор и невалидная статья пропускаются, следующая валидная импортируется
func TestKafka_SkipInvalid_ThenImportValid_TC(t *testing.T) {
	s := newStack(t)
	topic := s.startConsumer(t, "first", nil)

	require.NoError(t, testutil.PublishRaw(s.ctx, s.brokers, topic, []byte("not-a-json")))
	require.NoError(t, testutil.PublishArticles(s.ctx, s.brokers, topic, testutil.MakeArticle(testutil.WithTitle(""))))

	ok := testutil.MakeArticle()
	require.NoError(t, testutil.PublishArticles(s.ctx, s.brokers, topic, ok))
	s.waitTitle(t, ok.Title)

	all, err := s.repo.FindAll(s.ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "only the valid article must be stored")
}

// 3) StartOffset=last: опубликованное до старта не читается
func TestKafka_StartOffsetLast_IgnoresOld_TC(t *testing.T) {
	s := newStack(t)

	old := testutil.MakeArticle()
	topic := s.startConsumer(t, "last", func(topic string) {
		require.NoError(t, testutil.PublishArticles(s.ctx, s.brokers, topic, old))
	})

	// публикуем новое до появления, чтобы одно из сообщений попало после стартовой позиции
	fresh := testutil.MakeArticle()
	deadline := time.Now().Add(20 * time.Second)
	for {
		require.NoError(t, testutil.PublishArticles(s.ctx, s.brokers, topic, fresh))

		all, err := s.repo.FindAll(s.ctx)
		require.NoError(t, err)
		var sawFresh bool
		for _, a := range all {
			require.NotEqual(t, old.Title, a.Title)
			sawFresh = sawFresh || a.Title == fresh.Title
		}
		if sawFresh {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("article %q not saved in time", fresh.Title)
		}
		time.Sleep(300 * time.Millisecond)
	}
}
