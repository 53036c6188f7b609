package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Gunvolt24/wiki_search/internal/domain"
	"github.com/Gunvolt24/wiki_search/internal/ports"
)

// Проверка, что ArticleService удовлетворяет порту транспортного слоя.
var _ ports.ArticleService = (*ArticleService)(nil)

// ErrMalformedMessage - сообщение не разбирается как статья; повторная обработка не поможет.
var ErrMalformedMessage = errors.New("malformed article message")

// ArticleService - прикладная логика работы со статьями (без знаний о транспорте).
// Каждая операция сначала смотрит в кэш операций по своему ключу.
// Мутации очищают весь кэш и кладут туда собственный результат.
type ArticleService struct {
	repo      ports.ArticleRepository // постоянное хранилище
	knowledge ports.KnowledgeClient   // внешняя база знаний
	cache     ports.OperationCache    // общий кэш результатов операций
	log       ports.Logger
	validator ports.ArticleValidator // валидатор входящих сообщений
}

// NewArticleService - DI-конструктор.
func NewArticleService(
	repo ports.ArticleRepository,
	knowledge ports.KnowledgeClient,
	cache ports.OperationCache,
	log ports.Logger,
	validator ports.ArticleValidator,
) *ArticleService {
	return &ArticleService{
		repo:      repo,
		knowledge: knowledge,
		cache:     cache,
		log:       log,
		validator: validator,
	}
}

// Search - поиск термина в базе знаний с сохранением результата.
// Неудачный поиск (нет описания или ошибка сети) тоже сохраняется, с content = NoResultsContent.
func (s *ArticleService) Search(ctx context.Context, term string) (*domain.Article, error) {
	key := domain.KeySearch(term)
	if entry, found := s.cache.Get(ctx, key); found {
		if article, ok := entry.Article(); ok {
			s.log.Infof(ctx, "cache hit key=%q", key)
			return article, nil
		}
		s.log.Warnf(ctx, "cache key=%q holds %s, recomputing", key, entry.Kind())
	}

	saved, err := s.repo.Save(ctx, &domain.Article{Title: term, Content: s.lookupContent(ctx, term)})
	if err != nil {
		s.log.Errorf(ctx, "repo.Save failed term=%q err=%v", term, err)
		return nil, fmt.Errorf("save article: %w", err)
	}

	s.cache.Put(ctx, key, domain.ArticleEntry(saved))
	return saved, nil
}

// SearchAndSave - тот же поиск, но как мутация: очищает кэш и мемоизирует проекцию.
func (s *ArticleService) SearchAndSave(ctx context.Context, term string) (domain.ArticleView, error) {
	key := domain.KeySearchAndSave(term)
	if view, ok := s.cachedView(ctx, key); ok {
		return view, nil
	}

	saved, err := s.repo.Save(ctx, &domain.Article{Title: term, Content: s.lookupContent(ctx, term)})
	if err != nil {
		s.log.Errorf(ctx, "repo.Save failed term=%q err=%v", term, err)
		return domain.ArticleView{}, fmt.Errorf("save article: %w", err)
	}

	return s.memoizeMutation(ctx, key, domain.NewArticleView(saved)), nil
}

// ListAll - все статьи хранилища.
func (s *ArticleService) ListAll(ctx context.Context) ([]domain.ArticleView, error) {
	if entry, found := s.cache.Get(ctx, domain.KeyAllArticles); found {
		if views, ok := entry.ViewList(); ok {
			s.log.Infof(ctx, "cache hit key=%q", domain.KeyAllArticles)
			return views, nil
		}
	}

	start := time.Now()
	articles, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Errorf(ctx, "repo.FindAll failed err=%v", err)
		return nil, err
	}

	views := domain.NewArticleViews(articles)
	s.cache.Put(ctx, domain.KeyAllArticles, domain.ViewListEntry(views))
	s.log.Infof(ctx, "db fetch all articles count=%d took=%s", len(views), time.Since(start))
	return views, nil
}

// GetByID - статья по ID: сначала кэш, при промахе хранилище.
// Возвращает (nil, nil), если статьи нет; в этом случае кэш не трогается.
func (s *ArticleService) GetByID(ctx context.Context, id int64) (*domain.ArticleView, error) {
	key := domain.KeyArticle(id)
	if view, ok := s.cachedView(ctx, key); ok {
		return &view, nil
	}

	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.FindByID failed id=%d err=%v", id, err)
		return nil, err
	}
	if article == nil {
		return nil, nil
	}

	view := domain.NewArticleView(article)
	s.cache.Put(ctx, key, domain.ViewEntry(view))
	return &view, nil
}

// Create - сохранение новой статьи. Повтор с тем же title без промежуточных мутаций
// возвращает мемоизированный результат без записи в хранилище.
func (s *ArticleService) Create(ctx context.Context, article *domain.Article) (domain.ArticleView, error) {
	key := domain.KeyCreate(article.Title)
	if view, ok := s.cachedView(ctx, key); ok {
		return view, nil
	}

	saved, err := s.repo.Save(ctx, article)
	if err != nil {
		s.log.Errorf(ctx, "repo.Save failed title=%q err=%v", article.Title, err)
		return domain.ArticleView{}, fmt.Errorf("save article: %w", err)
	}

	s.log.Infof(ctx, "article created id=%d", saved.ID)
	return s.memoizeMutation(ctx, key, domain.NewArticleView(saved)), nil
}

// Update - upsert статьи с заданным ID.
func (s *ArticleService) Update(ctx context.Context, id int64, article *domain.Article) (domain.ArticleView, error) {
	key := domain.KeyUpdate(id)
	if view, ok := s.cachedView(ctx, key); ok {
		return view, nil
	}

	article.ID = id
	saved, err := s.repo.Save(ctx, article)
	if err != nil {
		s.log.Errorf(ctx, "repo.Save failed id=%d err=%v", id, err)
		return domain.ArticleView{}, fmt.Errorf("save article: %w", err)
	}

	s.log.Infof(ctx, "article updated id=%d", saved.ID)
	return s.memoizeMutation(ctx, key, domain.NewArticleView(saved)), nil
}

// Delete - удаление статьи. Старое значение по ключу читается и отбрасывается,
// после удаления кэш очищается и по ключу кладётся маркер DeletedSentinel.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	key := domain.KeyDelete(id)
	_, _ = s.cache.Get(ctx, key)

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.log.Errorf(ctx, "repo.DeleteByID failed id=%d err=%v", id, err)
		return fmt.Errorf("delete article: %w", err)
	}

	s.cache.Clear(ctx)
	s.cache.Put(ctx, key, domain.SentinelEntry(domain.DeletedSentinel))
	s.log.Infof(ctx, "article deleted id=%d", id)
	return nil
}

// CreateBulk - сохранение статей в порядке входа. Ошибка любой записи
// прерывает операцию целиком: кэш не очищается и не пополняется.
func (s *ArticleService) CreateBulk(ctx context.Context, articles []*domain.Article) ([]domain.ArticleView, error) {
	if entry, found := s.cache.Get(ctx, domain.KeyBulkCreate); found {
		if views, ok := entry.ViewList(); ok {
			s.log.Infof(ctx, "cache hit key=%q", domain.KeyBulkCreate)
			return views, nil
		}
	}

	saved := make([]*domain.Article, 0, len(articles))
	for i, article := range articles {
		res, err := s.repo.Save(ctx, article)
		if err != nil {
			s.log.Errorf(ctx, "repo.Save failed bulk index=%d err=%v", i, err)
			return nil, fmt.Errorf("save article %d: %w", i, err)
		}
		saved = append(saved, res)
	}

	views := domain.NewArticleViews(saved)
	s.cache.Clear(ctx)
	s.cache.Put(ctx, domain.KeyBulkCreate, domain.ViewListEntry(views))
	s.log.Infof(ctx, "bulk created count=%d", len(views))
	return views, nil
}

// articleMessage - тело сообщения об импорте; id назначает хранилище,
// поэтому поле "id" в сообщении - неизвестное поле.
type articleMessage struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ImportFromMessage - создать статью из сообщения Kafka (raw JSON).
// Шаги: строгий парсинг JSON, доменная валидация, Create.
func (s *ArticleService) ImportFromMessage(ctx context.Context, raw []byte) error {
	var msg articleMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		s.log.Warnf(ctx, "invalid json err=%v", err)
		return fmt.Errorf("%w: invalid json: %v", ErrMalformedMessage, err)
	}
	// после объекта не должно быть лишних данных
	if err := dec.Decode(new(struct{})); err != io.EOF {
		s.log.Warnf(ctx, "invalid json: trailing data")
		return fmt.Errorf("%w: invalid json: trailing data", ErrMalformedMessage)
	}

	article := domain.Article{Title: msg.Title, Content: msg.Content}

	if err := s.validator.Validate(ctx, &article); err != nil {
		s.log.Warnf(ctx, "validation failed title=%q err=%v", article.Title, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	view, err := s.Create(ctx, &article)
	if err != nil {
		return err
	}
	s.log.Infof(ctx, "article imported id=%d title=%q", view.ID, view.Title)
	return nil
}

// ------вспомогательные функции------

// lookupContent - описание из базы знаний или NoResultsContent.
// Ошибка сети не отличается от отсутствия описания.
func (s *ArticleService) lookupContent(ctx context.Context, term string) string {
	start := time.Now()
	extract, found, err := s.knowledge.Lookup(ctx, term)
	switch {
	case err != nil:
		s.log.Warnf(ctx, "knowledge lookup failed term=%q err=%v", term, err)
		return domain.NoResultsContent
	case !found:
		s.log.Infof(ctx, "knowledge lookup term=%q: no results", term)
		return domain.NoResultsContent
	default:
		s.log.Infof(ctx, "knowledge lookup term=%q took=%s", term, time.Since(start))
		return extract
	}
}

// cachedView - проекция из кэша, если по ключу лежит именно она.
func (s *ArticleService) cachedView(ctx context.Context, key string) (domain.ArticleView, bool) {
	entry, found := s.cache.Get(ctx, key)
	if !found {
		return domain.ArticleView{}, false
	}
	view, ok := entry.View()
	if !ok {
		s.log.Warnf(ctx, "cache key=%q holds %s, recomputing", key, entry.Kind())
		return domain.ArticleView{}, false
	}
	s.log.Infof(ctx, "cache hit key=%q", key)
	return view, true
}

// memoizeMutation - полная очистка кэша и запись результата мутации под её ключом.
func (s *ArticleService) memoizeMutation(ctx context.Context, key string, view domain.ArticleView) domain.ArticleView {
	s.cache.Clear(ctx)
	s.cache.Put(ctx, key, domain.ViewEntry(view))
	return view
}
