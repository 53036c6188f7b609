package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/wiki_search/internal/domain"
	"github.com/Gunvolt24/wiki_search/internal/ports"
	"github.com/Gunvolt24/wiki_search/pkg/httpx"
	"github.com/Gunvolt24/wiki_search/pkg/validate"
)

// Handler - HTTP-обработчики поверх ArticleService.
type Handler struct {
	service   ports.ArticleService
	validator ports.ArticleValidator
	log       ports.Logger
	timeout   time.Duration // 0 - без таймаута
}

func NewHandler(service ports.ArticleService, validator ports.ArticleValidator, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, validator: validator, log: log, timeout: timeout}
}

// articleRequest - тело POST/PUT.
type articleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r articleRequest) toDomain() *domain.Article {
	return &domain.Article{Title: r.Title, Content: r.Content}
}

func (h *Handler) search(c *gin.Context) {
	term, err := httpx.RequiredQuery(c, "term")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	article, err := h.service.Search(ctx, term)
	if err != nil {
		h.fail(c, err, "Search failed term=%q", term)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *Handler) searchAndSave(c *gin.Context) {
	term, err := httpx.RequiredQuery(c, "term")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	view, err := h.service.SearchAndSave(ctx, term)
	if err != nil {
		h.fail(c, err, "SearchAndSave failed term=%q", term)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) listArticles(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	views, err := h.service.ListAll(ctx)
	if err != nil {
		h.fail(c, err, "ListAll failed")
		return
	}
	if views == nil {
		views = []domain.ArticleView{}
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) getArticle(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	view, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.fail(c, err, "GetByID failed id=%d", id)
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) createArticle(c *gin.Context) {
	article, ok := h.bindArticle(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	view, err := h.service.Create(ctx, article)
	if err != nil {
		h.fail(c, err, "Create failed title=%q", article.Title)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) updateArticle(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	article, ok := h.bindArticle(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	view, err := h.service.Update(ctx, id, article)
	if err != nil {
		h.fail(c, err, "Update failed id=%d", id)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) deleteArticle(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.fail(c, err, "Delete failed id=%d", id)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createArticlesBulk(c *gin.Context) {
	var reqs []articleRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json array"})
		return
	}

	articles := make([]*domain.Article, 0, len(reqs))
	for _, r := range reqs {
		articles = append(articles, r.toDomain())
	}
	if err := h.validator.ValidateAll(c.Request.Context(), articles); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	views, err := h.service.CreateBulk(ctx, articles)
	if err != nil {
		h.fail(c, err, "CreateBulk failed count=%d", len(articles))
		return
	}
	c.JSON(http.StatusCreated, views)
}

// ------вспомогательные функции------

// bindArticle - JSON-тело и доменная валидация; при ошибке ответ уже записан.
func (h *Handler) bindArticle(c *gin.Context) (*domain.Article, bool) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return nil, false
	}
	article := req.toDomain()
	if err := h.validator.Validate(c.Request.Context(), article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return article, true
}

// requestContext - контекст запроса с таймаутом обработчика.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// fail - ответ на ошибку сервиса: 504 по таймауту, 400 на невалидные данные, иначе 500.
func (h *Handler) fail(c *gin.Context, err error, format string, args ...any) {
	h.log.Errorf(c.Request.Context(), format+" err=%v", append(args, err)...)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timeout"})
	case errors.Is(err, validate.ErrInvalidArticle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
