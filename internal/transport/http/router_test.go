package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/wiki_search/internal/domain"
	"github.com/Gunvolt24/wiki_search/internal/ports/mocks"
	rest "github.com/Gunvolt24/wiki_search/internal/transport/http"
	"github.com/Gunvolt24/wiki_search/pkg/validate"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func newRouter(t *testing.T, timeout time.Duration) (*gin.Engine, *mocks.MockArticleService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := mocks.NewMockArticleService(gomock.NewController(t))
	h := rest.NewHandler(svc, validate.NewArticleValidator(), noopLogger{}, timeout)
	return rest.NewRouter(h, ""), svc
}

func do(r http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	if body == nil {
		body = http.NoBody
	}
	req := httptest.NewRequest(method, target, body)
	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearch_OK(t *testing.T) {
	r, svc := newRouter(t, 0)

	svc.EXPECT().Search(gomock.Any(), "Albert Einstein").
		Return(&domain.Article{ID: 1, Title: "Albert Einstein", Content: "physicist"}, nil)

	w := do(r, http.MethodGet, "/api/search?term=Albert+Einstein", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got domain.Article
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != 1 || got.Content != "physicist" {
		t.Fatalf("unexpected article: %+v", got)
	}
}

func TestSearch_EmptyTerm_400(t *testing.T) {
	r, _ := newRouter(t, 0)

	for _, target := range []string{"/api/search", "/api/search?term=", "/api/search?term=%20"} {
		if w := do(r, http.MethodGet, target, nil); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: want 400, got %d", target, w.Code)
		}
	}
}

func TestSearchAndSave_OK(t *testing.T) {
	r, svc := newRouter(t, 0)

	svc.EXPECT().SearchAndSave(gomock.Any(), "Owl").Return(domain.ArticleView{ID: 3, Title: "Owl"}, nil)

	w := do(r, http.MethodPost, "/api/search/save?term=Owl", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":3`) {
		t.Fatalf("want 200 with view, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestListArticles(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		r, svc := newRouter(t, 0)
		svc.EXPECT().ListAll(gomock.Any()).Return([]domain.ArticleView{{ID: 1}, {ID: 2}}, nil)

		w := do(r, http.MethodGet, "/api/articles", nil)
		var got []domain.ArticleView
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || w.Code != http.StatusOK {
			t.Fatalf("code=%d err=%v", w.Code, err)
		}
		if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("nil renders empty array", func(t *testing.T) {
		r, svc := newRouter(t, 0)
		svc.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

		if w := do(r, http.MethodGet, "/api/articles", nil); w.Body.String() != "[]" {
			t.Fatalf("want [], got %s", w.Body.String())
		}
	})

	t.Run("service error", func(t *testing.T) {
		r, svc := newRouter(t, 0)
		svc.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db error"))

		if w := do(r, http.MethodGet, "/api/articles", nil); w.Code != http.StatusInternalServerError {
			t.Fatalf("want 500, got %d", w.Code)
		}
	})
}

func TestGetArticle(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r, svc := newRouter(t, 0)
		svc.EXPECT().GetByID(gomock.Any(), int64(5)).Return(&domain.ArticleView{ID: 5, Title: "t"}, nil)

		if w := do(r, http.MethodGet, "/api/articles/5", nil); w.Code != http.StatusOK {
			t.Fatalf("want 200, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := newRouter(t, 0)
		svc.EXPECT().GetByID(gomock.Any(), int64(6)).Return(nil, nil)

		if w := do(r, http.MethodGet, "/api/articles/6", nil); w.Code != http.StatusNotFound {
			t.Fatalf("want 404, got %d", w.Code)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		r, _ := newRouter(t, 0)
		for _, id := range []string{"abc", "0", "-1"} {
			if w := do(r, http.MethodGet, "/api/articles/"+id, nil); w.Code != http.StatusBadRequest {
				t.Fatalf("id=%s: want 400, got %d", id, w.Code)
			}
		}
	})
}

func TestCreateArticle(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r, svc := newRouter(t, 0)
		svc.EXPECT().Create(gomock.Any(), &domain.Article{Title: "Dog", Content: "woof"}).
			Return(domain.ArticleView{ID: 7, Title: "Dog", Content: "woof"}, nil)

		w := do(r, http.MethodPost, "/api/articles", strings.NewReader(`{"title":"Dog","content":"woof"}`))
		if w.Code != http.StatusCreated {
			t.Fatalf("want 201, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		r, _ := newRouter(t, 0)
		if w := do(r, http.MethodPost, "/api/articles", strings.NewReader(`{`)); w.Code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d", w.Code)
		}
	})

	t.Run("validation failed", func(t *testing.T) {
		r, _ := newRouter(t, 0)
		w := do(r, http.MethodPost, "/api/articles", strings.NewReader(`{"title":"  ","content":"x"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d", w.Code)
		}
	})

	t.Run("store error", func(t *testing.T) {
		r, svc := newRouter(t, 0)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ArticleView{}, errors.New("db down"))

		w := do(r, http.MethodPost, "/api/articles", strings.NewReader(`{"title":"Dog"}`))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("want 500, got %d", w.Code)
		}
	})
}

func TestUpdateArticle(t *testing.T) {
	r, svc := newRouter(t, 0)
	svc.EXPECT().Update(gomock.Any(), int64(9), &domain.Article{Title: "New", Content: "c"}).
		Return(domain.ArticleView{ID: 9, Title: "New", Content: "c"}, nil)

	w := do(r, http.MethodPut, "/api/articles/9", strings.NewReader(`{"title":"New","content":"c"}`))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":9`) {
		t.Fatalf("want 200, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteArticle(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		r, svc := newRouter(t, 0)
		svc.EXPECT().Delete(gomock.Any(), int64(4)).Return(nil)

		if w := do(r, http.MethodDelete, "/api/articles/4", nil); w.Code != http.StatusNoContent {
			t.Fatalf("want 204, got %d", w.Code)
		}
	})

	t.Run("store error", func(t *testing.T) {
		r, svc := newRouter(t, 0)
		svc.EXPECT().Delete(gomock.Any(), int64(4)).Return(errors.New("db down"))

		if w := do(r, http.MethodDelete, "/api/articles/4", nil); w.Code != http.StatusInternalServerError {
			t.Fatalf("want 500, got %d", w.Code)
		}
	})
}

func TestCreateArticlesBulk(t *testing.T) {
	t.Run("created in order", func(t *testing.T) {
		r, svc := newRouter(t, 0)
		svc.EXPECT().CreateBulk(gomock.Any(), []*domain.Article{{Title: "a"}, {Title: "b"}}).
			Return([]domain.ArticleView{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}, nil)

		w := do(r, http.MethodPost, "/api/articles/bulk", strings.NewReader(`[{"title":"a"},{"title":"b"}]`))
		if w.Code != http.StatusCreated {
			t.Fatalf("want 201, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid element", func(t *testing.T) {
		r, _ := newRouter(t, 0)
		w := do(r, http.MethodPost, "/api/articles/bulk", strings.NewReader(`[{"title":"a"},{"title":""}]`))
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "articles[1]") {
			t.Fatalf("want 400 naming the element, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("empty array", func(t *testing.T) {
		r, _ := newRouter(t, 0)
		if w := do(r, http.MethodPost, "/api/articles/bulk", strings.NewReader(`[]`)); w.Code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d", w.Code)
		}
	})

	t.Run("not an array", func(t *testing.T) {
		r, _ := newRouter(t, 0)
		if w := do(r, http.MethodPost, "/api/articles/bulk", strings.NewReader(`{"title":"a"}`)); w.Code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d", w.Code)
		}
	})
}

func TestHandlerTimeout_504(t *testing.T) {
	r, svc := newRouter(t, 10*time.Millisecond)

	svc.EXPECT().Search(gomock.Any(), "slow").
		DoAndReturn(func(ctx context.Context, _ string) (*domain.Article, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	if w := do(r, http.MethodGet, "/api/search?term=slow", nil); w.Code != http.StatusGatewayTimeout {
		t.Fatalf("want 504, got %d", w.Code)
	}
}

func TestNoRoute_404(t *testing.T) {
	r, _ := newRouter(t, 0)

	w := do(r, http.MethodGet, "/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestMethodNotAllowed_405(t *testing.T) {
	r, _ := newRouter(t, 0)

	w := do(r, http.MethodPatch, "/api/articles/1", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d, body=%s", w.Code, w.Body.String())
	}
	if allow := w.Header().Get("Allow"); allow != "DELETE, GET, PUT" {
		t.Fatalf("want Allow: DELETE, GET, PUT, got %q", allow)
	}
}

func TestPingAndMetrics_200(t *testing.T) {
	r, _ := newRouter(t, 0)

	if w := do(r, http.MethodGet, "/ping", nil); w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("ping: got %d %q", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/metrics", nil); w.Code != http.StatusOK {
		t.Fatalf("metrics: got %d", w.Code)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	r, svc := newRouter(t, 0)
	svc.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/articles", http.NoBody)
	req.Header.Set("X-Request-ID", "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "rid-1" {
		t.Fatalf("X-Request-ID=%q", got)
	}
}
