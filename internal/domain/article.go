package domain

const (
	// NoResultsContent - содержимое статьи, если поиск в базе знаний ничего не дал.
	NoResultsContent = "No results found"
	// DeletedSentinel - значение, которое кладётся в кэш после удаления статьи.
	DeletedSentinel = "deleted"
)

// Article - статья в хранилище. ID == 0 означает, что статья ещё не сохранена.
type Article struct {
	ID      int64  `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ArticleView - read-only проекция статьи для внешних слоёв.
type ArticleView struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewArticleView - строит свежую проекцию статьи.
func NewArticleView(article *Article) ArticleView {
	return ArticleView{ID: article.ID, Title: article.Title, Content: article.Content}
}

// NewArticleViews - проекция списка статей с сохранением порядка.
func NewArticleViews(articles []*Article) []ArticleView {
	views := make([]ArticleView, 0, len(articles))
	for _, article := range articles {
		if article == nil {
			continue
		}
		views = append(views, NewArticleView(article))
	}
	return views
}
