package domain

import "strconv"

// EntryKind - вид значения, лежащего в кэше операций.
type EntryKind uint8

const (
	KindArticle EntryKind = iota + 1
	KindView
	KindViewList
	KindSentinel
)

// String - имя вида для логов.
func (k EntryKind) String() string {
	switch k {
	case KindArticle:
		return "article"
	case KindView:
		return "view"
	case KindViewList:
		return "view_list"
	case KindSentinel:
		return "sentinel"
	default:
		return "unknown"
	}
}

// CacheEntry - значение кэша операций: ровно один из вариантов
// {Article, ArticleView, []ArticleView, строковый маркер}.
type CacheEntry struct {
	kind     EntryKind
	article  *Article
	view     ArticleView
	views    []ArticleView
	sentinel string
}

func ArticleEntry(article *Article) CacheEntry {
	return CacheEntry{kind: KindArticle, article: article}
}

func ViewEntry(view ArticleView) CacheEntry {
	return CacheEntry{kind: KindView, view: view}
}

func ViewListEntry(views []ArticleView) CacheEntry {
	return CacheEntry{kind: KindViewList, views: views}
}

func SentinelEntry(value string) CacheEntry {
	return CacheEntry{kind: KindSentinel, sentinel: value}
}

func (e CacheEntry) Kind() EntryKind { return e.kind }

// Article - статья, если запись этого вида.
func (e CacheEntry) Article() (*Article, bool) {
	if e.kind != KindArticle {
		return nil, false
	}
	return e.article, true
}

func (e CacheEntry) View() (ArticleView, bool) {
	if e.kind != KindView {
		return ArticleView{}, false
	}
	return e.view, true
}

func (e CacheEntry) ViewList() ([]ArticleView, bool) {
	if e.kind != KindViewList {
		return nil, false
	}
	return e.views, true
}

func (e CacheEntry) Sentinel() (string, bool) {
	if e.kind != KindSentinel {
		return "", false
	}
	return e.sentinel, true
}

// Ключи кэша операций - единое место, чтобы схема не расползалась по коду.
const (
	KeyAllArticles = "all_articles"
	KeyBulkCreate  = "bulk_create"
)

func KeySearch(term string) string        { return term }
func KeyArticle(id int64) string          { return "article:" + strconv.FormatInt(id, 10) }
func KeyCreate(title string) string       { return "create:" + title }
func KeyUpdate(id int64) string           { return "update:" + strconv.FormatInt(id, 10) }
func KeyDelete(id int64) string           { return "delete:" + strconv.FormatInt(id, 10) }
func KeySearchAndSave(term string) string { return "searchAndSave:" + term }
