package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/utils"
)

func TestArticleVisibility(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author@example.com", "user")

	draft := models.Article{
		Slug: utils.RandString(10), UserID: author.ID,
		Title: "Draft", Status: models.ArticleStatusDraft,
	}
	db.DB.Create(&draft)

	past := time.Now().Add(-time.Hour)
	scheduled := models.Article{
		Slug: utils.RandString(10), UserID: author.ID,
		Title: "Due", Status: models.ArticleStatusScheduled, PublishAt: &past,
	}
	db.DB.Create(&scheduled)

	future := time.Now().Add(time.Hour)
	notYet := models.Article{
		Slug: utils.RandString(10), UserID: author.ID,
		Title: "Not yet", Status: models.ArticleStatusScheduled, PublishAt: &future,
	}
	db.DB.Create(&notYet)

	anon := newTestRouter(nil)

	// 草稿对外 404
	if w := doJSON(anon, "GET", "/api/articles/"+draft.Slug, nil); w.Code != http.StatusNotFound {
		t.Errorf("draft should 404 for anonymous, got %d", w.Code)
	}
	// 到点的定时稿可见
	if w := doJSON(anon, "GET", "/api/articles/"+scheduled.Slug, nil); w.Code != http.StatusOK {
		t.Errorf("due scheduled article should be visible, got %d", w.Code)
	}
	// 没到点的不可见
	if w := doJSON(anon, "GET", "/api/articles/"+notYet.Slug, nil); w.Code != http.StatusNotFound {
		t.Errorf("future scheduled article should 404, got %d", w.Code)
	}

	// 作者能看自己的草稿
	asAuthor := newTestRouter(author)
	if w := doJSON(asAuthor, "GET", "/api/articles/"+draft.Slug, nil); w.Code != http.StatusOK {
		t.Errorf("author should see own draft, got %d", w.Code)
	}
}
