package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"
	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"
)

func TestBookmarkToggleAlternates(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "reader@example.com", "user")
	author := createTestUser(t, "author@example.com", "user")
	article := createTestArticle(t, author)
	r := newTestRouter(user)

	path := "/api/articles/" + article.Slug + "/bookmark"

	// false → true → false，每次 count 变化恰好 ±1
	expected := []struct {
		bookmarked bool
		count      float64
	}{
		{true, 1},
		{false, 0},
		{true, 1},
	}

	for i, exp := range expected {
		w := doJSON(r, "POST", path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d", i, w.Code)
		}
		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["bookmarked"] != exp.bookmarked {
			t.Errorf("call %d: expected bookmarked=%v, got %v", i, exp.bookmarked, resp["bookmarked"])
		}
		if resp["count"] != exp.count {
			t.Errorf("call %d: expected count=%v, got %v", i, exp.count, resp["count"])
		}
	}

	eng := getEngagement(t, article.ID, user.ID)
	if !eng.IsBookmarked || eng.BookmarksCount != 1 {
		t.Errorf("expected bookmarked with count 1, got %v/%d", eng.IsBookmarked, eng.BookmarksCount)
	}

	// 其他访客看得到计数，但没有个人标记
	other := createTestUser(t, "other@example.com", "user")
	eng = getEngagement(t, article.ID, other.ID)
	if eng.IsBookmarked {
		t.Errorf("other viewer should not be bookmarked")
	}
	if eng.BookmarksCount != 1 {
		t.Errorf("expected bookmarksCount=1 for other viewer, got %d", eng.BookmarksCount)
	}
}

func TestBookmarkRejectsUnauthenticated(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author@example.com", "user")
	article := createTestArticle(t, author)
	r := newTestRouter(nil)

	w := doJSON(r, "POST", "/api/articles/"+article.Slug+"/bookmark", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	var count int64
	db.DB.Model(&models.Bookmark{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no bookmark rows, got %d", count)
	}
}
