package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TejasJagadale/backendofficial/internal/domain"
)

func Test_CreateAndListComments(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()
	id := env.seedArticle("commented").Hex()

	for i := 1; i <= 3; i++ {
		body := fmt.Sprintf(`{"articleId":%q,"articleCategory":"Technology","content":"comment %d","email":"c@e.com"}`, id, i)
		if w := env.do("POST", "/comments", body, nil); w.Code != http.StatusCreated {
			t.Fatalf("create %d: %d %s", i, w.Code, w.Body.String())
		}
	}

	w := env.do("GET", "/comments/"+id, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var got []domain.Comment
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len=%d", len(got))
	}
	// newest first
	if got[0].Content != "comment 3" || got[2].Content != "comment 1" {
		t.Fatalf("order: %q .. %q", got[0].Content, got[2].Content)
	}
	// author defaults to email when omitted
	if got[0].Author != "c@e.com" {
		t.Fatalf("author=%q", got[0].Author)
	}
}

func Test_CreateComment_Validation(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()
	id := env.seedArticle("validated").Hex()

	long := strings.Repeat("x", domain.MaxCommentLength+1)
	cases := []struct {
		name     string
		body     string
		mentions string
	}{
		{"missing articleId", `{"articleCategory":"Technology","content":"hi","email":"c@e.com"}`, "articleId"},
		{"bad category", fmt.Sprintf(`{"articleId":%q,"articleCategory":"Gossip","content":"hi","email":"c@e.com"}`, id), "articleCategory"},
		{"missing content", fmt.Sprintf(`{"articleId":%q,"articleCategory":"Technology","email":"c@e.com"}`, id), "content"},
		{"content too long", fmt.Sprintf(`{"articleId":%q,"articleCategory":"Technology","content":%q,"email":"c@e.com"}`, id, long), "content"},
		{"missing email", fmt.Sprintf(`{"articleId":%q,"articleCategory":"Technology","content":"hi"}`, id), "email"},
	}
	for _, tc := range cases {
		w := env.do("POST", "/comments", tc.body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: code=%d", tc.name, w.Code)
			continue
		}
		if !strings.Contains(w.Body.String(), tc.mentions) {
			t.Errorf("%s: error does not name %q: %s", tc.name, tc.mentions, w.Body.String())
		}
	}

	// whitespace-only content counts as missing
	ws := fmt.Sprintf(`{"articleId":%q,"articleCategory":"Technology","content":"   ","email":"c@e.com"}`, id)
	if w := env.do("POST", "/comments", ws, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("whitespace content: %d", w.Code)
	}
}

func Test_DeleteComment(t *testing.T) {
	env := newTestEnv(t)
	defer env.Close()
	id := env.seedArticle("deletable").Hex()

	body := fmt.Sprintf(`{"articleId":%q,"articleCategory":"Technology","content":"bye","email":"c@e.com"}`, id)
	w := env.do("POST", "/comments", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	var created domain.Comment
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	if w = env.do("DELETE", "/comments/"+created.ID.Hex(), "", nil); w.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	if w = env.do("DELETE", "/comments/"+created.ID.Hex(), "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: %d", w.Code)
	}
	if w = env.do("DELETE", "/comments/"+primitive.NewObjectID().Hex(), "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown id: %d", w.Code)
	}
}
