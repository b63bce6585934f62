package itests

import (
	"fmt"
	"net/http"
	"testing"
)

// GET /api/article/1?include=author,comments.author — compound document
func Test_Detail_Article_WithNestedInclude(t *testing.T) {
	status, doc := getDoc(t, "/api/article/1?include=author,comments.author")
	if status != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d; doc=%#v", status, doc)
	}

	data, _ := doc["data"].(map[string]any)
	if data == nil {
		t.Fatalf("'data' must be object: %#v", doc)
	}
	if data["type"] != "article" || fmt.Sprintf("%v", data["id"]) != "1" {
		t.Fatalf("wrong resource identity: %#v", data)
	}

	attrs, _ := data["attributes"].(map[string]any)
	if attrs["title"] != "First article" {
		t.Fatalf("title mismatch: %#v", attrs)
	}

	rels, _ := data["relationships"].(map[string]any)
	if rels == nil {
		t.Fatalf("relationships missing: %#v", data)
	}

	author, _ := rels["author"].(map[string]any)
	linkage, _ := author["data"].(map[string]any)
	if linkage == nil || linkage["type"] != "person" || linkage["id"] != "1" {
		t.Fatalf("author linkage mismatch: %#v", author)
	}

	comments, _ := rels["comments"].(map[string]any)
	list, _ := comments["data"].([]any)
	if len(list) != 2 {
		t.Fatalf("expected 2 comment identifiers, got %#v", comments)
	}

	// included: author + 2 комментария + их авторы, без дублей
	included, _ := doc["included"].([]any)
	seen := map[string]bool{}
	for _, v := range included {
		obj := v.(map[string]any)
		seen[fmt.Sprintf("%v/%v", obj["type"], obj["id"])] = true
	}
	for _, key := range []string{"person/1", "comment/1", "comment/2", "person/2", "person/3"} {
		if !seen[key] {
			t.Fatalf("included missing %s; got %v", key, seen)
		}
	}
	if len(included) != 5 {
		t.Fatalf("included must be deduplicated: got %d resources", len(included))
	}
}

// to-one со значением NULL отдаёт data: null
func Test_Detail_Article_NullToOne(t *testing.T) {
	status, doc := getDoc(t, "/api/article/2")
	if status != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d; doc=%#v", status, doc)
	}
	data := doc["data"].(map[string]any)
	rels := data["relationships"].(map[string]any)
	pub, _ := rels["publisher"].(map[string]any)
	if pub == nil {
		t.Fatalf("publisher relationship missing: %#v", rels)
	}
	if pub["data"] != nil {
		t.Fatalf("expected null linkage for empty publisher: %#v", pub)
	}
}

func Test_Detail_NotFound(t *testing.T) {
	status, doc := getDoc(t, "/api/article/9999")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d; doc=%#v", status, doc)
	}
	if _, ok := doc["errors"]; !ok {
		t.Fatalf("expected errors document: %#v", doc)
	}
}
