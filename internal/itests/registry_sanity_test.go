package itests

import (
	"testing"

	"YjsonAPI/internal/schema"
)

// Мини-проверки загруженных схем и слинкованных связей.
func Test_Registry_Sanity_OnLinkedRelations(t *testing.T) {
	// Registry уже загружен в TestMain — здесь лишь сверяем несколько связей
	article, err := schema.Default.ByType("article")
	if err != nil {
		t.Fatalf("article schema missing in registry: %v", err)
	}

	author := article.Field("author")
	if author == nil || !author.IsRelation() || author.Rel.Type != "person" {
		t.Fatalf("article.author must be a person relation, got: %#v", author)
	}
	if author.Rel.FK != "author_id" {
		t.Fatalf("article.author FK mismatch: %q", author.Rel.FK)
	}

	// publisher без явного fk — линкер должен подставить publisher_id
	pub := article.Field("publisher")
	if pub == nil || pub.Rel == nil || pub.Rel.FK != "publisher_id" {
		t.Fatalf("article.publisher must default FK to publisher_id, got: %#v", pub)
	}

	comments := article.Field("comments")
	if comments == nil || comments.Rel == nil || !comments.Rel.Many {
		t.Fatalf("article.comments must be to-many, got: %#v", comments)
	}
	if comments.Rel.FK != "article_id" {
		t.Fatalf("article.comments FK mismatch: %q", comments.Rel.FK)
	}
}
