package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"YjsonAPI/internal/jsonapi"
)

func TestResolveRelationship(t *testing.T) {
	reg := testRegistry(t)
	res, _ := reg.ByType("article")

	info, err := ResolveRelationship(res, "comments")
	if err != nil {
		t.Fatalf("ResolveRelationship: %v", err)
	}
	want := RelationshipInfo{Type: "comment", IDField: "id", Attr: "comments", Many: true}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveRelationshipRejectsAttributeAndUnknown(t *testing.T) {
	reg := testRegistry(t)
	res, _ := reg.ByType("article")

	for _, name := range []string{"title", "banana"} {
		_, err := ResolveRelationship(res, name)
		if !errors.Is(err, jsonapi.ErrRelationshipNotFound) {
			t.Fatalf("%s: expected ErrRelationshipNotFound, got %v", name, err)
		}
		if e := jsonapi.AsError(err); e.Status != 404 {
			t.Fatalf("%s: expected 404, got %d", name, e.Status)
		}
	}
}

func TestModelFieldMapping(t *testing.T) {
	res := &Resource{
		Type: "person", Table: "people",
		Fields: []Field{
			{Name: "id", Type: "int"},
			{Name: "displayName", Attr: "display_name", Type: "string"},
		},
	}
	res.buildIndex()

	got, err := ModelField(res, "displayName")
	if err != nil || got != "display_name" {
		t.Fatalf("ModelField: got %q, %v", got, err)
	}

	if _, err := ModelField(res, "missing"); err == nil {
		t.Fatal("expected error for unknown field")
	}

	back, err := SchemaField(res, "display_name")
	if err != nil || back != "displayName" {
		t.Fatalf("SchemaField: got %q, %v", back, err)
	}

	if _, err := SchemaField(res, "nope"); err == nil {
		t.Fatal("expected error for unknown model field")
	}
}

func TestRelationshipsList(t *testing.T) {
	reg := testRegistry(t)
	res, _ := reg.ByType("article")

	if diff := cmp.Diff([]string{"author", "comments"}, Relationships(res, false)); diff != "" {
		t.Fatalf("relationship names mismatch (-want +got):\n%s", diff)
	}
}
