package document

// Сборка JSON:API документов из проекции схемы и строк слоя данных.
// Строка — map[имя колонки хранилища]значение; связанные строки слой данных
// прикладывает под model-field именем relationship-поля.

import (
	"fmt"

	"YjsonAPI/internal/schema"
)

// MarshalCollection собирает документ коллекции: data, included, meta, links.
func MarshalCollection(proj *schema.Projection, items []map[string]any, meta map[string]any, links map[string]string) map[string]any {
	inc := newIncludedSet()
	data := make([]any, 0, len(items))
	for _, row := range items {
		data = append(data, resourceObject(proj, row, inc))
	}

	doc := map[string]any{
		"data":    data,
		"jsonapi": map[string]any{"version": "1.0"},
	}
	if objs := inc.objects(); len(objs) > 0 {
		doc["included"] = objs
	}
	if len(meta) > 0 {
		doc["meta"] = meta
	}
	if len(links) > 0 {
		doc["links"] = links
	}
	return doc
}

// MarshalOne собирает документ единичного ресурса.
func MarshalOne(proj *schema.Projection, row map[string]any, links map[string]string) map[string]any {
	inc := newIncludedSet()
	doc := map[string]any{
		"data":    resourceObject(proj, row, inc),
		"jsonapi": map[string]any{"version": "1.0"},
	}
	if objs := inc.objects(); len(objs) > 0 {
		doc["included"] = objs
	}
	if len(links) > 0 {
		doc["links"] = links
	}
	return doc
}

// MarshalRelationship собирает linkage-документ одной связи ресурса:
// data содержит только resource identifier(ы), included — связанные
// ресурсы, если связь развёрнута через include.
func MarshalRelationship(proj *schema.Projection, row map[string]any, relName string, links map[string]string) map[string]any {
	inc := newIncludedSet()
	f := proj.Resource.Field(relName)
	relObj := relationshipObject(proj, f, row, inc)

	doc := map[string]any{
		"data":    relObj["data"],
		"jsonapi": map[string]any{"version": "1.0"},
	}
	if objs := inc.objects(); len(objs) > 0 {
		doc["included"] = objs
	}
	if len(links) > 0 {
		doc["links"] = links
	}
	return doc
}

// resourceObject строит resource object и, для развёрнутых relationship,
// складывает связанные ресурсы в included.
func resourceObject(proj *schema.Projection, row map[string]any, inc *includedSet) map[string]any {
	res := proj.Resource
	idAttr := res.Field(res.ID()).ModelField()

	obj := map[string]any{
		"type": res.Type,
		"id":   formatID(row[idAttr]),
	}

	attrs := map[string]any{}
	rels := map[string]any{}

	for _, name := range proj.Fields {
		f := res.Field(name)
		if f == nil || name == res.ID() {
			continue
		}
		if !f.IsRelation() {
			attrs[name] = row[f.ModelField()]
			continue
		}
		rels[name] = relationshipObject(proj, f, row, inc)
	}

	if len(attrs) > 0 {
		obj["attributes"] = attrs
	}
	if len(rels) > 0 {
		obj["relationships"] = rels
	}
	return obj
}

func relationshipObject(proj *schema.Projection, f *schema.Field, row map[string]any, inc *includedSet) map[string]any {
	sub := proj.Included[f.Name]

	if f.Rel.Many {
		linkage := make([]any, 0)
		if attached, ok := row[f.ModelField()].([]map[string]any); ok {
			for _, child := range attached {
				linkage = append(linkage, linkageFor(f, sub, child, inc))
			}
		}
		return map[string]any{"data": linkage}
	}

	// to-one: либо приложенная строка, либо голый FK из родительской строки
	if attached, ok := row[f.ModelField()].(map[string]any); ok {
		return map[string]any{"data": linkageFor(f, sub, attached, inc)}
	}
	fk := row[f.Rel.FK]
	if fk == nil {
		return map[string]any{"data": nil}
	}
	return map[string]any{"data": map[string]any{
		"type": f.Rel.Type,
		"id":   formatID(fk),
	}}
}

// linkageFor возвращает resource identifier связанной строки и, если
// relationship развёрнут, добавляет полный ресурс в included.
func linkageFor(f *schema.Field, sub *schema.Projection, child map[string]any, inc *includedSet) map[string]any {
	if sub != nil {
		obj := resourceObject(sub, child, inc)
		inc.add(obj)
		return map[string]any{"type": obj["type"], "id": obj["id"]}
	}
	// linkage only: relationship видим, но не развёрнут
	idAttr := f.Rel.RelatedID()
	return map[string]any{
		"type": f.Rel.Type,
		"id":   formatID(child[idAttr]),
	}
}

func formatID(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// includedSet дедуплицирует included-ресурсы по (type, id),
// сохраняя порядок первого появления.
type includedSet struct {
	seen  map[string]bool
	items []any
}

func newIncludedSet() *includedSet {
	return &includedSet{seen: map[string]bool{}}
}

func (s *includedSet) add(obj map[string]any) {
	key := fmt.Sprintf("%v/%v", obj["type"], obj["id"])
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.items = append(s.items, obj)
}

func (s *includedSet) objects() []any {
	return s.items
}
