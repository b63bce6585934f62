package schema

import (
	"fmt"

	"YjsonAPI/internal/jsonapi"
)

// ResolveRelationship возвращает метаданные relationship-поля схемы:
// тип связанного ресурса, его поле-идентификатор, имя поля в хранилище
// и кардинальность. Поле обязано существовать и быть relationship.
func ResolveRelationship(res *Resource, name string) (RelationshipInfo, error) {
	f := res.Field(name)
	if f == nil || !f.IsRelation() {
		return RelationshipInfo{}, jsonapi.RelationshipNotFound(res.Type, name)
	}
	return RelationshipInfo{
		Type:    f.Rel.Type,
		IDField: f.Rel.RelatedID(),
		Attr:    f.ModelField(),
		Many:    f.Rel.Many,
	}, nil
}

// ModelField возвращает имя поля схемы в хранилище.
func ModelField(res *Resource, name string) (string, error) {
	f := res.Field(name)
	if f == nil {
		return "", fmt.Errorf("%s has no attribute %s", res.Type, name)
	}
	return f.ModelField(), nil
}

// SchemaField — обратное отображение: имя поля хранилища → имя поля схемы.
func SchemaField(res *Resource, modelField string) (string, error) {
	for i := range res.Fields {
		if res.Fields[i].ModelField() == modelField {
			return res.Fields[i].Name, nil
		}
	}
	return "", fmt.Errorf("couldn't find schema field from %s", modelField)
}

// Relationships перечисляет relationship-поля схемы в объявленном порядке.
// При modelField=true возвращаются имена полей хранилища.
func Relationships(res *Resource, modelField bool) []string {
	var names []string
	for i := range res.Fields {
		if !res.Fields[i].IsRelation() {
			continue
		}
		if modelField {
			names = append(names, res.Fields[i].ModelField())
		} else {
			names = append(names, res.Fields[i].Name)
		}
	}
	return names
}
