package schema

import (
	"fmt"
	"unicode"
)

// LinkRelations валидирует relationship-поля всех схем и проставляет
// значения по умолчанию. Ссылки на связанные схемы при этом НЕ
// материализуются: они разрешаются через реестр по имени типа в момент
// проекции, поэтому схемы могут ссылаться друг на друга в любом порядке
// определения. SetRef остаётся для вызывающего кода, который уже
// разрешил дескриптор сам.
func LinkRelations(reg *Registry) error {
	for _, typeName := range reg.Types() {
		res, _ := reg.ByType(typeName)
		for i := range res.Fields {
			f := &res.Fields[i]
			if f.Rel == nil {
				continue
			}

			if f.Rel.Type == "" {
				return fmt.Errorf("relationship '%s.%s' has no related type", typeName, f.Name)
			}
			// цель должна быть зарегистрирована
			if _, err := reg.ByType(f.Rel.Type); err != nil {
				return fmt.Errorf("invalid relationship: type '%s' not found in '%s.%s'",
					f.Rel.Type, typeName, f.Name)
			}

			// FK по умолчанию, если не задан
			if f.Rel.FK == "" {
				if f.Rel.Many {
					// FK находится в связанной таблице и указывает на текущий ресурс
					f.Rel.FK = toSnakeCase(typeName) + "_id"
				} else {
					// FK в текущей таблице, указывает на связанный ресурс
					f.Rel.FK = f.ModelField() + "_id"
				}
			}
		}

		// поле-идентификатор обязано существовать
		if res.Field(res.ID()) == nil {
			return fmt.Errorf("schema '%s' has no identifier field '%s'", typeName, res.ID())
		}
	}
	return nil
}

func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}
