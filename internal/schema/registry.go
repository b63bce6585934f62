package schema

import (
	"fmt"
	"sort"

	"YjsonAPI/internal/jsonapi"
)

// Registry — процессный реестр схем, ключ — тип ресурса.
// Жизненный цикл: заполняется на старте (однопоточная фаза InitRegistry),
// после этого только читается, поэтому карта без блокировок безопасна
// для конкурентных запросов.
type Registry struct {
	byType map[string]*Resource
}

func NewRegistry() *Registry {
	return &Registry{byType: map[string]*Resource{}}
}

// Default — реестр процесса. Проекция получает реестр параметром,
// чтобы её можно было тестировать изолированно.
var Default = NewRegistry()

// InitRegistry загружает схемы из каталога в Default и связывает их.
func InitRegistry(dir string) error {
	if err := LoadSchemasFromDir(Default, dir); err != nil {
		return fmt.Errorf("load error: %w", err)
	}
	if err := LinkRelations(Default); err != nil {
		return fmt.Errorf("link error: %w", err)
	}
	return nil
}

// Register добавляет схему. Повторная регистрация типа — ошибка:
// реестр write-once, перерегистрация на живом процессе не поддерживается.
func (g *Registry) Register(res *Resource) error {
	if res.Type == "" {
		return fmt.Errorf("schema without resource type")
	}
	if _, ok := g.byType[res.Type]; ok {
		return fmt.Errorf("duplicate schema type: %s", res.Type)
	}
	res.buildIndex()
	g.byType[res.Type] = res
	return nil
}

// ByType возвращает схему по типу ресурса.
func (g *Registry) ByType(typeName string) (*Resource, error) {
	res, ok := g.byType[typeName]
	if !ok {
		return nil, jsonapi.SchemaNotFound(typeName)
	}
	return res, nil
}

// Types возвращает зарегистрированные типы в стабильном порядке.
func (g *Registry) Types() []string {
	types := make([]string, 0, len(g.byType))
	for t := range g.byType {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
