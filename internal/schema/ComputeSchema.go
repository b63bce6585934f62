package schema

import (
	"fmt"
	"strings"

	"YjsonAPI/internal/jsonapi"
	"YjsonAPI/internal/querystring"
)

// Options — внешние умолчания проекции.
type Options struct {
	// Only ограничивает множество сериализуемых полей независимо от
	// sparse fieldsets клиента; nil — без ограничения.
	Only []string
}

// Projection — вычисленный на запрос view схемы: какие поля видимы и какие
// relationship развёрнуты во вложенные проекции. Живёт в пределах одного
// запроса и никогда не кэшируется: набор полей у каждого запроса свой.
type Projection struct {
	Resource *Resource
	// Fields — видимые поля в объявленном порядке схемы;
	// поле-идентификатор присутствует всегда.
	Fields []string
	// Included: relationship → вложенная проекция.
	Included map[string]*Projection

	order []string // порядок первого появления relationship в include
}

// ExpandedNames возвращает развёрнутые relationship в порядке include-путей.
func (p *Projection) ExpandedNames() []string {
	return p.order
}

// Visible сообщает, попало ли поле в видимый набор.
func (p *Projection) Visible(name string) bool {
	for _, f := range p.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// ComputeSchema рекурсивно строит проекцию схемы res по sparse fieldsets из
// dirs и списку include-путей. Каждый первый сегмент include-пути обязан быть
// relationship-полем схемы, иначе InvalidInclude. Вложенные схемы разрешаются
// через заранее установленный SetRef либо через реестр по имени типа.
func ComputeSchema(reg *Registry, res *Resource, base Options, dirs *querystring.Directives, include []string) (*Projection, error) {
	// 1. Разбиваем include-пути по первому сегменту
	related := map[string][]string{}
	var relOrder []string

	for _, path := range include {
		field := path
		rest := ""
		if i := strings.Index(path, "."); i >= 0 {
			field, rest = path[:i], path[i+1:]
		}

		f := res.Field(field)
		if f == nil {
			return nil, jsonapi.InvalidInclude(fmt.Sprintf("%s has no attribute %s", res.Type, field))
		}
		if !f.IsRelation() {
			return nil, jsonapi.InvalidInclude(fmt.Sprintf("%s is not a relationship attribute of %s", field, res.Type))
		}

		if _, ok := related[field]; !ok {
			related[field] = nil
			relOrder = append(relOrder, field)
		}
		if rest != "" {
			related[field] = append(related[field], rest)
		}
	}

	proj := &Projection{
		Resource: res,
		Included: map[string]*Projection{},
		order:    relOrder,
	}

	// 2. Видимые поля: объявленный порядок схемы, а не порядок запроса
	only := nameSet(base.Only)
	var requested map[string]struct{}
	if dirs != nil {
		if req, ok := dirs.Fields[res.Type]; ok {
			requested = nameSet(req)
		}
	}
	for i := range res.Fields {
		name := res.Fields[i].Name
		if only != nil {
			if _, ok := only[name]; !ok {
				continue
			}
		}
		if requested != nil {
			if _, ok := requested[name]; !ok {
				continue
			}
		}
		proj.Fields = append(proj.Fields, name)
	}
	// идентификатор сериализуется безусловно, даже если клиент его не просил
	if !proj.Visible(res.ID()) {
		proj.Fields = append(proj.Fields, res.ID())
	}

	// 3. Вложенные проекции по собранным суффиксам
	for _, field := range relOrder {
		rel := res.Field(field).Rel

		relRes := rel.GetRef()
		if relRes == nil {
			var err error
			relRes, err = reg.ByType(rel.Type)
			if err != nil {
				return nil, err
			}
		}

		sub, err := ComputeSchema(reg, relRes, Options{}, dirs, related[field])
		if err != nil {
			return nil, err
		}
		proj.Included[field] = sub
	}

	return proj, nil
}

// nameSet: nil вход — nil выход (отсутствие ограничения, не пустое множество).
func nameSet(names []string) map[string]struct{} {
	if names == nil {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
