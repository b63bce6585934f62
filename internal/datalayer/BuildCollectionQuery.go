package datalayer

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"YjsonAPI/internal/jsonapi"
	"YjsonAPI/internal/querystring"
	"YjsonAPI/internal/schema"
)

// BuildCollectionQuery строит SELECT страницы коллекции: колонки из
// видимых полей проекции, ORDER BY из sort-директив, LIMIT/OFFSET из
// пагинации. page[size]=0 снимает LIMIT (пагинация выключена).
func BuildCollectionQuery(proj *schema.Projection, dirs *querystring.Directives, defaultPageSize int, filter FilterApplier) (squirrel.SelectBuilder, error) {
	res := proj.Resource

	sb := squirrel.SelectBuilder{}.PlaceholderFormat(squirrel.Dollar)
	sb = sb.From(fmt.Sprintf("%s AS main", res.Table))
	sb = sb.Columns(selectColumns(proj)...)

	// фильтры — сквозное представление, исполняет подключённый applier
	if dirs != nil && dirs.Filters != nil {
		if filter == nil {
			return sb, fmt.Errorf("filters present but no filter applier configured for %s", res.Type)
		}
		var err error
		sb, err = filter(sb, res, dirs.Filters)
		if err != nil {
			return sb, err
		}
	}

	if dirs == nil {
		return sb, nil
	}

	// ORDER BY: имена полей схемы переводим в колонки хранилища
	for _, s := range dirs.Sorts {
		col, err := schema.ModelField(res, s.Field)
		if err != nil {
			return sb, jsonapi.MalformedQuery(
				fmt.Sprintf("%s is not a field of %s", s.Field, res.Type), "sort")
		}
		dir := "ASC"
		if s.Order == "desc" {
			dir = "DESC"
		}
		sb = sb.OrderBy(fmt.Sprintf("main.%s %s", col, dir))
	}

	// GROUP BY — сквозной, как и сортировка
	for _, g := range dirs.Group {
		col, err := schema.ModelField(res, g)
		if err != nil {
			return sb, jsonapi.MalformedQuery(
				fmt.Sprintf("%s is not a field of %s", g, res.Type), "group")
		}
		sb = sb.GroupBy("main." + col)
	}

	// пагинация
	size, hasSize := dirs.Pagination["size"]
	if !hasSize {
		size = defaultPageSize
	}
	if size > 0 {
		sb = sb.Limit(uint64(size))
		if number := dirs.Pagination["number"]; number > 1 {
			sb = sb.Offset(uint64((number - 1) * size))
		}
	}

	return sb, nil
}

// BuildObjectQuery строит SELECT одного объекта по идентификатору.
func BuildObjectQuery(proj *schema.Projection, id any) squirrel.SelectBuilder {
	res := proj.Resource
	idAttr := res.Field(res.ID()).ModelField()

	sb := squirrel.SelectBuilder{}.PlaceholderFormat(squirrel.Dollar)
	sb = sb.From(fmt.Sprintf("%s AS main", res.Table))
	sb = sb.Columns(selectColumns(proj)...)
	sb = sb.Where(squirrel.Eq{"main." + idAttr: id})
	sb = sb.Limit(1)
	return sb
}

// BuildCountQuery строит COUNT(*) с теми же фильтрами, что и коллекция.
func BuildCountQuery(res *schema.Resource, filters any, filter FilterApplier) (squirrel.SelectBuilder, error) {
	sb := squirrel.SelectBuilder{}.PlaceholderFormat(squirrel.Dollar)
	sb = sb.From(fmt.Sprintf("%s AS main", res.Table))
	sb = sb.Column("COUNT(*)")

	if filters != nil {
		if filter == nil {
			return sb, fmt.Errorf("filters present but no filter applier configured for %s", res.Type)
		}
		var err error
		sb, err = filter(sb, res, filters)
		if err != nil {
			return sb, err
		}
	}
	return sb, nil
}

// selectColumns: колонки хранилища для видимых полей проекции.
// Атрибуты — напрямую, to-one relationship — их FK-колонка (нужна для
// linkage), to-many выбираются отдельными запросами.
func selectColumns(proj *schema.Projection) []string {
	res := proj.Resource
	seen := map[string]bool{}
	var cols []string

	add := func(col string) {
		if !seen[col] {
			seen[col] = true
			cols = append(cols, "main."+col)
		}
	}

	for _, name := range proj.Fields {
		f := res.Field(name)
		if f == nil {
			continue
		}
		if !f.IsRelation() {
			add(f.ModelField())
			continue
		}
		if !f.Rel.Many {
			add(f.Rel.FK)
		}
	}

	return cols
}
