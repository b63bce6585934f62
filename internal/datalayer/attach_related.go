package datalayer

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"YjsonAPI/internal/schema"
)

// attachRelated прикладывает к строкам связанные данные для каждого видимого
// relationship проекции: развёрнутые — полными строками (рекурсивно вниз по
// дереву проекции), видимые to-many без разворота — строками из одного
// идентификатора, чтобы у кодировщика был linkage. To-one без разворота не
// требует запроса: FK уже в родительской строке.
func (d *Postgres) attachRelated(ctx context.Context, proj *schema.Projection, items []map[string]any) error {
	res := proj.Resource

	for i := range res.Fields {
		f := &res.Fields[i]
		if !f.IsRelation() || !proj.Visible(f.Name) {
			continue
		}

		sub := proj.Included[f.Name]
		if f.Rel.Many {
			if err := d.attachMany(ctx, f, sub, res, items); err != nil {
				return err
			}
		} else if sub != nil {
			if err := d.attachOne(ctx, f, sub, items); err != nil {
				return err
			}
		}
	}
	return nil
}

// attachMany: выборка дочерних строк пачкой по FK IN (parent ids).
func (d *Postgres) attachMany(ctx context.Context, f *schema.Field, sub *schema.Projection, parent *schema.Resource, items []map[string]any) error {
	related, err := d.relatedResource(f.Rel)
	if err != nil {
		return err
	}

	parentIDAttr := parent.Field(parent.ID()).ModelField()
	ids := collectIDs(items, parentIDAttr)
	if len(ids) == 0 {
		return nil
	}

	relIDAttr := related.Field(related.ID()).ModelField()
	sb := squirrel.SelectBuilder{}.PlaceholderFormat(squirrel.Dollar)
	sb = sb.From(fmt.Sprintf("%s AS main", related.Table))
	if sub != nil {
		sb = sb.Columns(selectColumns(sub)...)
	} else {
		// только идентификатор: кодировщику нужен лишь linkage.
		// Колонка переименовывается в схемное имя идентификатора.
		sb = sb.Column(fmt.Sprintf("main.%s AS %s", relIDAttr, f.Rel.RelatedID()))
	}
	sb = sb.Column("main." + f.Rel.FK)
	sb = sb.Where(squirrel.Eq{"main." + f.Rel.FK: ids})
	sb = sb.OrderBy("main." + relIDAttr + " ASC")

	children, err := d.run(ctx, sb)
	if err != nil {
		return err
	}

	byParent := map[any][]map[string]any{}
	for _, child := range children {
		pid := idKey(child[f.Rel.FK])
		byParent[pid] = append(byParent[pid], child)
	}
	for _, item := range items {
		attached := byParent[idKey(item[parentIDAttr])]
		if attached == nil {
			attached = []map[string]any{}
		}
		item[f.ModelField()] = attached
	}

	if sub != nil && len(children) > 0 {
		return d.attachRelated(ctx, sub, children)
	}
	return nil
}

// attachOne: выборка родительских (belongs_to) строк по их идентификаторам.
func (d *Postgres) attachOne(ctx context.Context, f *schema.Field, sub *schema.Projection, items []map[string]any) error {
	related := sub.Resource

	ids := collectIDs(items, f.Rel.FK)
	if len(ids) == 0 {
		return nil
	}

	relIDAttr := related.Field(related.ID()).ModelField()
	sb := squirrel.SelectBuilder{}.PlaceholderFormat(squirrel.Dollar)
	sb = sb.From(fmt.Sprintf("%s AS main", related.Table))
	sb = sb.Columns(selectColumns(sub)...)
	sb = sb.Where(squirrel.Eq{"main." + relIDAttr: ids})

	rows, err := d.run(ctx, sb)
	if err != nil {
		return err
	}

	byID := map[any]map[string]any{}
	for _, row := range rows {
		byID[idKey(row[relIDAttr])] = row
	}
	for _, item := range items {
		if fk := item[f.Rel.FK]; fk != nil {
			if row, ok := byID[idKey(fk)]; ok {
				item[f.ModelField()] = row
			}
		}
	}

	if len(rows) > 0 {
		return d.attachRelated(ctx, sub, rows)
	}
	return nil
}

func (d *Postgres) run(ctx context.Context, sb squirrel.SelectBuilder) ([]map[string]any, error) {
	sqlStr, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := d.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

// collectIDs собирает уникальные непустые значения колонки, сохраняя порядок.
func collectIDs(items []map[string]any, col string) []any {
	seen := map[any]struct{}{}
	var ids []any
	for _, item := range items {
		v := item[col]
		if v == nil {
			continue
		}
		k := idKey(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ids = append(ids, v)
	}
	return ids
}

// idKey нормализует целочисленные идентификаторы к int64: pgx возвращает
// int32 для integer и int64 для bigint, а FK и PK могут быть разных типов.
func idKey(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	default:
		return v
	}
}
