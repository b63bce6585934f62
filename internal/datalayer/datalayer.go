package datalayer

// Слой данных читающей стороны: собирает SQL по проекции схемы и
// директивам запроса, исполняет через pgx и прикладывает связанные
// строки для развёрнутых relationship. Фильтры сюда приходят verbatim
// и передаются в подключаемый FilterApplier — их компиляция в SQL
// не входит в обязанности этого пакета.

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"YjsonAPI/internal/logger"
	"YjsonAPI/internal/querystring"
	"YjsonAPI/internal/schema"
)

// FilterApplier навешивает условие на запрос из разобранного filter-значения.
type FilterApplier func(sb squirrel.SelectBuilder, res *schema.Resource, filters any) (squirrel.SelectBuilder, error)

type Postgres struct {
	Pool     *pgxpool.Pool
	Registry *schema.Registry
	Filter   FilterApplier
	// DefaultPageSize применяется, когда клиент не прислал page[size].
	DefaultPageSize int
}

// Collection возвращает страницу объектов корневой проекции вместе со
// связанными строками для её развёрнутых relationship.
func (d *Postgres) Collection(ctx context.Context, proj *schema.Projection, dirs *querystring.Directives) ([]map[string]any, error) {
	sb, err := BuildCollectionQuery(proj, dirs, d.DefaultPageSize, d.Filter)
	if err != nil {
		return nil, err
	}

	sqlStr, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}
	logger.Debug("sql", map[string]any{
		"resource": proj.Resource.Type,
		"sql":      sqlStr,
		"args":     args,
	})

	rows, err := d.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	items, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []map[string]any{}, nil
	}

	if err := d.attachRelated(ctx, proj, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Object возвращает один объект по идентификатору; nil — если не найден.
func (d *Postgres) Object(ctx context.Context, proj *schema.Projection, id any) (map[string]any, error) {
	sb := BuildObjectQuery(proj, id)

	sqlStr, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}
	logger.Debug("sql", map[string]any{
		"resource": proj.Resource.Type,
		"sql":      sqlStr,
		"args":     args,
	})

	rows, err := d.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	items, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	if err := d.attachRelated(ctx, proj, items[:1]); err != nil {
		return nil, err
	}
	return items[0], nil
}

// relatedResource разрешает схему цели relationship: заранее подставленный
// дескриптор, иначе реестр по имени типа.
func (d *Postgres) relatedResource(rel *schema.Relation) (*schema.Resource, error) {
	if ref := rel.GetRef(); ref != nil {
		return ref, nil
	}
	if d.Registry == nil {
		return nil, fmt.Errorf("datalayer: no registry to resolve type %s", rel.Type)
	}
	return d.Registry.ByType(rel.Type)
}
