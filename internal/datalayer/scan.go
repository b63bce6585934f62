package datalayer

import (
	"github.com/jackc/pgx/v5"
)

// scanRows превращает pgx-строки в карты "колонка → значение".
// Имена берутся из описаний полей результата, поэтому алиасы из SELECT
// сохраняются.
func scanRows(rows pgx.Rows) ([]map[string]any, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	items := []map[string]any{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		item := make(map[string]any, len(fields))
		for i := range fields {
			item[fields[i].Name] = values[i]
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
