package querystring

// Разбор query-параметров по спецификации JSON:API: filter, page, fields,
// sort, include, group. Результат (Directives) собирается один раз на запрос
// и дальше не изменяется.

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"YjsonAPI/internal/jsonapi"
)

// managedKeys — параметры, которыми управляет этот пакет. Остальные
// (например, маршрутные) проходят мимо нас.
var managedKeys = []string{"filter", "page", "fields", "sort", "include", "q", "group"}

const fallbackDefaultPageSize = 30

// Options — политики разбора, приходят из конфигурации.
type Options struct {
	// DisallowPageSizeZero выставляется при ALLOW_DISABLE_PAGINATION=false:
	// клиент не может выключить пагинацию через page[size]=0.
	DisallowPageSizeZero bool
	// MaxPageSize ограничивает page[size]; 0 — без ограничения.
	MaxPageSize int
	// MaxIncludeDepth ограничивает число сегментов include-пути; 0 — без ограничения.
	MaxIncludeDepth int
	// DefaultPageSize подставляется в политиках, когда page[size] не прислан.
	DefaultPageSize int
}

func (o Options) defaultPageSize() int {
	if o.DefaultPageSize > 0 {
		return o.DefaultPageSize
	}
	return fallbackDefaultPageSize
}

// SortField — одно поле сортировки.
type SortField struct {
	Field string `json:"field"`
	Order string `json:"order"` // "asc" | "desc"
}

// Directives — результат разбора query-параметров одного запроса.
// Создаётся в Parse и после этого только читается.
type Directives struct {
	// Filters — разобранное JSON-значение параметра filter; nil, если не прислан.
	Filters any
	// Pagination содержит только ключи "number" и "size".
	Pagination map[string]int
	// Fields: sparse fieldsets по типам ресурсов.
	Fields map[string][]string
	// Sorts — поля сортировки в порядке запроса; пустой срез, если sort не прислан.
	Sorts []SortField
	// Include — include-пути в порядке запроса; пустой срез, если include не прислан.
	Include []string
	// Group — поля группировки; nil, если group не прислан.
	Group []string

	raw map[string]string
}

// Parse разбирает плоскую карту query-параметров в Directives.
// Любое структурное нарушение — ошибка из internal/jsonapi.
func Parse(raw map[string]string, opts Options) (*Directives, error) {
	d := &Directives{
		Pagination: map[string]int{},
		Fields:     map[string][]string{},
		Sorts:      []SortField{},
		Include:    []string{},
		raw:        make(map[string]string, len(raw)),
	}
	for k, v := range raw {
		d.raw[k] = v
	}

	if err := d.parseFilters(); err != nil {
		return nil, err
	}
	if err := d.parsePagination(opts); err != nil {
		return nil, err
	}
	if err := d.parseFields(); err != nil {
		return nil, err
	}
	d.parseSorts()
	if err := d.parseInclude(opts); err != nil {
		return nil, err
	}
	d.parseGroup()

	return d, nil
}

// FromValues — адаптер для url.Values: берётся первое значение каждого ключа.
func FromValues(values url.Values, opts Options) (*Directives, error) {
	raw := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			raw[k] = vs[0]
		} else {
			raw[k] = ""
		}
	}
	return Parse(raw, opts)
}

// Managed возвращает исходные параметры, которыми управляет этот пакет.
func (d *Directives) Managed() map[string]string {
	res := map[string]string{}
	for key, value := range d.raw {
		for _, name := range managedKeys {
			if strings.HasPrefix(key, name) {
				res[key] = value
				break
			}
		}
	}
	return res
}

// bracketValues извлекает пары key/value для параметров вида name[key]=v.
// Значение с запятой становится срезом строк, без запятой — строкой.
// Отсутствие пары скобок — ошибка разбора с именем виновного параметра.
func bracketValues(raw map[string]string, name string) (map[string]any, error) {
	results := map[string]any{}

	for key, value := range raw {
		if !strings.HasPrefix(key, name) {
			continue
		}

		open := strings.Index(key, "[")
		if open < 0 {
			return nil, jsonapi.MalformedQuery("Parse error", key)
		}
		closing := strings.Index(key[open+1:], "]")
		if closing < 0 {
			return nil, jsonapi.MalformedQuery("Parse error", key)
		}
		itemKey := key[open+1 : open+1+closing]

		// пустая строка не должна ломать разбор по запятым
		if strings.Contains(value, ",") {
			results[itemKey] = strings.Split(value, ",")
		} else {
			results[itemKey] = value
		}
	}

	return results, nil
}

func (d *Directives) parseFilters() error {
	f, ok := d.raw["filter"]
	if !ok {
		return nil
	}
	var parsed any
	if err := json.Unmarshal([]byte(f), &parsed); err != nil {
		return jsonapi.InvalidFilters("Parse error")
	}
	d.Filters = parsed
	return nil
}

func (d *Directives) parsePagination(opts Options) error {
	kv, err := bracketValues(d.raw, "page")
	if err != nil {
		return err
	}

	for key, value := range kv {
		if key != "number" && key != "size" {
			return jsonapi.MalformedQuery(
				fmt.Sprintf("%s is not a valid parameter of pagination", key), "page")
		}
		s, ok := value.(string)
		if !ok {
			// значение с запятой не является числом страницы
			return jsonapi.MalformedQuery("Parse error", "page["+key+"]")
		}
		n, convErr := strconv.Atoi(s)
		if convErr != nil || n < 0 {
			return jsonapi.MalformedQuery("Parse error", "page["+key+"]")
		}
		d.Pagination[key] = n
	}

	// политики: запрет выключения пагинации и максимальный размер страницы
	size, hasSize := d.Pagination["size"]
	if !hasSize {
		size = opts.defaultPageSize()
	}
	if opts.DisallowPageSizeZero && size == 0 {
		return jsonapi.MalformedQuery("You are not allowed to disable pagination", "page[size]")
	}
	if opts.MaxPageSize > 0 && hasSize && size > opts.MaxPageSize {
		return jsonapi.MalformedQuery(
			fmt.Sprintf("Maximum page size is %d", opts.MaxPageSize), "page[size]")
	}

	return nil
}

func (d *Directives) parseFields() error {
	kv, err := bracketValues(d.raw, "fields")
	if err != nil {
		return err
	}
	for typeName, value := range kv {
		switch v := value.(type) {
		case []string:
			d.Fields[typeName] = v
		case string:
			d.Fields[typeName] = []string{v}
		}
	}
	return nil
}

func (d *Directives) parseSorts() {
	s := d.raw["sort"]
	if s == "" {
		return
	}
	for _, token := range strings.Split(s, ",") {
		order := "asc"
		field := token
		if strings.HasPrefix(token, "-") {
			order = "desc"
			field = strings.TrimPrefix(token, "-")
		}
		d.Sorts = append(d.Sorts, SortField{Field: field, Order: order})
	}
}

func (d *Directives) parseInclude(opts Options) error {
	s := d.raw["include"]
	if s == "" {
		return nil
	}
	paths := strings.Split(s, ",")
	if opts.MaxIncludeDepth > 0 {
		for _, path := range paths {
			if strings.Count(path, ".")+1 > opts.MaxIncludeDepth {
				return jsonapi.InvalidInclude(fmt.Sprintf(
					"You can't use include through more than %d relationships", opts.MaxIncludeDepth))
			}
		}
	}
	d.Include = paths
	return nil
}

func (d *Directives) parseGroup() {
	g := d.raw["group"]
	if g == "" {
		// group не прислан или прислан пустым — группировки нет
		return
	}
	d.Group = strings.Split(g, ",")
}
