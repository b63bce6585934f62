package jsonapi

import (
	"errors"
	"fmt"
	"net/http"
)

// MediaType is the official JSON:API media type.
const MediaType = "application/vnd.api+json"

// Базовые виды ошибок запроса. Каждая конкретная ошибка оборачивает один
// из них, так что вызывающий код проверяет вид через errors.Is.
var (
	ErrMalformedQuery       = errors.New("malformed query parameter")
	ErrInvalidFilters       = errors.New("invalid filters")
	ErrInvalidInclude       = errors.New("invalid include")
	ErrRelationshipNotFound = errors.New("relationship not found")
	ErrSchemaNotFound       = errors.New("schema not found")
	ErrObjectNotFound       = errors.New("object not found")
)

// Error — ошибка уровня запроса в терминах JSON:API error object.
// Source указывает на виновный элемент запроса: {"parameter": "page[size]"}
// или {"pointer": "/data/id"}.
type Error struct {
	kind   error
	Status int
	Title  string
	Detail string
	Source map[string]string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Title
	}
	return e.Title + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.kind }

// MalformedQuery: синтаксическая ошибка query-параметра.
// parameter называет конкретный параметр (например "page[size]").
func MalformedQuery(detail, parameter string) *Error {
	return &Error{
		kind:   ErrMalformedQuery,
		Status: http.StatusBadRequest,
		Title:  "Bad request",
		Detail: detail,
		Source: map[string]string{"parameter": parameter},
	}
}

// InvalidFilters: параметр filter не является валидным JSON.
func InvalidFilters(detail string) *Error {
	return &Error{
		kind:   ErrInvalidFilters,
		Status: http.StatusBadRequest,
		Title:  "Invalid filters querystring parameter",
		Detail: detail,
		Source: map[string]string{"parameter": "filter"},
	}
}

// InvalidInclude: include-путь слишком глубокий либо ссылается на
// несуществующее или не-relationship поле.
func InvalidInclude(detail string) *Error {
	return &Error{
		kind:   ErrInvalidInclude,
		Status: http.StatusBadRequest,
		Title:  "Invalid include querystring parameter",
		Detail: detail,
		Source: map[string]string{"parameter": "include"},
	}
}

// RelationshipNotFound: запрос к связи, которой нет в схеме ресурса.
func RelationshipNotFound(schemaType, field string) *Error {
	return &Error{
		kind:   ErrRelationshipNotFound,
		Status: http.StatusNotFound,
		Title:  "Relationship not found",
		Detail: fmt.Sprintf("%s has no relationship %s", schemaType, field),
	}
}

// SchemaNotFound: в реестре нет схемы для запрошенного типа ресурса.
func SchemaNotFound(typeName string) *Error {
	return &Error{
		kind:   ErrSchemaNotFound,
		Status: http.StatusNotFound,
		Title:  "Schema not found",
		Detail: fmt.Sprintf("couldn't find schema for type: %s", typeName),
	}
}

// ObjectNotFound: в хранилище нет объекта с таким идентификатором.
func ObjectNotFound(typeName, id string) *Error {
	return &Error{
		kind:   ErrObjectNotFound,
		Status: http.StatusNotFound,
		Title:  "Object not found",
		Detail: fmt.Sprintf("%s with id %s not found", typeName, id),
	}
}

// AsError нормализует произвольную ошибку к *Error. Неизвестные ошибки
// становятся 500 без деталей, чтобы не протекали внутренности.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		kind:   err,
		Status: http.StatusInternalServerError,
		Title:  "Internal server error",
	}
}

// ErrorsPayload собирает документ ошибок {"errors":[...],"jsonapi":...}.
func ErrorsPayload(errs ...*Error) map[string]any {
	list := make([]map[string]any, 0, len(errs))
	for _, e := range errs {
		obj := map[string]any{
			"status": fmt.Sprintf("%d", e.Status),
			"title":  e.Title,
		}
		if e.Detail != "" {
			obj["detail"] = e.Detail
		}
		if len(e.Source) > 0 {
			obj["source"] = e.Source
		}
		list = append(list, obj)
	}
	return map[string]any{
		"errors":  list,
		"jsonapi": map[string]any{"version": "1.0"},
	}
}
