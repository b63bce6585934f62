package document

import (
	"fmt"
	"net/url"
	"strconv"
)

// PaginationLinks строит ссылки пагинации для документа коллекции.
// number/size — уже разобранные page-параметры запроса (0 — не присланы),
// count — полное число объектов, query — исходные параметры запроса
// (сохраняются в ссылках). page[size]=0 выключает пагинацию: остаётся
// только self.
func PaginationLinks(baseURL string, query url.Values, count, number, size, defaultSize int) map[string]string {
	links := map[string]string{"self": rawURL(baseURL, query)}

	if size == 0 {
		if _, disabled := query["page[size]"]; disabled {
			return links
		}
		size = defaultSize
	}
	if size <= 0 {
		return links
	}
	if number <= 0 {
		number = 1
	}

	lastPage := (count + size - 1) / size
	if lastPage < 1 {
		lastPage = 1
	}

	links["first"] = pageURL(baseURL, query, 1, size)
	links["last"] = pageURL(baseURL, query, lastPage, size)
	if number > 1 {
		links["prev"] = pageURL(baseURL, query, number-1, size)
	}
	if number < lastPage {
		links["next"] = pageURL(baseURL, query, number+1, size)
	}

	return links
}

func rawURL(baseURL string, query url.Values) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func pageURL(baseURL string, query url.Values, number, size int) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		// не смогли разобрать — собираем строкой
		return fmt.Sprintf("%s?page[number]=%d&page[size]=%d", baseURL, number, size)
	}

	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	q.Set("page[number]", strconv.Itoa(number))
	q.Set("page[size]", strconv.Itoa(size))
	u.RawQuery = q.Encode()

	return u.String()
}
