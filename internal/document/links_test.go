package document

import (
	"net/url"
	"strings"
	"testing"
)

func TestPaginationLinksMiddlePage(t *testing.T) {
	query := url.Values{"page[number]": {"3"}, "page[size]": {"10"}}
	links := PaginationLinks("http://api.local/api/article", query, 95, 3, 10, 30)

	for _, key := range []string{"self", "first", "last", "prev", "next"} {
		if links[key] == "" {
			t.Fatalf("link %q missing: %#v", key, links)
		}
	}
	if !strings.Contains(links["last"], "page%5Bnumber%5D=10") {
		t.Fatalf("last page must be 10: %q", links["last"])
	}
	if !strings.Contains(links["prev"], "page%5Bnumber%5D=2") {
		t.Fatalf("prev page must be 2: %q", links["prev"])
	}
	if !strings.Contains(links["next"], "page%5Bnumber%5D=4") {
		t.Fatalf("next page must be 4: %q", links["next"])
	}
}

func TestPaginationLinksFirstAndLastPage(t *testing.T) {
	query := url.Values{"page[size]": {"10"}}

	links := PaginationLinks("http://api.local/api/article", query, 25, 1, 10, 30)
	if _, ok := links["prev"]; ok {
		t.Fatalf("first page must not have prev: %#v", links)
	}
	if _, ok := links["next"]; !ok {
		t.Fatalf("first page must have next: %#v", links)
	}

	links = PaginationLinks("http://api.local/api/article", query, 25, 3, 10, 30)
	if _, ok := links["next"]; ok {
		t.Fatalf("last page must not have next: %#v", links)
	}
}

// явный page[size]=0 выключает пагинацию: остаётся только self
func TestPaginationLinksDisabled(t *testing.T) {
	query := url.Values{"page[size]": {"0"}}
	links := PaginationLinks("http://api.local/api/article", query, 100, 0, 0, 30)

	if len(links) != 1 || links["self"] == "" {
		t.Fatalf("only self expected: %#v", links)
	}
}

// размер не прислан — ссылки строятся от размера по умолчанию
func TestPaginationLinksDefaultSize(t *testing.T) {
	links := PaginationLinks("http://api.local/api/article", url.Values{}, 61, 0, 0, 30)

	if !strings.Contains(links["last"], "page%5Bnumber%5D=3") {
		t.Fatalf("last page must be 3 with default size 30: %q", links["last"])
	}
	if !strings.Contains(links["first"], "page%5Bsize%5D=30") {
		t.Fatalf("links must carry the default size: %q", links["first"])
	}
}

// прочие query-параметры сохраняются в ссылках
func TestPaginationLinksKeepQuery(t *testing.T) {
	query := url.Values{"sort": {"-created_at"}, "page[size]": {"10"}}
	links := PaginationLinks("http://api.local/api/article", query, 30, 1, 10, 30)

	if !strings.Contains(links["next"], "sort=-created_at") {
		t.Fatalf("next must keep sort parameter: %q", links["next"])
	}
}
