package utils

import (
	"net/url"
	"strconv"
)

// Page describes one page of an in-memory result list.
type Page struct {
	Number   int
	NumPages int
	Start    int
	End      int
}

// Paginate clamps page into [1, numPages]. An empty list still has one (empty) page.
func Paginate(total, perPage, page int) Page {
	if perPage <= 0 {
		perPage = 1
	}
	numPages := (total + perPage - 1) / perPage
	if numPages < 1 {
		numPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return Page{Number: page, NumPages: numPages, Start: start, End: end}
}

func (p Page) HasNext() bool { return p.Number < p.NumPages }
func (p Page) HasPrev() bool { return p.Number > 1 }

// BuildPageURL returns baseURL with params and page set to the given page.
func BuildPageURL(baseURL string, page int, params url.Values) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	q := url.Values{}
	for key, values := range params {
		if key == "page" {
			continue
		}
		for _, value := range values {
			q.Add(key, value)
		}
	}
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
