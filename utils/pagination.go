package utils

import "strconv"

// Page is a limit/offset window read from the query string.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

const maxPageLimit = 100

// ParsePage reads limit and offset, falling back to defaultLimit and 0 on missing or bad input.
func ParsePage(limit, offset string, defaultLimit int) Page {
	p := Page{Limit: defaultLimit}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if n, err := strconv.Atoi(offset); err == nil && n > 0 {
		p.Offset = n
	}
	return p
}
