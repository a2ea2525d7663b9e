package models

import (
	"net/url"
	"strconv"
	"strings"
)

// TaskQuery narrows a task listing. Zero values mean "not applied".
type TaskQuery struct {
	Completed *bool
	Limit     int
	Skip      int
	SortBy    string
	SortDesc  bool
}

// ParseTaskQuery reads completed, limit, skip and sortBy=field:dir.
//
// A non-empty completed is true only for the literal "true". Non-numeric or
// negative limit/skip are ignored. The sort direction is descending only for
// "desc".
func ParseTaskQuery(v url.Values) TaskQuery {
	var q TaskQuery

	if c := v.Get("completed"); c != "" {
		completed := c == "true"
		q.Completed = &completed
	}

	q.Limit = nonNegativeInt(v.Get("limit"))
	q.Skip = nonNegativeInt(v.Get("skip"))

	if s := v.Get("sortBy"); s != "" {
		field, dir, _ := strings.Cut(s, ":")
		q.SortBy = field
		q.SortDesc = dir == "desc"
	}

	return q
}

// Values is the inverse of ParseTaskQuery. Unset fields are omitted.
func (q TaskQuery) Values() url.Values {
	v := url.Values{}
	if q.Completed != nil {
		v.Set("completed", strconv.FormatBool(*q.Completed))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.SortBy != "" {
		dir := "asc"
		if q.SortDesc {
			dir = "desc"
		}
		v.Set("sortBy", q.SortBy+":"+dir)
	}
	return v
}

func nonNegativeInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
