package dto

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"guesthouse/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"

	// MaxLimit caps the page size a caller can ask for.
	MaxLimit = 100
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
	// ThenBy breaks ties left by SortBy, ascending, so pages stay stable.
	ThenBy []string `json:"then_by,omitempty"`
}

func positive(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}

	return value
}

// FromRequest reads paging and sorting from the query string. Missing or
// malformed page and limit fall back to the defaults. SortBy is taken as is
// and must go through RestrictSort before it reaches a query.
func (q *QueryParams) FromRequest(r *http.Request) {
	query := r.URL.Query()

	q.Page = positive(query.Get(constant.RequestParamPage), constant.DefaultValuePage)
	q.Limit = min(positive(query.Get(constant.RequestParamLimit), constant.DefaultValueLimit), MaxLimit)
	q.SortBy = query.Get(constant.RequestParamSortBy)

	if dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
	}
}

// RestrictSort drops a sort column that is not in allowed and falls back to the
// default ordering. SortBy ends up in the query text, so it must be checked.
func (q *QueryParams) RestrictSort(allowed ...string) {
	if q.SortBy != "" && !slices.Contains(allowed, q.SortBy) {
		q.SortBy = ""
	}

	if q.SortBy == "" {
		q.SortBy = constant.DefaultValueSortBy
	}

	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}
}

// OrderBy renders the ORDER BY list, or "" when nothing is sorted.
func (q *QueryParams) OrderBy() string {
	if q.SortBy == "" || q.SortDir == "" {
		return ""
	}

	terms := []string{q.SortBy + " " + q.SortDir}

	for _, col := range q.ThenBy {
		if col != q.SortBy {
			terms = append(terms, col+" "+SortDirAsc)
		}
	}

	return strings.Join(terms, ", ")
}
