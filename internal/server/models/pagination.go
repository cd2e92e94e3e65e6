package models

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/gophqa/internal/common"
)

// Pagination selects a window of a list ordered by id. A nil Limit returns
// everything after Offset.
type Pagination struct {
	Limit  *int
	Offset int
}

// ParsePagination reads the "limit" and "offset" query parameters. Both must
// be present or both absent; a lone parameter yields
// common.ErrMissingParameters and malformed values common.ErrParseParameter.
//
// Example:
//
//	/questions?limit=10&offset=20
func ParsePagination(q url.Values) (Pagination, error) {
	_, hasLimit := q["limit"]
	_, hasOffset := q["offset"]

	if !hasLimit && !hasOffset {
		return Pagination{}, nil
	}
	if hasLimit != hasOffset {
		return Pagination{}, common.ErrMissingParameters
	}

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil {
		return Pagination{}, fmt.Errorf("%w: limit: %w", common.ErrParseParameter, err)
	}
	if limit < 1 {
		return Pagination{}, fmt.Errorf("%w: limit must be positive", common.ErrParseParameter)
	}

	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil {
		return Pagination{}, fmt.Errorf("%w: offset: %w", common.ErrParseParameter, err)
	}
	if offset < 0 {
		return Pagination{}, fmt.Errorf("%w: offset must not be negative", common.ErrParseParameter)
	}

	return Pagination{Limit: &limit, Offset: offset}, nil
}
