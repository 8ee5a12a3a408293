package pagination

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// EndRule decides when a page is the last one.
type EndRule string

const (
	// EndRuleTotal reports the end once offset plus returned rows reaches the total.
	EndRuleTotal EndRule = "total"
	// EndRuleFirstOffset reports the end only for the first page (offset 0).
	EndRuleFirstOffset EndRule = "first_offset"
)

var ErrInvalidParams = errors.New("invalid pagination parameters")

// ParseEndRule validates a configured rule name.
func ParseEndRule(s string) (EndRule, error) {
	switch EndRule(s) {
	case EndRuleTotal, EndRuleFirstOffset:
		return EndRule(s), nil
	default:
		return "", fmt.Errorf("unknown pagination end rule %q", s)
	}
}

// IsEnd applies the rule to a fetched page.
func (r EndRule) IsEnd(offset, returned, total int) bool {
	if r == EndRuleFirstOffset {
		return offset == 0
	}
	return offset+returned >= total
}

// Page is the list envelope returned by paginated reads.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	TotalCount int  `json:"total_count"`
	IsEnd      bool `json:"isEnd"`
}

// NewPage builds a Page and computes IsEnd with the given rule.
func NewPage[T any](rule EndRule, items []T, limit, offset, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Limit:      limit,
		Offset:     offset,
		TotalCount: total,
		IsEnd:      rule.IsEnd(offset, len(items), total),
	}
}

// ParseParams reads limit/offset query values, applying defaults for empty strings.
func ParseParams(limitStr, offsetStr string) (limit, offset int, err error) {
	limit, offset = DefaultLimit, 0
	if limitStr != "" {
		if limit, err = strconv.Atoi(limitStr); err != nil || limit <= 0 {
			return 0, 0, ErrInvalidParams
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}
	if offsetStr != "" {
		if offset, err = strconv.Atoi(offsetStr); err != nil || offset < 0 {
			return 0, 0, ErrInvalidParams
		}
	}
	return limit, offset, nil
}
