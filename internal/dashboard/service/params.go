package service

import (
	"errors"
	"fmt"
	"strings"

	"sp500-screener/internal/dashboard/dto"
	"sp500-screener/pkg/common"
)

// ErrInvalidSortDir is returned for a direction other than 1 or -1.
var ErrInvalidSortDir = errors.New("invalid sort direction")

// ApplyFilters replaces the three filter inputs of p. Sort state is left alone.
func ApplyFilters(p Params, input dto.FilterInput) Params {
	sector := strings.TrimSpace(input.Sector)
	if sector == "" {
		sector = common.AllSectors
	}
	p.Query = input.Query
	p.Sector = sector
	p.OnlyPass = input.OnlyPass
	return p
}

// ToggleSort is a header click: the active key flips direction, any other
// key becomes active with descending order.
func ToggleSort(p Params, key string) (Params, error) {
	if !IsSortable(key) {
		return p, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}
	if p.SortKey == key {
		p.SortDir = -p.SortDir
		return p, nil
	}
	p.SortKey = key
	p.SortDir = common.SortDescending
	return p, nil
}

// ParamsFromQuery builds view parameters from request input. Absent sort
// fields fall back to the defaults.
func ParamsFromQuery(q dto.ViewQuery) (Params, error) {
	p := ApplyFilters(DefaultParams(), q.Filters())
	if q.SortKey != "" {
		if !IsSortable(q.SortKey) {
			return p, fmt.Errorf("%w: %q", ErrUnknownSortKey, q.SortKey)
		}
		p.SortKey = q.SortKey
	}
	switch q.SortDir {
	case 0:
	case common.SortAscending, common.SortDescending:
		p.SortDir = q.SortDir
	default:
		return p, fmt.Errorf("%w: %d", ErrInvalidSortDir, q.SortDir)
	}
	return p, nil
}
