package service

import (
	"errors"
	"sort"
	"time"

	"sp500-screener/internal/dashboard/dto"
	"sp500-screener/internal/entity"
	"sp500-screener/pkg/common"
)

const (
	StatusNotLoaded   = "Loading…"
	StatusLoadFailed  = "Failed to load data."
	updatedAtPrefix   = "Updated: "
	missingUpdatedAt  = "—"
	allSectorsLabel   = "All sectors"
	directionAscLabel = "asc"
	directionDscLabel = "desc"
)

// ErrUnknownSortKey is returned when a header names an attribute rows do not have.
var ErrUnknownSortKey = errors.New("unknown sort key")

// Params are the view parameters a page URL carries: sort state plus the three filter inputs.
type Params struct {
	SortKey  string
	SortDir  int
	Query    string
	Sector   string
	OnlyPass bool
}

// DefaultParams sorts by score, best first, with no filter applied.
func DefaultParams() Params {
	return Params{
		SortKey: common.DefaultSortKey,
		SortDir: common.SortDescending,
		Sector:  common.AllSectors,
	}
}

// State is the whole view model. Rows are shared between snapshots and never mutated.
type State struct {
	Rows     []entity.ScreenerRow
	Sectors  []string
	Status   string
	LoadedAt *time.Time
	Params   Params
}

// NewState returns the state of a page that has not loaded anything yet.
func NewState() State {
	return State{
		Rows:    []entity.ScreenerRow{},
		Sectors: []string{},
		Status:  StatusNotLoaded,
		Params:  DefaultParams(),
	}
}

type column struct {
	key   string
	label string
}

// tableColumns are the sortable headers in display order.
var tableColumns = []column{
	{"score", "Score"},
	{"ticker", "Ticker"},
	{"company", "Company"},
	{"sector", "Sector"},
	{"price", "Price"},
	{"rsi", "RSI"},
	{"ma50", "MA50"},
	{"p_vs_ma50", "% vs MA50"},
	{"ret3m", "3M %"},
	{"relvol", "Rel. volume"},
}

// DeriveSectors returns the distinct non-empty sectors of rows, sorted.
func DeriveSectors(rows []entity.ScreenerRow) []string {
	seen := make(map[string]struct{})
	sectors := make([]string, 0)
	for _, row := range rows {
		if row.Sector == nil || *row.Sector == "" {
			continue
		}
		if _, ok := seen[*row.Sector]; ok {
			continue
		}
		seen[*row.Sector] = struct{}{}
		sectors = append(sectors, *row.Sector)
	}
	sort.Strings(sectors)
	return sectors
}

// SectorOptions prefixes sectors with the "all sectors" choice and marks the selected one.
func SectorOptions(sectors []string, selected string) []dto.SectorOption {
	if selected == "" {
		selected = common.AllSectors
	}
	options := make([]dto.SectorOption, 0, len(sectors)+1)
	options = append(options, dto.SectorOption{
		Value:    common.AllSectors,
		Label:    allSectorsLabel,
		Selected: selected == common.AllSectors,
	})
	for _, s := range sectors {
		options = append(options, dto.SectorOption{Value: s, Label: s, Selected: s == selected})
	}
	return options
}

func updatedAtStatus(updatedAt *string) string {
	if updatedAt == nil || *updatedAt == "" {
		return updatedAtPrefix + missingUpdatedAt
	}
	return updatedAtPrefix + *updatedAt
}

// BuildView renders state into the page model.
func BuildView(state State) *dto.PageView {
	columns := make([]dto.Column, 0, len(tableColumns))
	for _, c := range tableColumns {
		col := dto.Column{Key: c.key, Label: c.label, Active: c.key == state.Params.SortKey}
		if col.Active {
			col.Direction = directionDscLabel
			if state.Params.SortDir == common.SortAscending {
				col.Direction = directionAscLabel
			}
		}
		columns = append(columns, col)
	}

	return &dto.PageView{
		Status:     state.Status,
		LoadedAt:   state.LoadedAt,
		Query:      state.Params.Query,
		Sector:     state.Params.Sector,
		OnlyPass:   state.Params.OnlyPass,
		SortKey:    state.Params.SortKey,
		SortDir:    state.Params.SortDir,
		Sectors:    SectorOptions(state.Sectors, state.Params.Sector),
		Columns:    columns,
		Rows:       Render(state),
		TotalCount: len(state.Rows),
	}
}
