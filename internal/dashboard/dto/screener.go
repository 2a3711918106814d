package dto

import "time"

// Cell is a formatted value with its good/bad classification.
type Cell struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// ViewRow is a Row projected for display. Missing values are empty strings.
type ViewRow struct {
	Ticker  string `json:"ticker"`
	Company string `json:"company"`
	Sector  string `json:"sector"`
	Score   string `json:"score"`
	Price   string `json:"price"`
	RSI     string `json:"rsi"`
	MA50    string `json:"ma50"`
	PvsMA50 Cell   `json:"p_vs_ma50"`
	Ret3M   Cell   `json:"ret3m"`
	RelVol  Cell   `json:"relvol"`
}

// SectorOption is one entry of the sector dropdown.
type SectorOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Column describes a sortable table header.
type Column struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Active    bool   `json:"active"`
	Direction string `json:"direction,omitempty"` // "asc" or "desc" on the active column
	Href      string `json:"-"`
}

// PageView is everything the screener page needs to render.
type PageView struct {
	Status     string         `json:"status"`
	LoadedAt   *time.Time     `json:"loaded_at,omitempty"`
	Query      string         `json:"query"`
	Sector     string         `json:"sector"`
	OnlyPass   bool           `json:"only_pass"`
	SortKey    string         `json:"sort_key"`
	SortDir    int            `json:"sort_dir"`
	Sectors    []SectorOption `json:"sectors"`
	Columns    []Column       `json:"columns"`
	Rows       []ViewRow      `json:"rows"`
	TotalCount int            `json:"total_count"`
}

// FilterInput carries the three live filter inputs.
type FilterInput struct {
	Query    string `query:"q" form:"q" json:"q"`
	Sector   string `query:"sector" form:"sector" json:"sector"`
	OnlyPass bool   `query:"only_pass" form:"only_pass" json:"only_pass"`
}

// ViewQuery is the complete view state as carried by a page URL.
type ViewQuery struct {
	Query    string `query:"q" form:"q"`
	Sector   string `query:"sector" form:"sector"`
	OnlyPass bool   `query:"only_pass" form:"only_pass"`
	SortKey  string `query:"sort" form:"sort"`
	SortDir  int    `query:"dir" form:"dir"`
}

// Filters returns the filter part of q.
func (q ViewQuery) Filters() FilterInput {
	return FilterInput{Query: q.Query, Sector: q.Sector, OnlyPass: q.OnlyPass}
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
