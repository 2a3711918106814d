package service

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"sp500-screener/internal/dashboard/dto"
	"sp500-screener/internal/entity"
	"sp500-screener/pkg/common"

	"github.com/shopspring/decimal"
)

const (
	ClassGood = "good"
	ClassBad  = "bad"

	relVolGoodThreshold = 1.2

	// exactDigits is enough fractional digits to keep the binary expansion
	// from landing on a false rounding tie.
	exactDigits = 40
)

type valueKind int

const (
	kindMissing valueKind = iota
	kindNumber
	kindString
	kindBool
)

type sortValue struct {
	kind valueKind
	num  float64
	str  string
	b    bool
}

func numberValue(v *float64) sortValue {
	if v == nil || math.IsNaN(*v) {
		return sortValue{}
	}
	return sortValue{kind: kindNumber, num: *v}
}

func stringValue(v *string) sortValue {
	if v == nil {
		return sortValue{}
	}
	return sortValue{kind: kindString, str: *v}
}

func boolValue(v *bool) sortValue {
	if v == nil {
		return sortValue{}
	}
	return sortValue{kind: kindBool, b: *v}
}

// sortAccessors maps every sortable attribute name to its value.
var sortAccessors = map[string]func(entity.ScreenerRow) sortValue{
	"ticker":    func(r entity.ScreenerRow) sortValue { return stringValue(r.Ticker) },
	"company":   func(r entity.ScreenerRow) sortValue { return stringValue(r.Company) },
	"sector":    func(r entity.ScreenerRow) sortValue { return stringValue(r.Sector) },
	"score":     func(r entity.ScreenerRow) sortValue { return numberValue(r.Score) },
	"price":     func(r entity.ScreenerRow) sortValue { return numberValue(r.Price) },
	"rsi":       func(r entity.ScreenerRow) sortValue { return numberValue(r.RSI) },
	"ma50":      func(r entity.ScreenerRow) sortValue { return numberValue(r.MA50) },
	"p_vs_ma50": func(r entity.ScreenerRow) sortValue { return numberValue(r.PvsMA50) },
	"ret3m":     func(r entity.ScreenerRow) sortValue { return numberValue(r.Ret3M) },
	"relvol":    func(r entity.ScreenerRow) sortValue { return numberValue(r.RelVol) },
	"pass":      func(r entity.ScreenerRow) sortValue { return boolValue(r.Pass) },
}

// IsSortable reports whether key names a sortable Row attribute.
func IsSortable(key string) bool {
	_, ok := sortAccessors[key]
	return ok
}

func compareDefined(a, b sortValue) int {
	switch a.kind {
	case kindNumber:
		return cmp.Compare(a.num, b.num)
	case kindString:
		return strings.Compare(a.str, b.str)
	case kindBool:
		switch {
		case a.b == b.b:
			return 0
		case b.b:
			return -1
		default:
			return 1
		}
	}
	return 0
}

// FilterRows applies the text, sector and pass filters in that order.
func FilterRows(rows []entity.ScreenerRow, p Params) []entity.ScreenerRow {
	q := strings.ToLower(strings.TrimSpace(p.Query))
	out := make([]entity.ScreenerRow, 0, len(rows))
	for _, row := range rows {
		if q != "" && !containsFold(row.Ticker, q) && !containsFold(row.Company, q) {
			continue
		}
		if p.Sector != "" && p.Sector != common.AllSectors && (row.Sector == nil || *row.Sector != p.Sector) {
			continue
		}
		if p.OnlyPass && (row.Pass == nil || !*row.Pass) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func containsFold(v *string, lowerQuery string) bool {
	if v == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*v), lowerQuery)
}

// SortRows returns a stably sorted copy of rows. Missing values go last in
// both directions; defined values are ordered and then multiplied by dir.
func SortRows(rows []entity.ScreenerRow, key string, dir int) []entity.ScreenerRow {
	out := slices.Clone(rows)
	accessor, ok := sortAccessors[key]
	if !ok {
		return out
	}
	if dir != common.SortAscending {
		dir = common.SortDescending
	}

	slices.SortStableFunc(out, func(a, b entity.ScreenerRow) int {
		va, vb := accessor(a), accessor(b)
		switch {
		case va.kind == kindMissing && vb.kind == kindMissing:
			return 0
		case va.kind == kindMissing:
			return 1
		case vb.kind == kindMissing:
			return -1
		}
		return compareDefined(va, vb) * dir
	})
	return out
}

// FormatNumber renders v with a fixed number of decimals; missing or NaN renders empty.
// Rounding applies to the exact binary value, ties away from zero, and any
// negative input keeps its sign (-0.001 renders as "-0.00").
func FormatNumber(v *float64, places int32) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return ""
	}
	exact, err := decimal.NewFromString(strconv.FormatFloat(math.Abs(*v), 'f', exactDigits, 64))
	if err != nil {
		return ""
	}
	text := exact.StringFixed(places)
	if *v < 0 {
		return "-" + text
	}
	return text
}

// ClassifySigned is good for non-negative values and bad otherwise, missing included.
func ClassifySigned(v *float64) string {
	if v != nil && *v >= 0 {
		return ClassGood
	}
	return ClassBad
}

// ClassifyRelVol is good from 1.2 upwards; a missing value counts as 0.
func ClassifyRelVol(v *float64) string {
	x := 0.0
	if v != nil && !math.IsNaN(*v) {
		x = *v
	}
	if x >= relVolGoodThreshold {
		return ClassGood
	}
	return ClassBad
}

func percentCell(v *float64) dto.Cell {
	text := FormatNumber(v, 2)
	if text != "" {
		text += "%"
	}
	return dto.Cell{Text: text, Class: ClassifySigned(v)}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// ProjectRows formats rows for display.
func ProjectRows(rows []entity.ScreenerRow) []dto.ViewRow {
	out := make([]dto.ViewRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ViewRow{
			Ticker:  deref(r.Ticker),
			Company: deref(r.Company),
			Sector:  deref(r.Sector),
			Score:   FormatNumber(r.Score, 0),
			Price:   FormatNumber(r.Price, 2),
			RSI:     FormatNumber(r.RSI, 2),
			MA50:    FormatNumber(r.MA50, 2),
			PvsMA50: percentCell(r.PvsMA50),
			Ret3M:   percentCell(r.Ret3M),
			RelVol:  dto.Cell{Text: FormatNumber(r.RelVol, 2), Class: ClassifyRelVol(r.RelVol)},
		})
	}
	return out
}

// Render is the whole pipeline: filter, sort, project. It depends on state only.
func Render(state State) []dto.ViewRow {
	filtered := FilterRows(state.Rows, state.Params)
	sorted := SortRows(filtered, state.Params.SortKey, state.Params.SortDir)
	return ProjectRows(sorted)
}
