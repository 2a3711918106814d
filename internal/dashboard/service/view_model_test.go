package service

import (
	"testing"

	"sp500-screener/internal/entity"
	"sp500-screener/pkg/common"
	"sp500-screener/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSectors(t *testing.T) {
	rows := []entity.ScreenerRow{
		{Sector: utils.ToPointer("Tech")},
		{Sector: utils.ToPointer("Energy")},
		{Sector: utils.ToPointer("Tech")},
		{Sector: utils.ToPointer("")},
		{},
	}
	assert.Equal(t, []string{"Energy", "Tech"}, DeriveSectors(rows))
	assert.Empty(t, DeriveSectors(nil))
}

func TestSectorOptions(t *testing.T) {
	options := SectorOptions([]string{"Energy", "Tech"}, "Tech")
	require.Len(t, options, 3)
	assert.Equal(t, common.AllSectors, options[0].Value)
	assert.False(t, options[0].Selected)
	assert.Equal(t, "Energy", options[1].Value)
	assert.True(t, options[2].Selected)

	options = SectorOptions(nil, "")
	require.Len(t, options, 1)
	assert.True(t, options[0].Selected)
}

func TestUpdatedAtStatus(t *testing.T) {
	assert.Equal(t, "Updated: 2025-01-10", updatedAtStatus(utils.ToPointer("2025-01-10")))
	assert.Equal(t, "Updated: —", updatedAtStatus(nil))
	assert.Equal(t, "Updated: —", updatedAtStatus(utils.ToPointer("")))
}

func TestBuildView(t *testing.T) {
	state := NewState()
	view := BuildView(state)
	assert.Equal(t, StatusNotLoaded, view.Status)
	assert.Empty(t, view.Rows)
	assert.Equal(t, 0, view.TotalCount)
	assert.Equal(t, common.DefaultSortKey, view.SortKey)

	var active []string
	for _, c := range view.Columns {
		if c.Active {
			active = append(active, c.Key)
			assert.Equal(t, "desc", c.Direction)
		} else {
			assert.Empty(t, c.Direction)
		}
	}
	assert.Equal(t, []string{"score"}, active)

	state.Params.SortKey = "ticker"
	state.Params.SortDir = common.SortAscending
	view = BuildView(state)
	for _, c := range view.Columns {
		if c.Key == "ticker" {
			assert.Equal(t, "asc", c.Direction)
		}
	}
}
