package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"sp500-screener/internal/dashboard/config"
	"sp500-screener/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(url string) ScreenerDataRepository {
	cfg := &config.Config{}
	cfg.Data.SourceURL = url
	return NewScreenerDataRepository(cfg, logger.NewNop())
}

func TestScreenerDataRepository_Fetch(t *testing.T) {
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"updated_at":"2025-01-10","rows":[{"ticker":"AAA","score":81}]}`))
	}))
	defer server.Close()

	ds, err := newTestRepository(server.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ds.UpdatedAt)
	assert.Equal(t, "2025-01-10", *ds.UpdatedAt)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "AAA", *ds.Rows[0].Ticker)

	assert.Contains(t, gotHeader.Get("Cache-Control"), "no-store")
	assert.Equal(t, "no-cache", gotHeader.Get("Pragma"))
}

func TestScreenerDataRepository_FetchWithoutRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"updated_at":null}`))
	}))
	defer server.Close()

	ds, err := newTestRepository(server.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ds.UpdatedAt)
	assert.NotNil(t, ds.Rows)
	assert.Empty(t, ds.Rows)
}

func TestScreenerDataRepository_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-ok status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "gone", http.StatusNotFound)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"rows": [`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			ds, err := newTestRepository(server.URL).Fetch(context.Background())
			assert.Error(t, err)
			assert.Nil(t, ds)
		})
	}
}

func TestScreenerDataRepository_FetchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestRepository(url).Fetch(context.Background())
	assert.Error(t, err)
}
