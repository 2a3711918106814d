package common

const (
	// DefaultCacheName names the offline cache store. Bumping the suffix invalidates old entries.
	DefaultCacheName = "sp500-screener-v1"

	DefaultDataPath = "/data/sp500_momentum.json"

	SortAscending  = 1
	SortDescending = -1

	DefaultSortKey = "score"
	AllSectors     = "ALL"
)

// OfflineAssets is the shell that must be available offline.
var OfflineAssets = []string{
	"/",
	"/index.html",
	"/styles.css",
	"/app.js",
	"/manifest.json",
	DefaultDataPath,
}
