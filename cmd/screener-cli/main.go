package main

import (
	"fmt"
	"os"

	"sp500-screener/internal/dashboard/config"
	"sp500-screener/internal/dashboard/dto"
	"sp500-screener/internal/dashboard/repository"
	"sp500-screener/internal/dashboard/service"
	"sp500-screener/pkg/common"
	"sp500-screener/pkg/logger"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	configPath string
	query      string
	sector     string
	onlyPass   bool
	sortKey    string
	ascending  bool
)

var (
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	screenerSvc := service.NewScreenerService(cfg, repository.NewScreenerDataRepository(cfg, appLogger), appLogger)
	if err := screenerSvc.Load(cmd.Context()); err != nil {
		return err
	}

	params := service.ApplyFilters(service.DefaultParams(), dto.FilterInput{Query: query, Sector: sector, OnlyPass: onlyPass})
	// A header click on a new key sorts descending; a second click flips it.
	if sortKey != params.SortKey {
		if params, err = service.ToggleSort(params, sortKey); err != nil {
			return err
		}
	}
	if ascending {
		if params, err = service.ToggleSort(params, sortKey); err != nil {
			return err
		}
	}
	view := screenerSvc.View(params)

	fmt.Println(view.Status)
	fmt.Println(renderTable(view))
	fmt.Printf("%d of %d rows\n", len(view.Rows), view.TotalCount)
	return nil
}

func styled(c dto.Cell) string {
	if c.Class == service.ClassGood {
		return goodStyle.Render(c.Text)
	}
	return badStyle.Render(c.Text)
}

func renderTable(view *dto.PageView) *table.Table {
	headers := make([]string, 0, len(view.Columns))
	for _, col := range view.Columns {
		label := col.Label
		switch col.Direction {
		case "asc":
			label += " ▲"
		case "desc":
			label += " ▼"
		}
		headers = append(headers, label)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, r := range view.Rows {
		t.Row(r.Score, r.Ticker, r.Company, r.Sector, r.Price, r.RSI, r.MA50,
			styled(r.PvsMA50), styled(r.Ret3M), styled(r.RelVol))
	}
	return t
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{Use: "screener", SilenceUsage: true}
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Loads the dataset once and prints the filtered, sorted table",
		RunE:  runView,
	}

	viewCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-screener.yaml", "Path to the configuration file")
	viewCmd.Flags().StringVarP(&query, "query", "q", "", "Text filter on ticker or company")
	viewCmd.Flags().StringVarP(&sector, "sector", "s", common.AllSectors, "Sector filter")
	viewCmd.Flags().BoolVar(&onlyPass, "only-pass", false, "Keep only rows passing the screen")
	viewCmd.Flags().StringVar(&sortKey, "sort", common.DefaultSortKey, "Row attribute to sort on")
	viewCmd.Flags().BoolVar(&ascending, "asc", false, "Sort ascending instead of descending")

	rootCmd.AddCommand(viewCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing screener CLI: %s\n", err)
		os.Exit(1)
	}
}
