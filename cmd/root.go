package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ari/clemstats/internal/config"
	"github.com/ari/clemstats/internal/dates"
	"github.com/ari/clemstats/internal/library"
	"github.com/ari/clemstats/internal/logging"
	"github.com/ari/clemstats/internal/player"
	"github.com/ari/clemstats/internal/summary"
	"github.com/ari/clemstats/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	databasePath string
	cfg          *config.Config
	debug        bool
)

var (
	statsSplit  string
	statsFrom   string
	statsTo     string
	statsJSON   bool
	monthlyJSON bool
	rawTrack    bool
)

// now is the clock the monthly summary runs against
var now = time.Now

var rootCmd = &cobra.Command{
	Use:   "clemstats",
	Short: "Listening statistics for the Clementine music player",
	Long: `A CLI tool that reads the Clementine music player database and reports
on the collection, on what was played when and on the monthly listening activity.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help command
		if cmd.Name() == "help" {
			return nil
		}
		var err error
		cfg, err = config.LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if databasePath != "" {
			cfg.Database = databasePath
		}
		if err := logging.Setup(cfg.LogLevel, debug); err != nil {
			return err
		}
		ui.SetColor(cfg.Display.Color)

		logrus.WithFields(logrus.Fields{
			"config":   cfgPath,
			"database": cfg.Database,
		}).Debug("config loaded")
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show loaded configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		configFile := cfgPath
		if configFile == "" {
			configFile = config.DefaultConfigPath()
		}
		fmt.Fprintf(w, "Config loaded:\n")
		fmt.Fprintf(w, "  Config file: %s\n", configFile)
		fmt.Fprintf(w, "  Database: %s\n", cfg.Database)
		fmt.Fprintf(w, "  Log level: %s\n", cfg.LogLevel)
		fmt.Fprintf(w, "  Include unavailable: %v\n", cfg.Filter.IncludeUnavailable)
		fmt.Fprintf(w, "  Require played: %v\n", cfg.Filter.RequirePlayed)
		fmt.Fprintf(w, "  Column width: %d\n", cfg.Display.ColumnWidth)
		fmt.Fprintf(w, "  Color: %v\n", cfg.Display.Color)
		fmt.Fprintf(w, "  Player bus name: %s\n", cfg.Player.BusName)
		return nil
	},
}

// statsReport is the --json form of the stats command
type statsReport struct {
	Collection *library.Collection  `json:"collection"`
	From       *time.Time           `json:"from,omitempty"`
	To         *time.Time           `json:"to,omitempty"`
	Songs      []library.PlayedSong `json:"songs,omitempty"`
	Split      *library.Partition   `json:"split,omitempty"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Long: `Show the collection overview. With --from and/or --to, also list the songs
last played in that interval (one day long when only one end is given).
With --split, also count the songs last played before and after that date.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			start, end time.Time
			splitAt    time.Time
			err        error
		)
		if statsFrom != "" || statsTo != "" {
			if start, end, err = dates.ResolveInterval(statsFrom, statsTo, time.Local); err != nil {
				return err
			}
		}
		if statsSplit != "" {
			if splitAt, err = dates.Parse(statsSplit, time.Local); err != nil {
				return err
			}
		}

		lib, err := library.NewLibrary(cfg.Database, cfg.LibraryFilter())
		if err != nil {
			return err
		}
		defer lib.Close()

		ctx := cmd.Context()
		report := statsReport{}
		if report.Collection, err = lib.Overview(ctx); err != nil {
			return err
		}
		if !start.IsZero() {
			report.From, report.To = &start, &end
			if report.Songs, err = lib.PlayedBetween(ctx, start, end); err != nil {
				return err
			}
		}
		if !splitAt.IsZero() {
			if report.Split, err = lib.Partition(ctx, splitAt); err != nil {
				return err
			}
		}

		w := cmd.OutOrStdout()
		if statsJSON {
			return ui.WriteJSON(w, report)
		}
		ui.DisplayCollection(w, report.Collection)
		if report.From != nil {
			ui.DisplaySongList(w, report.Songs, start, end, cfg.Display.ColumnWidth)
		}
		if report.Split != nil {
			ui.DisplayPartition(w, report.Split)
		}
		return nil
	},
}

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Show songs played per month",
	Long: `Show how many songs were last played in each month and their total length,
from the first month with a play up to the current month. Months without
plays are listed with zero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := library.NewLibrary(cfg.Database, cfg.LibraryFilter())
		if err != nil {
			return err
		}
		defer lib.Close()

		months, err := lib.MonthlySummary(cmd.Context(), now())
		if errors.Is(err, summary.ErrEmptyInput) {
			months = []summary.MonthlyRecord{}
		} else if err != nil {
			return err
		}

		return writeMonthly(cmd.OutOrStdout(), months)
	},
}

func writeMonthly(w io.Writer, months []summary.MonthlyRecord) error {
	if monthlyJSON {
		return ui.WriteJSON(w, months)
	}
	if len(months) == 0 {
		fmt.Fprintln(w, "No song has been played yet.")
		return nil
	}
	ui.DisplayMonthly(w, months)
	return nil
}

var nowPlayingCmd = &cobra.Command{
	Use:   "nowplaying",
	Short: "Show the track Clementine is playing",
	Long:  "Ask the running Clementine over D-Bus (MPRIS2) for its current track.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		track, err := player.NowPlaying(cfg.Player.BusName)
		if err != nil {
			return err
		}
		ui.DisplayTrack(cmd.OutOrStdout(), track, rawTrack)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/clemstats/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&databasePath, "database", "", "path to clementine.db (overrides the config)")

	statsCmd.Flags().StringVar(&statsSplit, "split", "", "count songs last played before and after this date")
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "list songs last played from this date")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "list songs last played up to this date")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print the report as JSON")

	monthlyCmd.Flags().BoolVar(&monthlyJSON, "json", false, "print the summary as JSON")

	nowPlayingCmd.Flags().BoolVar(&rawTrack, "raw", false, "print every metadata field")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(monthlyCmd)
	rootCmd.AddCommand(nowPlayingCmd)
}
