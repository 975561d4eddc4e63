package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tinytelemetry/aetheris/internal/jikan"
	"github.com/tinytelemetry/aetheris/internal/logging"
	"github.com/tinytelemetry/aetheris/internal/tui"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

var (
	configPath string
	logLevel   string

	topFilter string
	topPage   int
)

var rootCmd = &cobra.Command{
	Use:   "aetheris",
	Short: "Browse anime from the terminal",
	Long: `aetheris is a terminal anime catalog backed by the Jikan API.

Run without arguments to open the interactive browser. The subcommands
print listings and details without starting the TUI.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck
		return runTUI(cfg, log)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "aetheris - Terminal Anime Catalog\n")
		fmt.Fprintf(out, "  Version:    %s\n", version)
		fmt.Fprintf(out, "  Commit:     %s\n", commit)
		fmt.Fprintf(out, "  Built:      %s\n", buildTime)
		fmt.Fprintf(out, "  Go version: %s\n", goVersion)
	},
}

var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "List the anime airing this season",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, func(ctx context.Context, c *jikan.Client) error {
			page, err := c.SeasonNow(ctx, 1)
			if err != nil {
				return err
			}
			printAnimeTable(cmd.OutOrStdout(), page.Items)
			return nil
		})
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the top anime rankings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tab, err := jikan.ParseTopTab(topFilter)
		if err != nil {
			return err
		}
		if topPage < 1 {
			return fmt.Errorf("invalid --page: %d", topPage)
		}
		return withClient(cmd, func(ctx context.Context, c *jikan.Client) error {
			page, err := tab.Fetch(ctx, c, topPage)
			if err != nil {
				return err
			}
			printAnimeTable(cmd.OutOrStdout(), page.Items)
			if page.Pagination.HasNextPage {
				fmt.Fprintf(cmd.OutOrStdout(), "\nmore results: --page %d\n", topPage+1)
			}
			return nil
		})
	},
}

var animeCmd = &cobra.Command{
	Use:   "anime <id>",
	Short: "Show one anime by MyAnimeList id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid anime id %q", args[0])
		}
		return withClient(cmd, func(ctx context.Context, c *jikan.Client) error {
			d, err := c.AnimeDetail(ctx, id)
			if err != nil {
				return err
			}
			printAnimeDetail(cmd.OutOrStdout(), d)
			return nil
		})
	},
}

func init() {
	var tabs []string
	for _, t := range jikan.TopTabs {
		tabs = append(tabs, string(t))
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/aetheris/config.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	topCmd.Flags().StringVar(&topFilter, "filter", string(jikan.TabAll), "listing: "+strings.Join(tabs, "|"))
	topCmd.Flags().IntVar(&topPage, "page", 1, "page number")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(seasonCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(animeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and opens the log file.
func setup() (appConfig, *zap.Logger, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return cfg, nil, err
	}
	log.Info("starting",
		zap.String("version", version),
		zap.String("config", cfg.ConfigPath),
		zap.String("api", cfg.APIBaseURL),
	)
	return cfg, log, nil
}

func newClient(cfg appConfig, log *zap.Logger) *jikan.Client {
	return jikan.NewClient(jikan.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.RateBurst,
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
		UserAgent: cfg.UserAgent + " (" + version + ")",
		Logger:    log,
	})
}

// withClient runs fn with a client and a context canceled on interrupt.
func withClient(cmd *cobra.Command, fn func(context.Context, *jikan.Client) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return fn(ctx, newClient(cfg, log))
}

func runTUI(cfg appConfig, log *zap.Logger) error {
	if err := tui.InitializeSkin(cfg.Skin, cfg.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load skin '%s': %v (using default)\n", cfg.Skin, err)
		log.Warn("skin not loaded", zap.String("skin", cfg.Skin), zap.Error(err))
	}

	app := tui.New(tui.Options{
		Catalog:            newClient(cfg, log),
		Carousel:           cfg.carousel(),
		ReverseScrollWheel: cfg.ReverseScrollWheel,
		Logger:             log.Named("tui"),
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
