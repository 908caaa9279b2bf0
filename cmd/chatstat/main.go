// Package main provides the CLI entrypoint for chatstat.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mlvnd/chatstat/internal/config"
	"github.com/mlvnd/chatstat/internal/emoji"
	"github.com/mlvnd/chatstat/internal/model"
	"github.com/mlvnd/chatstat/internal/registry"
	"github.com/mlvnd/chatstat/internal/stats"
	"github.com/mlvnd/chatstat/internal/transcript"
	"github.com/mlvnd/chatstat/internal/tui"
)

const (
	defaultTopEmojis = 10
	defaultBins      = 16
)

var (
	showDaily  bool
	showHourly bool
	showReply  bool
	topEmojis  int
	plotBins   int
	plotWidth  int
	verbose    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chatstat <file>...",
		Short:         "Chat transcript statistics",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		},
		RunE: runAnalyzeCmd,
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.Flags().BoolVar(&showDaily, "daily", false, "plot daily message counts")
	rootCmd.Flags().BoolVar(&showHourly, "hourly", false, "plot hourly message counts")
	rootCmd.Flags().BoolVar(&showReply, "reply-time", false, "plot reply-time histograms")
	rootCmd.Flags().IntVar(&topEmojis, "top-emojis", defaultTopEmojis, "emoji rows in the report")
	rootCmd.Flags().IntVar(&plotBins, "bins", defaultBins, "reply-time histogram bins")
	rootCmd.Flags().IntVar(&plotWidth, "width", 0, "chart width in cells (0 = terminal width)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTuiCmd())

	return rootCmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "top-emojis", &topEmojis, fileCfg.Report.TopEmojis)
	applyIntConfig(cmd, "bins", &plotBins, fileCfg.Plot.Bins)
	applyIntConfig(cmd, "width", &plotWidth, fileCfg.Plot.Width)

	if topEmojis <= 0 {
		return fmt.Errorf("--top-emojis must be > 0")
	}
	if plotBins <= 0 {
		return fmt.Errorf("--bins must be > 0")
	}
	if plotWidth < 0 {
		return fmt.Errorf("--width must be >= 0")
	}

	chats, reg, err := loadChats(args)
	if err != nil {
		return err
	}
	acc := stats.Accumulate(chats, emoji.Find)

	out := cmd.OutOrStdout()
	if err := stats.RenderReport(out, acc, chats, reg, topEmojis); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if showHourly {
		if err := stats.RenderHourly(out, acc, chats, reg, plotWidth); err != nil {
			return fmt.Errorf("failed to render hourly chart: %w", err)
		}
	}
	if showDaily {
		if err := stats.RenderDaily(out, acc, chats, reg, plotWidth); err != nil {
			return fmt.Errorf("failed to render daily chart: %w", err)
		}
	}
	if showReply {
		if err := stats.RenderReplyTimes(out, acc, chats, reg, plotBins, plotWidth); err != nil {
			return fmt.Errorf("failed to render reply-time chart: %w", err)
		}
	}
	return nil
}

func newTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui <file>...",
		Short: "Browse statistics interactively",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTuiCmd,
	}
	cmd.Flags().IntVar(&topEmojis, "top-emojis", defaultTopEmojis, "emoji rows in the report")
	cmd.Flags().IntVar(&plotBins, "bins", defaultBins, "reply-time histogram bins")
	return cmd
}

func runTuiCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "top-emojis", &topEmojis, fileCfg.Report.TopEmojis)
	applyIntConfig(cmd, "bins", &plotBins, fileCfg.Plot.Bins)

	if topEmojis <= 0 {
		return fmt.Errorf("--top-emojis must be > 0")
	}
	if plotBins <= 0 {
		return fmt.Errorf("--bins must be > 0")
	}

	chats, reg, err := loadChats(args)
	if err != nil {
		return err
	}
	acc := stats.Accumulate(chats, emoji.Find)

	model := tui.NewModel(acc, chats, reg, topEmojis, plotBins)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadChats(paths []string) ([]model.Chat, *registry.Registry, error) {
	reg := registry.New()
	chats := make([]model.Chat, 0, len(paths))
	for _, path := range paths {
		chat, err := transcript.Load(path, reg)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("chat", chat.Label).Int("messages", len(chat.Messages)).Msg("loaded transcript")
		chats = append(chats, chat)
	}
	return chats, reg, nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# chatstat configuration
# Uncomment a value to enable it. CLI flags override config values.

[report]
# top-emojis = %d        # Emoji rows in the report

[plot]
# bins = %d              # Reply-time histogram bins
# width = 0              # Chart width in cells (0 = terminal width)
`,
		defaultTopEmojis,
		defaultBins,
	)
}
