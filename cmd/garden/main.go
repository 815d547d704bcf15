package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"moodgarden/cmd/garden/app"
	"moodgarden/internal/config"
	"moodgarden/internal/empathy"
	"moodgarden/internal/history"
	"moodgarden/internal/logging"
	"moodgarden/internal/registry"
	"moodgarden/internal/stats"
)

var version = "0.3.0"

var (
	verbose bool

	logger *zap.Logger
)

// rootCmd starts the garden. Run without arguments for the interactive TUI.
var rootCmd = &cobra.Command{
	Use:   "garden",
	Short: "心情花园 - an emotional sharing garden in your terminal",
	Long: `garden grows a small emotional garden in your terminal.

Post a mood and watch it bloom as a pulsing node among everyone else's,
echo or comment on the moods you find, and let the garden whisper back
through a generative-language model.

Run without arguments to open the garden. Set GEMINI_API_KEY (or the
api_key field in .garden/config.json) to enable the AI whispers; without
a key the garden still grows, it just answers with its own words.`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGarden()
	},
}

// statsCmd prints the personal history figures without opening the TUI.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print your mood distribution and 7-day trend",
	RunE:  runStats,
}

var clearYes bool

// clearHistoryCmd wipes the locally persisted logs.
var clearHistoryCmd = &cobra.Command{
	Use:   "clear-history",
	Short: "Erase the locally stored mood and chat history",
	RunE:  runClearHistory,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("garden %s\n", version)
	},
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The TUI has its own categorized file logging.
		if cmd == rootCmd {
			return nil
		}
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	clearHistoryCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(statsCmd, clearHistoryCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGarden() error {
	cfg, err := config.Load()
	if err != nil {
		// Load already fell back to defaults; a broken config file
		// should not keep the garden from opening.
		fmt.Fprintf(os.Stderr, "warning: using default config: %v\n", err)
	}
	dataDir, err := config.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data directory: %w", err)
	}
	if err := logging.Initialize(dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logging.CloseAll()

	store, err := openStore(dataDir)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	reg := registry.New()
	reg.Seed()

	clientCfg := empathy.DefaultClientConfig(cfg.APIKey)
	if cfg.Model != "" {
		clientCfg.Model = cfg.Model
	}
	svc := empathy.NewService(empathy.NewClient(clientCfg))

	m := app.New(cfg, reg, svc, store)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("garden exited: %w", err)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openDefaultStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records := history.LoadMoodLog(store).Records()
	logger.Debug("loaded personal history", zap.Int("records", len(records)))
	if len(records) == 0 {
		fmt.Println("还没有记录过心情。打开 garden 种下第一朵吧。")
		return nil
	}

	fmt.Println("心情分布")
	for _, s := range stats.Distribution(records) {
		fmt.Printf("  %-4s %5.1f%%  (%d)\n", s.Category.Label(), s.Percent, s.Count)
	}
	fmt.Println("\n最近七天")
	for _, b := range stats.WeeklyTrend(records, time.Now()) {
		fmt.Printf("  %s  %s %d\n", b.Date.Format("01-02"), strings.Repeat("●", b.Count), b.Count)
	}
	if dom, ok := stats.Dominant(records); ok {
		fmt.Printf("\n最常来访的心情: %s\n", dom.Label())
	}
	return nil
}

func runClearHistory(cmd *cobra.Command, args []string) error {
	if !clearYes {
		fmt.Print("确定要清空本地的心情与聊天记录吗? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("保留记录。")
			return nil
		}
	}

	store, err := openDefaultStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := history.LoadMoodLog(store).Clear(); err != nil {
		return fmt.Errorf("clear mood history: %w", err)
	}
	if err := history.LoadChatLog(store).Clear(); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	logger.Info("local history cleared")
	fmt.Println("记录已清空。")
	return nil
}

func openDefaultStore() (*history.Store, error) {
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}
	return openStore(dataDir)
}

func openStore(dataDir string) (*history.Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return history.Open(filepath.Join(dataDir, "history.db"))
}
