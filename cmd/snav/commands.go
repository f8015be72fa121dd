package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"snav/internal/config"
	"snav/internal/loader"
	"snav/internal/logging"
	"snav/internal/session"
	"snav/internal/ui"
	"snav/internal/version"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
	logFile    string
	width      int
	height     int
}

var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "snav",
		Short: "Spatial navigation over hierarchical, scrollable documents",
		Long: `snav renders a document in the terminal and moves an interest cursor
between its elements with the arrow keys, choosing the nearest element in the
pressed direction while respecting nested scrollable regions.

Documents are YAML layouts (.yaml, .yml) or HTML files (.html, .htm) whose
elements carry their geometry in inline styles.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default ./"+config.FileName+" or the user config dir)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); overrides the config")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Log file; overrides the config")
	root.PersistentFlags().IntVar(&opts.width, "width", 0, "Viewport width for documents that declare none (default: terminal width, or 80)")
	root.PersistentFlags().IntVar(&opts.height, "height", 0, "Viewport height for documents that declare none (default: terminal height, or 24)")

	root.AddCommand(
		newRunCmd(opts),
		newTraceCmd(opts),
		newDumpCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Navigate a document interactively",
		Example: `  # Arrow keys move, enter activates, esc blurs, v lists visible targets
  snav run catalog.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts, args[0])
		},
	}
}

func newTraceCmd(opts *rootOptions) *cobra.Command {
	var keys []string
	var dump bool

	cmd := &cobra.Command{
		Use:   "trace FILE",
		Short: "Replay key presses headlessly and print each step",
		Example: `  # Move down twice, then activate
  snav trace catalog.yaml --keys down,down,enter

  # Finish with the visible set
  snav trace catalog.html --keys right,right --dump`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, args[0], func(s *session.Session, _ logr.Logger) error {
				out := cmd.OutOrStdout()
				if err := printSteps(out, s.Trace(keys)); err != nil {
					return err
				}
				if dump {
					return s.Dump(out, true)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVarP(&keys, "keys", "k", nil, "Comma-separated key names to press in order")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the visible set after the last key")
	return cmd
}

func newDumpCmd(opts *rootOptions) *cobra.Command {
	var visibleOnly bool

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "List the navigable elements of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, args[0], func(s *session.Session, _ logr.Logger) error {
				return s.Dump(cmd.OutOrStdout(), visibleOnly)
			})
		},
	}
	cmd.Flags().BoolVar(&visibleOnly, "visible", false, "Only list elements currently visible")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "snav %s\n", version.String())
		},
	}
}

// loadConfig reads --config when given, otherwise the default location.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.NewConfigServiceAt(path).LoadFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.NewConfigService().Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(opts *rootOptions, cfg *config.Config) (*logging.Logger, error) {
	logOpts := logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Format: cfg.Log.Format,
	}
	if opts.logLevel != "" {
		logOpts.Level = opts.logLevel
	}
	if opts.logFile != "" {
		logOpts.File = opts.logFile
	}
	return logging.New(logOpts)
}

// viewportSize resolves the document viewport: flags first, then the
// terminal, then the loader defaults.
func viewportSize(opts *rootOptions) loader.Options {
	size := loader.DefaultOptions()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		size.Width, size.Height = float64(w), float64(h)
	}
	if opts.width > 0 {
		size.Width = float64(opts.width)
	}
	if opts.height > 0 {
		size.Height = float64(opts.height)
	}
	return size
}

// withSession loads the config, logger and document, runs fn on a session
// over the document, and tears everything down afterwards.
func withSession(ctx context.Context, opts *rootOptions, path string, fn func(*session.Session, logr.Logger) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	log, err := newLogger(opts, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() {
		err = errors.Join(err, log.Sync())
	}()

	doc, err := loader.LoadFile(path, viewportSize(opts))
	if err != nil {
		return err
	}
	log.V(1).Info("document loaded", "path", path, "viewport", doc.Viewport())

	s, err := session.New(ctx, doc, cfg, session.Options{Log: log.Logger})
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer s.Close()

	return fn(s, log.Logger)
}

func runInteractive(cmd *cobra.Command, opts *rootOptions, path string) error {
	if !isTerminal() {
		return fmt.Errorf("run needs an interactive terminal; use 'snav trace' or 'snav dump' instead")
	}

	return withSession(cmd.Context(), opts, path, func(s *session.Session, log logr.Logger) error {
		model := ui.NewModel(s, log)
		defer model.Close()

		p := tea.NewProgram(model, tea.WithAltScreen())
		model.SetProgram(p)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
		return nil
	})
}

// printSteps writes one table row per traced key.
func printSteps(w io.Writer, steps []session.Step) error {
	rows := make([][]string, 0, len(steps))
	for i, step := range steps {
		outcome := "-"
		if step.Action == "navigate" {
			outcome = step.Outcome.String()
		}
		scrolled := "-"
		if step.Scrolled != nil {
			scrolled = step.Scrolled.ID()
		}
		interest := "-"
		if step.Interest != nil {
			interest = step.Interest.ID()
		}
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			step.Key,
			step.Action,
			fmt.Sprint(step.Handled),
			outcome,
			scrolled,
			interest,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "KEY", "ACTION", "HANDLED", "OUTCOME", "SCROLLED", "INTEREST").
		Rows(rows...)
	_, err := fmt.Fprintln(w, strings.TrimRight(t.Render(), "\n"))
	return err
}
