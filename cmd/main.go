package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/f3rnandomoreno/cleaning-process-macos/config"
	"github.com/f3rnandomoreno/cleaning-process-macos/manager"
	"github.com/f3rnandomoreno/cleaning-process-macos/proc"
	"github.com/f3rnandomoreno/cleaning-process-macos/ui"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "cleanproc",
	Short: "Terminal process cleaner",
	Long: `cleanproc lists running processes sorted by memory usage, marks the
essential ones, and terminates the rest on request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Terminate every non-essential process and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClean()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cleanproc %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "[cleanproc] ", log.LstdFlags)
}

func runTUI() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Unprivileged runs still work; terminations just may be refused.
	rootWarning := os.Geteuid() != 0

	mgr := manager.New(proc.NewSystemProvider(), cfg.EssentialitySet(), nil, logger)

	p := tea.NewProgram(ui.NewModel(mgr, rootWarning), tea.WithAltScreen())
	mgr.SetSink(ui.NewBridge(p))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interval := time.Duration(cfg.RefreshIntervalSeconds) * time.Second
	go mgr.Run(ctx, interval)
	go config.Watch(ctx, logger, func(c *config.Config) {
		mgr.SetEssentials(c.EssentialitySet())
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func runClean() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if os.Geteuid() != 0 {
		fmt.Fprintln(os.Stderr, "warning: running without root privileges, some processes may refuse to terminate")
	}

	mgr := manager.New(proc.NewSystemProvider(), cfg.EssentialitySet(), nil, logger)
	mgr.RefreshNow()

	outcomes := mgr.TerminateAll()

	var terminated, failed int
	var permissionHint bool
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			if errors.Is(o.Err, proc.ErrPermissionDenied) {
				permissionHint = true
			}
			fmt.Fprintf(os.Stderr, "pid %d (%s): %v\n", o.Pid, o.Name, o.Err)
			continue
		}
		terminated++
	}

	fmt.Printf("Sent terminate signal to %d processes", terminated)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println(".")

	if permissionHint {
		fmt.Fprintln(os.Stderr, "some terminations were denied, try re-running with sudo")
	}
	return nil
}
