package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/grigio/network-monitor/internal/config"
	"github.com/grigio/network-monitor/internal/docker"
	"github.com/grigio/network-monitor/internal/monitor"
	"github.com/grigio/network-monitor/internal/output"
	"github.com/grigio/network-monitor/internal/procio"
	"github.com/grigio/network-monitor/internal/resolve"
	"github.com/grigio/network-monitor/internal/source"
	"github.com/grigio/network-monitor/internal/ui"
)

var (
	jsonOutput      bool
	refreshInterval int
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output one snapshot in JSON format (for scripting/agent consumption)")
	rootCmd.PersistentFlags().IntVarP(&refreshInterval, "interval", "i", 0, "Refresh interval in seconds (overrides the saved setting)")
}

var rootCmd = &cobra.Command{
	Use:   "network-monitor",
	Short: "Monitor network connections with per-process throughput",
	Long: `network-monitor is a TUI application that samples the host's sockets,
attributes throughput to the owning processes and resolves remote
endpoints to hostnames in the background.

With --json (or when stdout is not a terminal) it prints a single
snapshot and exits, for scripting:
  network-monitor --json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.InitSettings(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: using default settings: %v\n", err)
		}
		if err := config.InitTheme(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: using default theme: %v\n", err)
		}

		// JSON mode: explicit flag or non-TTY stdout
		if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
			runJSONMode()
			return
		}

		builder, cache := wireBuilder()
		m := ui.NewModel(builder, cache, currentInterval())
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// wireBuilder assembles the sampling pipeline from live components.
func wireBuilder() (*monitor.Builder, *resolve.Cache) {
	io := procio.NewReader()
	src := source.NewReader(io)

	cache := resolve.NewCache()
	cache.SetEnabled(config.CurrentSettings.ResolveHosts)

	var containers docker.Resolver
	if config.CurrentSettings.DockerContainers {
		containers = docker.NewResolver()
	}

	return monitor.NewBuilder(src, io, cache, containers), cache
}

func currentInterval() time.Duration {
	seconds := config.CurrentSettings.RefreshSeconds
	if refreshInterval > 0 {
		seconds = refreshInterval
	}
	return time.Duration(seconds) * time.Second
}

func runJSONMode() {
	builder, _ := wireBuilder()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot, err := builder.Build(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error collecting data: %v\n", err)
		os.Exit(1)
	}

	if err := output.RenderJSON(os.Stdout, snapshot); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering JSON: %v\n", err)
		os.Exit(1)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
