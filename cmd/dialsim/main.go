// Dialsim is a local simulator for the VocalQ outbound call engine.
//
// It serves the engine's HTTP API on localhost and drains submitted phone
// numbers sequentially without placing real calls. Point dialctl at it to
// develop or demo the console without live telephony credentials.
//
// Usage:
//
//	dialsim [flags]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vocalq/dialctl/internal/logging"
	"github.com/vocalq/dialctl/internal/sim"
	"github.com/vocalq/dialctl/internal/version"
)

var (
	host         string
	port         int
	callDuration time.Duration
	logLevel     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dialsim",
	Short: "VocalQ Outbound Engine Simulator",
	Long: `A local simulator for the VocalQ outbound call engine.

Serves the engine's status and start endpoints and processes submitted
numbers one at a time, each "call" lasting a fixed duration. No real calls
are placed.`,
	Example: `  # Run on the default engine port
  dialsim

  # Faster calls on a custom port
  dialsim --port 9000 --call-duration 500ms`,
	Version: version.Version,
	RunE:    runSimulator,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringVar(&host, "host", "", "Host to bind (empty = all interfaces)")
	rootCmd.Flags().IntVar(&port, "port", 8000, "Port to listen on")
	rootCmd.Flags().DurationVar(&callDuration, "call-duration", 2*time.Second, "How long each simulated call lasts")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runSimulator(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	server := sim.New(sim.Config{
		Host:         host,
		Port:         port,
		CallDuration: callDuration,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("Simulator listening on %s:%d (call duration %s)\n", host, port, callDuration)
	fmt.Println("Press Ctrl+C to stop.")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return <-errCh
}
