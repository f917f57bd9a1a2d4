package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vocalq/dialctl/internal/config"
	"github.com/vocalq/dialctl/internal/console"
	"github.com/vocalq/dialctl/internal/engine"
)

// Command flags
var (
	engineURL    string
	outputFormat string
	timeoutSecs  int
)

func init() {
	// Common flags for engine commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&engineURL, "engine", "", "Engine base URL (overrides config and DIALCTL_ENGINE_URL)")
	rootCmd.PersistentFlags().IntVar(&timeoutSecs, "timeout", 10, "Request timeout in seconds")

	// Add subcommands directly to root
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(configCmd)
}

// newEngineClient resolves the engine URL and builds a client from it.
// Resolution order: --engine flag, DIALCTL_ENGINE_URL, config file, default.
func newEngineClient() (*engine.Client, *config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	client := engine.NewClient(config.ResolveEngineURL(engineURL, settings))
	if timeoutSecs > 0 {
		client.SetTimeout(time.Duration(timeoutSecs) * time.Second)
	}
	return client, settings, nil
}

// consoleCmd launches the interactive dashboard
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Launch the interactive console",
	Long: `Launch the interactive console for the outbound call engine.

The console shows live engine status (run state, queue depth, active call)
refreshed every few seconds, and accepts comma-separated phone numbers for
submitting a new batch.`,
	Example: `  # Launch the console against the configured engine
  dialctl console
  # Or simply (console is default):
  dialctl

  # Launch against a specific engine instance
  dialctl console --engine http://10.0.0.5:8000`,
	RunE: runConsole,
}

func runConsole(cmd *cobra.Command, args []string) error {
	client, settings, err := newEngineClient()
	if err != nil {
		return err
	}

	interval := time.Duration(settings.Engine.PollIntervalSeconds) * time.Second

	if err := console.Run(client, interval); err != nil {
		return fmt.Errorf("console error: %w", err)
	}
	return nil
}

// statusCmd fetches and prints the engine status once
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show engine status",
	Long: `Fetch and display the current engine status.

Shows whether the dialing loop is running, how many numbers remain in the
queue, and the SID of the call in progress (if any).`,
	Example: `  # Human-readable status
  dialctl status

  # Compact one-line output
  dialctl status --format compact

  # JSON output for scripting
  dialctl status --format json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, _, err := newEngineClient()
	if err != nil {
		return err
	}

	status, err := client.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	switch outputFormat {
	case "compact":
		fmt.Println(status.FormatCompact())
	case "json":
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "detailed":
		fallthrough
	default:
		fmt.Println(console.RenderStatusReport(status))
	}

	return nil
}

// startCmd submits a batch of phone numbers without the interactive console
var startCmd = &cobra.Command{
	Use:   "start <numbers>",
	Short: "Submit phone numbers for dialing",
	Long: `Submit a batch of phone numbers to the engine and start dialing.

Numbers are comma-separated. Whitespace around each number is trimmed and
empty entries are dropped, so trailing commas are harmless. Arguments may
also be passed separately; they are joined with commas first.`,
	Example: `  # Submit two numbers
  dialctl start "+1234567890, +1987654321"

  # Separate arguments work too
  dialctl start +1234567890 +1987654321`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	numbers := engine.ParseNumbers(strings.Join(args, ","))
	if len(numbers) == 0 {
		return fmt.Errorf("no phone numbers given")
	}

	client, _, err := newEngineClient()
	if err != nil {
		return err
	}

	fmt.Printf("Submitting %d number(s) to %s...\n", len(numbers), client.BaseURL)

	result, err := client.StartCalls(numbers)
	if err != nil {
		return fmt.Errorf("failed to start calls: %w", err)
	}

	fmt.Printf("✓ %s\n", result.Message)
	return nil
}

// configCmd manages the persisted settings file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dialctl configuration",
	Long: `View or change the persisted dialctl settings.

Settings are stored in a YAML file in the platform config directory
(~/.config/dialctl/config.yaml on Linux).`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}

		path, _ := config.GetConfigPath()
		fmt.Printf("Config file: %s\n\n", path)
		fmt.Printf("Engine URL:    %s\n", settings.Engine.URL)
		fmt.Printf("Poll interval: %ds\n", settings.Engine.PollIntervalSeconds)
		return nil
	},
}

var configSetEngineCmd = &cobra.Command{
	Use:   "set-engine <url>",
	Short: "Set the default engine URL",
	Example: `  dialctl config set-engine http://10.0.0.5:8000`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}

		settings.Engine.URL = strings.TrimRight(args[0], "/")
		if err := settings.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("✓ Engine URL set to %s\n", settings.Engine.URL)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetEngineCmd)
}
