package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	socketPath    string
	daemonAddress string
	configPath    string
	gameID        string
	playerName    string
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "baron",
		Short: "Baron CLI - play 18xx games through the baron daemon",
		Long: `Baron CLI creates and plays 18xx games hosted by the baron daemon.
The CLI communicates with the daemon via Unix socket (or TCP with --address).

Examples:
  baron game new --players alice,bob,carol
  baron game use <game-id> --as alice
  baron game act bid --amount 30
  baron game act select_certificate --certificate BHC-0
  baron game show
  baron game ledger --party alice
  baron rules show 1860`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", getDefaultSocketPath(),
		"Path to daemon Unix socket (empty to use --address)")
	rootCmd.PersistentFlags().StringVar(&daemonAddress, "address", "",
		"Daemon TCP address (host:port)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file")
	rootCmd.PersistentFlags().StringVarP(&gameID, "game", "g", "",
		"Game ID (defaults to the game set with 'baron game use')")
	rootCmd.PersistentFlags().StringVar(&playerName, "as", "",
		"Player to act as (defaults to the player set with 'baron game use')")

	// Add command groups
	rootCmd.AddCommand(NewGameCommand())
	rootCmd.AddCommand(NewRulesCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewDaemonCommand())

	return rootCmd
}

// getDefaultSocketPath returns the default socket path
func getDefaultSocketPath() string {
	if path := os.Getenv("BARON_SOCKET"); path != "" {
		return path
	}
	return "/tmp/baron-daemon.sock"
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
