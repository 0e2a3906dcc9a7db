package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/baron-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration settings",
		Long: `Show baron configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (BARON_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default game and player) are stored in ~/.baron/config.json

Example:
  baron config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := handler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Baron Configuration")
			fmt.Fprintln(out, "===================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", handler.GetConfigPath())
			fmt.Fprintf(out, "  Default Game:     %s\n", orDash(userCfg.DefaultGameID))
			fmt.Fprintf(out, "  Default Player:   %s\n", orDash(userCfg.DefaultPlayer))

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			if cfg.Database.Type == "sqlite" {
				fmt.Fprintf(out, "  Path:             %s\n", orDash(cfg.Database.Path))
			} else if cfg.Database.URL != "" {
				fmt.Fprintln(out, "  URL:              (set)")
			} else {
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}

			fmt.Fprintln(out, "\nDaemon:")
			fmt.Fprintf(out, "  Address:          %s\n", cfg.Daemon.Address)
			fmt.Fprintf(out, "  Socket Path:      %s\n", cfg.Daemon.SocketPath)
			fmt.Fprintf(out, "  Max Sessions:     %d\n", cfg.Daemon.MaxSessions)
			fmt.Fprintf(out, "  Action Rate:      %.1f/s (burst: %d)\n",
				cfg.Daemon.ActionRate.PerSecond, cfg.Daemon.ActionRate.Burst)

			fmt.Fprintln(out, "\nGame:")
			fmt.Fprintf(out, "  Default Variant:  %s\n", cfg.Game.DefaultVariant)
			fmt.Fprintf(out, "  Rules Dir:        %s\n", orDash(cfg.Game.RulesDir))

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			return nil
		},
	}

	return cmd
}
