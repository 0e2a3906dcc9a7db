package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	grpcAdapter "github.com/andrescamacho/baron-go/internal/adapters/grpc"
	"github.com/andrescamacho/baron-go/internal/infrastructure/config"
)

// NewGameCommand creates the game command with subcommands
func NewGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Create and play games",
		Long: `Create games, submit actions and inspect game state.

Commands that act on a game use --game, or the default game set with
'baron game use'. Actions are submitted as the player given by --as, or the
default player.

Examples:
  baron game new --players alice,bob --variant 1860
  baron game list --status ACTIVE
  baron game use <game-id> --as alice
  baron game show
  baron game act pass
  baron game ledger --party alice --limit 20`,
	}

	cmd.AddCommand(newGameNewCommand())
	cmd.AddCommand(newGameShowCommand())
	cmd.AddCommand(newGameActCommand())
	cmd.AddCommand(newGameLedgerCommand())
	cmd.AddCommand(newGameListCommand())
	cmd.AddCommand(newGameUseCommand())

	return cmd
}

func newGameNewCommand() *cobra.Command {
	var (
		variant string
		players []string
		use     bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new game",
		Long: `Create a new game for the given players, seated in the order given.

The daemon's default variant is used when --variant is not given.

Examples:
  baron game new --players alice,bob,carol
  baron game new --players alice,bob --variant 1860 --use`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(players) == 0 {
				return fmt.Errorf("--players flag is required")
			}

			return withClient(func(ctx context.Context, client *grpcAdapter.GameClient) error {
				created, err := client.CreateGame(ctx, variant, players)
				if err != nil {
					return fmt.Errorf("failed to create game: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Game %s created\n\n", created.GameID)
				displayGameState(out, created.State)

				if use {
					handler, err := config.NewUserConfigHandler()
					if err != nil {
						return fmt.Errorf("failed to create user config handler: %w", err)
					}
					if err := handler.Use(created.GameID, players[0]); err != nil {
						return fmt.Errorf("failed to set default game: %w", err)
					}
					fmt.Fprintf(out, "\nNow playing %s as %s\n", created.GameID, players[0])
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "Rules variant")
	cmd.Flags().StringSliceVar(&players, "players", nil, "Comma separated player names in seating order")
	cmd.Flags().BoolVar(&use, "use", false, "Make the new game the default, acting as the first player")

	return cmd
}

func newGameShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the state of a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withClient(func(ctx context.Context, client *grpcAdapter.GameClient) error {
				state, err := client.GetGameState(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to get game: %w", err)
				}
				displayGameState(cmd.OutOrStdout(), state)
				return nil
			})
		},
	}

	return cmd
}

func newGameLedgerCommand() *cobra.Command {
	var (
		party  string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "List the transactions of a game",
		Long: `List the transactions recorded in a game's ledger, oldest first.

Examples:
  baron game ledger
  baron game ledger --party alice
  baron game ledger --limit 20 --offset 40`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}

			return withClient(func(ctx context.Context, client *grpcAdapter.GameClient) error {
				reply, err := client.GetLedger(ctx, grpcAdapter.GetLedgerRequest{
					GameID: id,
					Party:  party,
					Limit:  limit,
					Offset: offset,
				})
				if err != nil {
					return fmt.Errorf("failed to get ledger: %w", err)
				}

				out := cmd.OutOrStdout()
				displayTransactions(out, reply.Transactions)
				fmt.Fprintf(out, "\nShowing %d of %d transactions\n", len(reply.Transactions), reply.Total)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&party, "party", "", "Only transactions where this shareholder is buyer or seller")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")

	return cmd
}

func newGameListCommand() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client *grpcAdapter.GameClient) error {
				games, err := client.ListGames(ctx, status)
				if err != nil {
					return fmt.Errorf("failed to list games: %w", err)
				}
				displayGames(cmd.OutOrStdout(), games)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (ACTIVE or FINISHED)")

	return cmd
}

func newGameUseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use [game-id]",
		Short: "Set the default game and player",
		Long: `Set the game and player used when --game and --as are not given.
Without arguments the defaults are cleared.

Examples:
  baron game use 0b8c1f7e-... --as alice
  baron game use`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				if err := handler.Clear(); err != nil {
					return fmt.Errorf("failed to clear defaults: %w", err)
				}
				fmt.Fprintln(out, "✓ Default game and player cleared")
				return nil
			}

			if err := handler.Use(args[0], playerName); err != nil {
				return fmt.Errorf("failed to set default game: %w", err)
			}
			fmt.Fprintf(out, "✓ Default game set to %s\n", args[0])
			if playerName != "" {
				fmt.Fprintf(out, "  Acting as:  %s\n", playerName)
			}
			return nil
		},
	}

	return cmd
}
