package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	grpcAdapter "github.com/andrescamacho/baron-go/internal/adapters/grpc"
	"github.com/andrescamacho/baron-go/internal/application/game/session"
	"github.com/andrescamacho/baron-go/internal/domain/action"
)

func newGameActCommand() *cobra.Command {
	var (
		dto      session.ActionDTO
		parPrice int
	)

	cmd := &cobra.Command{
		Use:       "act <type>",
		Short:     "Submit an action",
		ValidArgs: actionTypes(),
		Args:      cobra.ExactArgs(1),
		Long: `Submit an action to the current game as the current player.

Action types:
  ` + strings.Join(actionTypes(), "\n  ") + `

Operating actions (place_tile, place_token, run_trains, payout, retain,
buy_train, done) are submitted by the director of the operating company.

Examples:
  baron game act bid --amount 30
  baron game act pass
  baron game act select_certificate --certificate BHC-0
  baron game act start_company --company IOW --par 70
  baron game act buy_certificate --source "Initial Offering" --certificate IOW-3 --price 70
  baron game act sell_certificates --certificates IOW-3,IOW-4
  baron game act run_trains --amount 80
  baron game act buy_train --source "Initial Offering" --train 2+1T#0 --price 250`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID()
			if err != nil {
				return err
			}
			actor, err := resolvePlayer()
			if err != nil {
				return err
			}

			dto.Type = args[0]
			dto.Actor = actor
			if cmd.Flags().Changed("par") {
				dto.ParPrice = &parPrice
			}

			return withClient(func(ctx context.Context, client *grpcAdapter.GameClient) error {
				reply, err := client.PerformAction(ctx, id, dto)
				if err != nil {
					return fmt.Errorf("action rejected: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ %s by %s accepted (action #%d)\n", dto.Type, dto.Actor, reply.Sequence)
				if len(reply.Transactions) > 0 {
					fmt.Fprintln(out)
					displayTransactions(out, reply.Transactions)
				}
				fmt.Fprintln(out)
				displayTurn(out, reply.State)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&dto.Amount, "amount", 0, "Bid amount or train revenue")
	cmd.Flags().IntVar(&dto.Bonus, "bonus", 0, "Corporate bonus earned by a train run")
	cmd.Flags().IntVar(&dto.Price, "price", 0, "Price offered for a certificate or train")
	cmd.Flags().IntVar(&parPrice, "par", 0, "Par price of a company being started")
	cmd.Flags().StringVar(&dto.Source, "source", "", "Shareholder an item is bought from")
	cmd.Flags().StringVar(&dto.Certificate, "certificate", "", "Certificate identifier")
	cmd.Flags().StringSliceVar(&dto.Certificates, "certificates", nil, "Certificates to sell")
	cmd.Flags().StringVar(&dto.Company, "company", "", "Major company abbreviation")
	cmd.Flags().StringVar(&dto.Train, "train", "", "Train identifier")
	cmd.Flags().StringVar(&dto.Tile, "tile", "", "Tile to lay")
	cmd.Flags().StringVar(&dto.Hex, "hex", "", "Map hex")
	cmd.Flags().IntVar(&dto.Orientation, "orientation", 0, "Tile orientation (0-5)")

	return cmd
}

func actionTypes() []string {
	types := action.Types()
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, t.String())
	}
	return out
}
