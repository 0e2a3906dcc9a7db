package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/baron-go/internal/domain/rules"
	"github.com/andrescamacho/baron-go/internal/infrastructure/config"
)

// NewRulesCommand creates the rules command with subcommands
func NewRulesCommand() *cobra.Command {
	var rulesDir string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect rule variants",
		Long: `Inspect the rule variants games can be created with.

Variants are read locally: the built-in variants, overridden by
<variant>.yaml files in the rules directory (game.rules_dir in config).

Examples:
  baron rules list
  baron rules show 1860
  baron rules show tiny --rules-dir ./rules`,
	}

	cmd.PersistentFlags().StringVar(&rulesDir, "rules-dir", "", "Directory of variant files (defaults to game.rules_dir)")

	dir := func() string {
		if rulesDir != "" {
			return rulesDir
		}
		return config.LoadConfigOrDefault(configPath).Game.RulesDir
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			variants, err := config.AvailableVariants(dir())
			if err != nil {
				return fmt.Errorf("failed to list variants: %w", err)
			}
			for _, v := range variants {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [variant]",
		Short: "Show a variant",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant := config.LoadConfigOrDefault(configPath).Game.DefaultVariant
			if len(args) == 1 {
				variant = args[0]
			}

			r, err := config.LoadRules(variant, dir())
			if err != nil {
				return err
			}
			displayRules(cmd.OutOrStdout(), r)
			return nil
		},
	})

	return cmd
}

// displayRules prints a rule variant
func displayRules(out io.Writer, r *rules.Rules) {
	fmt.Fprintf(out, "Variant %s\n", r.Name())
	fmt.Fprintf(out, "  Bank cash:     %s\n", r.BankCash())
	fmt.Fprintf(out, "  Share split:   %d shares\n", r.TotalShares())

	fmt.Fprintln(out, "  Starting cash:")
	for _, n := range r.PlayerCounts() {
		cash, err := r.StartingCash(n)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "    %d players:   %s\n", n, cash)
	}

	values := r.MarketValues()
	if len(values) > 0 {
		fmt.Fprintf(out, "  Market:        %d spaces, %s to %s\n", len(values), values[0], values[len(values)-1])
	}

	fmt.Fprintln(out, "\nPrivate companies:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ABBR\tNAME\tVALUE\tREVENUE")
	for _, p := range r.Privates() {
		fmt.Fprintf(w, "  %s\t%s\t$%d\t$%d\n", p.Abbreviation, p.Name, p.FaceValue, p.Revenue)
	}
	w.Flush()
	fmt.Fprintf(out, "  Auctioned:     %s\n", list(r.AuctionCompanies()))

	fmt.Fprintln(out, "\nMajor companies:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, m := range r.Majors() {
		fmt.Fprintf(w, "  %s\t%s\n", m.Abbreviation, m.Name)
	}
	w.Flush()

	fmt.Fprintln(out, "\nTrains:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  TYPE\tCOUNT\tPRICE\tRUSTED BY\tOPERATING ROUNDS")
	for _, batch := range r.Trains() {
		fmt.Fprintf(w, "  %s\t%d\t%s\t%s\t%d\n",
			batch.Type, batch.Count, batch.Type.FaceValue(), orDash(batch.Type.RustedBy()),
			r.OperatingRounds(batch.Type.MajorStations()))
	}
	w.Flush()
}
