package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	grpcAdapter "github.com/andrescamacho/baron-go/internal/adapters/grpc"
	"github.com/andrescamacho/baron-go/internal/application/game/session"
)

// displayGameState prints the full state of a game
func displayGameState(out io.Writer, state *session.GameState) {
	fmt.Fprintf(out, "Game %s (%s)\n", state.ID, state.Variant)
	fmt.Fprintf(out, "  Status:        %s\n", state.Status)
	fmt.Fprintf(out, "  Phase:         %d\n", state.Phase)
	fmt.Fprintf(out, "  Bank:          $%d\n", state.Bank)
	fmt.Fprintf(out, "  Actions:       %d\n", state.Actions)
	fmt.Fprintf(out, "  Transactions:  %d\n", state.Transactions)
	fmt.Fprintln(out)
	displayTurn(out, state)

	fmt.Fprintln(out, "\nPlayers:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tCASH\tCERTIFICATES")
	for _, p := range state.Players {
		fmt.Fprintf(w, "  %s\t$%d\t%s\n", p.Name, p.Cash, list(p.Certificates))
	}
	w.Flush()

	fmt.Fprintln(out, "\nPrivate companies:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ABBR\tNAME\tVALUE\tREVENUE\tOWNER")
	for _, p := range state.Privates {
		fmt.Fprintf(w, "  %s\t%s\t$%d\t$%d\t%s\n", p.Abbreviation, p.Name, p.FaceValue, p.Revenue, p.Owner)
	}
	w.Flush()

	fmt.Fprintln(out, "\nMajor companies:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ABBR\tDIRECTOR\tPAR\tPRICE\tFLOATED\tTREASURY\tTRAINS")
	for _, m := range state.Majors {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%t\t$%d\t%s\n",
			m.Abbreviation, orDash(m.Director), money(m.ParPrice), money(m.Price), m.Floated, m.Treasury, list(m.Trains))
	}
	w.Flush()

	fmt.Fprintln(out, "\nInitial offering:")
	fmt.Fprintf(out, "  Certificates:  %s\n", list(state.Offering.Certificates))
	fmt.Fprintf(out, "  Trains:        %s\n", list(state.Offering.Trains))
}

// displayTurn prints the current round and who is to act
func displayTurn(out io.Writer, state *session.GameState) {
	if state.Over {
		fmt.Fprintln(out, "Game over: the bank is broken")
		return
	}

	round := state.Round
	if round.Number > 0 {
		fmt.Fprintf(out, "%s %d\n", round.Name, round.Number)
	} else {
		fmt.Fprintln(out, round.Name)
	}
	if round.Operating != "" {
		fmt.Fprintf(out, "  Operating:     %s\n", round.Operating)
	}
	fmt.Fprintf(out, "  To act:        %s\n", orDash(round.Actor))
	fmt.Fprintf(out, "  Available:     %s\n", list(round.AvailableActions))

	if a := round.Auction; a != nil {
		fmt.Fprintf(out, "  High bid:      $%d", a.HighBid)
		if a.Bidder != "" {
			fmt.Fprintf(out, " by %s", a.Bidder)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Bidding:       %s\n", list(a.Active))
		if a.Winner != "" {
			fmt.Fprintf(out, "  Winner:        %s\n", a.Winner)
		}
	}
}

// displayTransactions prints ledger entries as a table
func displayTransactions(out io.Writer, transactions []grpcAdapter.TransactionView) {
	if len(transactions) == 0 {
		fmt.Fprintln(out, "No transactions found")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tBUYER\tRECEIVES\tSELLER\tRECEIVES")
	for _, t := range transactions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			t.Sequence, t.Buyer, list(t.BuyerItems), orDash(t.Seller), list(t.SellerItems))
	}
	w.Flush()
}

// displayGames prints stored games as a table
func displayGames(out io.Writer, games []grpcAdapter.GameView) {
	if len(games) == 0 {
		fmt.Fprintln(out, "No games found")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tSTATUS\tPLAYERS\tCREATED")
	for _, g := range games {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			g.ID, g.Variant, g.Status, strings.Join(g.Players, ","), g.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func money(amount *int) string {
	if amount == nil {
		return "-"
	}
	return fmt.Sprintf("$%d", *amount)
}
