package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/baron-go/internal/application/game/queries"
	"github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

type ledgerContext struct {
	game *GameContext

	page  []*ledger.TransactionEntry
	total int
	err   error
}

func (c *ledgerContext) reset() {
	c.page = nil
	c.total = 0
	c.err = nil
}

func (c *ledgerContext) read(gameID, party string, limit, offset int) {
	resp, err := c.game.mediator.Send(context.Background(), &queries.GetLedgerQuery{
		GameID: gameID,
		Party:  party,
		Limit:  limit,
		Offset: offset,
	})
	c.err = err
	if err != nil {
		c.page, c.total = nil, 0
		return
	}
	ledgerResp := resp.(*queries.GetLedgerResponse)
	c.page, c.total = ledgerResp.Transactions, ledgerResp.Total
}

func (c *ledgerContext) iReadTheLedger() error {
	c.read(c.game.gameID, "", 0, 0)
	return c.err
}

func (c *ledgerContext) iReadTheLedgerOf(party string) error {
	c.read(c.game.gameID, party, 0, 0)
	return c.err
}

func (c *ledgerContext) iReadTheLedgerWithLimitAndOffset(limit, offset int) error {
	c.read(c.game.gameID, "", limit, offset)
	return c.err
}

func (c *ledgerContext) iReadTheLedgerOfGame(gameID string) error {
	c.read(gameID, "", 0, 0)
	return nil
}

func (c *ledgerContext) theLedgerShouldListTransactions(count int) error {
	if len(c.page) != count {
		return fmt.Errorf("expected %d transactions, got %d", count, len(c.page))
	}
	return nil
}

func (c *ledgerContext) theLedgerShouldListEveryTransactionOfTheGame() error {
	state, err := c.game.state()
	if err != nil {
		return err
	}
	if c.total != state.Transactions {
		return fmt.Errorf("ledger total %d differs from the journal length %d", c.total, state.Transactions)
	}
	if len(c.page) != c.total {
		return fmt.Errorf("expected all %d transactions, got %d", c.total, len(c.page))
	}
	for i, entry := range c.page {
		if entry.Sequence != i+1 {
			return fmt.Errorf("entry %d has sequence %d", i, entry.Sequence)
		}
	}
	return nil
}

func (c *ledgerContext) theTotalShouldCountEveryTransactionOfTheGame() error {
	state, err := c.game.state()
	if err != nil {
		return err
	}
	if c.total != state.Transactions {
		return fmt.Errorf("ledger total %d differs from the journal length %d", c.total, state.Transactions)
	}
	return nil
}

func (c *ledgerContext) theFirstListedTransactionShouldHaveSequence(sequence int) error {
	if len(c.page) == 0 {
		return fmt.Errorf("the ledger page is empty")
	}
	if c.page[0].Sequence != sequence {
		return fmt.Errorf("expected sequence %d, got %d", sequence, c.page[0].Sequence)
	}
	return nil
}

func (c *ledgerContext) everyListedTransactionShouldInvolve(party string) error {
	for _, entry := range c.page {
		if entry.Buyer != party && entry.Seller != party {
			return fmt.Errorf("transaction %d between %s and %s does not involve %s", entry.Sequence, entry.Buyer, entry.Seller, party)
		}
	}
	return nil
}

func (c *ledgerContext) theLedgerShouldShow(item, from, to string) error {
	if !transfers(c.page, item, from, to) {
		return fmt.Errorf("no listed transaction moved %s from %s to %s", item, from, to)
	}
	return nil
}

func (c *ledgerContext) theLedgerRequestShouldFailWithGameNotFound() error {
	var notFound *game.ErrGameNotFound
	if !errors.As(c.err, &notFound) {
		return fmt.Errorf("expected a game not found error, got: %v", c.err)
	}
	return nil
}

// InitializeLedgerScenario registers ledger query steps against the game under test
func InitializeLedgerScenario(sc *godog.ScenarioContext, gameCtx *GameContext) {
	c := &ledgerContext{game: gameCtx}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	sc.Step(`^I read the ledger$`, c.iReadTheLedger)
	sc.Step(`^I read the ledger of "([^"]*)"$`, c.iReadTheLedgerOf)
	sc.Step(`^I read the ledger with limit (\d+) and offset (\d+)$`, c.iReadTheLedgerWithLimitAndOffset)
	sc.Step(`^I read the ledger of game "([^"]*)"$`, c.iReadTheLedgerOfGame)

	sc.Step(`^the ledger should list (\d+) transactions?$`, c.theLedgerShouldListTransactions)
	sc.Step(`^the ledger should list every transaction of the game in order$`, c.theLedgerShouldListEveryTransactionOfTheGame)
	sc.Step(`^the total should count every transaction of the game$`, c.theTotalShouldCountEveryTransactionOfTheGame)
	sc.Step(`^the first listed transaction should have sequence (\d+)$`, c.theFirstListedTransactionShouldHaveSequence)
	sc.Step(`^every listed transaction should involve "([^"]*)"$`, c.everyListedTransactionShouldInvolve)
	sc.Step(`^the ledger should show "([^"]*)" moving from "([^"]*)" to "([^"]*)"$`, c.theLedgerShouldShow)
	sc.Step(`^the ledger request should fail with game not found$`, c.theLedgerRequestShouldFailWithGameNotFound)
}
