package steps

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	appGame "github.com/andrescamacho/baron-go/internal/application/game"
	"github.com/andrescamacho/baron-go/internal/application/game/commands"
	"github.com/andrescamacho/baron-go/internal/application/game/queries"
	"github.com/andrescamacho/baron-go/internal/application/game/session"
	"github.com/andrescamacho/baron-go/internal/application/mediator"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/rules"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
	"github.com/andrescamacho/baron-go/internal/infrastructure/config"
	"github.com/andrescamacho/baron-go/test/helpers"
)

// GameContext plays one game through the mediator, persisted in the shared test database
type GameContext struct {
	mediator mediator.Mediator
	gameID   string

	lastResponse *commands.PerformActionResponse
	lastErr      error
}

func (c *GameContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	med, err := newGameMediator()
	if err != nil {
		return err
	}
	c.mediator = med
	c.gameID = ""
	c.lastResponse = nil
	c.lastErr = nil
	return nil
}

// newGameMediator wires a fresh registry over the shared database, so a
// second mediator sees only what the first one persisted
func newGameMediator() (mediator.Mediator, error) {
	repos := helpers.NewGormRepositories(helpers.SharedTestDB)
	registry := session.NewRegistry(4, loadRules, repos.Games, repos.Actions, repos.Transactions, time.Now)

	med := mediator.NewMediator()
	if err := appGame.RegisterHandlers(med, registry, games, transactions, helpers.TestVariant); err != nil {
		return nil, err
	}
	return med, nil
}

func loadRules(variant string) (*rules.Rules, error) {
	if variant == helpers.TestVariant {
		return helpers.TestRulesLoader(variant)
	}
	return config.LoadRules(variant, "")
}

// Setup steps

func (c *GameContext) aNewGameForPlayers(variant, players string) error {
	resp, err := c.mediator.Send(context.Background(), &commands.CreateGameCommand{
		Variant: variant,
		Players: splitList(players),
	})
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	c.gameID = resp.(*commands.CreateGameResponse).GameID
	return nil
}

func (c *GameContext) creatingAGameForPlayers(variant, players string) error {
	_, c.lastErr = c.mediator.Send(context.Background(), &commands.CreateGameCommand{
		Variant: variant,
		Players: splitList(players),
	})
	return nil
}

func (c *GameContext) theInitialAuctionHasBeenPlayed() error {
	return c.performAll([]session.ActionDTO{
		{Type: "bid", Actor: "alice", Amount: 30},
		{Type: "pass", Actor: "bob"},
		{Type: "pass", Actor: "carol"},
		{Type: "select_certificate", Actor: "alice", Certificate: "BHC-0"},
		{Type: "bid", Actor: "bob", Amount: 50},
		{Type: "pass", Actor: "carol"},
		{Type: "pass", Actor: "alice"},
		{Type: "select_certificate", Actor: "bob", Certificate: "YHC-0"},
	})
}

func (c *GameContext) theFollowingActionsHaveBeenPerformed(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("action table needs a header and at least one row")
	}
	header := table.Rows[0]
	var dtos []session.ActionDTO
	for _, row := range table.Rows[1:] {
		dto, err := actionFromRow(header, row)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}
	return c.performAll(dtos)
}

func (c *GameContext) performAll(dtos []session.ActionDTO) error {
	for i, dto := range dtos {
		if err := c.perform(dto); err != nil {
			return fmt.Errorf("action %d (%s by %s) failed: %w", i+1, dto.Type, dto.Actor, err)
		}
	}
	return nil
}

func (c *GameContext) perform(dto session.ActionDTO) error {
	resp, err := c.mediator.Send(context.Background(), &commands.PerformActionCommand{GameID: c.gameID, Action: dto})
	c.lastErr = err
	if err != nil {
		return err
	}
	c.lastResponse = resp.(*commands.PerformActionResponse)
	return nil
}

// Action steps. Rejections are recorded and asserted by the Then steps.

func (c *GameContext) bids(actor string, amount int) error {
	c.perform(session.ActionDTO{Type: "bid", Actor: actor, Amount: amount})
	return nil
}

func (c *GameContext) passes(actor string) error {
	c.perform(session.ActionDTO{Type: "pass", Actor: actor})
	return nil
}

func (c *GameContext) selects(actor, certificate string) error {
	c.perform(session.ActionDTO{Type: "select_certificate", Actor: actor, Certificate: certificate})
	return nil
}

func (c *GameContext) startsAtPar(actor, company string, par int) error {
	c.perform(session.ActionDTO{Type: "start_company", Actor: actor, Company: company, ParPrice: &par})
	return nil
}

func (c *GameContext) buysFrom(actor, certificate, source string, price int) error {
	c.perform(session.ActionDTO{Type: "buy_certificate", Actor: actor, Certificate: certificate, Source: source, Price: price})
	return nil
}

func (c *GameContext) sells(actor, certificates string) error {
	c.perform(session.ActionDTO{Type: "sell_certificates", Actor: actor, Certificates: splitList(certificates)})
	return nil
}

func (c *GameContext) placesTile(actor, tile, hex string) error {
	c.perform(session.ActionDTO{Type: "place_tile", Actor: actor, Tile: tile, Hex: hex})
	return nil
}

func (c *GameContext) placesToken(actor, hex string) error {
	c.perform(session.ActionDTO{Type: "place_token", Actor: actor, Hex: hex})
	return nil
}

func (c *GameContext) runsTrainsFor(actor string, amount int) error {
	c.perform(session.ActionDTO{Type: "run_trains", Actor: actor, Amount: amount})
	return nil
}

func (c *GameContext) runsTrainsWithBonus(actor string, amount, bonus int) error {
	c.perform(session.ActionDTO{Type: "run_trains", Actor: actor, Amount: amount, Bonus: bonus})
	return nil
}

func (c *GameContext) paysOut(actor string) error {
	c.perform(session.ActionDTO{Type: "payout", Actor: actor})
	return nil
}

func (c *GameContext) retains(actor string) error {
	c.perform(session.ActionDTO{Type: "retain", Actor: actor})
	return nil
}

func (c *GameContext) buysTrain(actor, trainID, source string, price int) error {
	c.perform(session.ActionDTO{Type: "buy_train", Actor: actor, Train: trainID, Source: source, Price: price})
	return nil
}

func (c *GameContext) isDone(actor string) error {
	c.perform(session.ActionDTO{Type: "done", Actor: actor})
	return nil
}

// Outcome steps

func (c *GameContext) theActionShouldBeAccepted() error {
	if c.lastErr != nil {
		return fmt.Errorf("expected the action to be accepted, got: %v", c.lastErr)
	}
	return nil
}

func (c *GameContext) theActionShouldBeRejectedAsViolation(kind string) error {
	if c.lastErr == nil {
		return fmt.Errorf("expected the action to be rejected")
	}
	violation, ok := shared.ViolationOf(c.lastErr)
	if !ok {
		return fmt.Errorf("expected a classified error, got: %v", c.lastErr)
	}
	if string(violation) != kind {
		return fmt.Errorf("expected a %s violation, got %s: %v", kind, violation, c.lastErr)
	}
	return nil
}

func (c *GameContext) theActionShouldBeRejectedWith(message string) error {
	if c.lastErr == nil {
		return fmt.Errorf("expected the action to be rejected")
	}
	if !strings.Contains(c.lastErr.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, c.lastErr.Error())
	}
	return nil
}

// State steps

func (c *GameContext) state() (*session.GameState, error) {
	return stateOf(c.mediator, c.gameID)
}

func stateOf(med mediator.Mediator, gameID string) (*session.GameState, error) {
	resp, err := med.Send(context.Background(), &queries.GetGameStateQuery{GameID: gameID})
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}
	return resp.(*queries.GetGameStateResponse).State, nil
}

func (c *GameContext) shouldBeThePlayerToAct(name string) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if state.Round.Actor != name {
		return fmt.Errorf("expected %s to act, got %q", name, state.Round.Actor)
	}
	return nil
}

func (c *GameContext) theCurrentRoundShouldBe(kind string) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if state.Round.Kind != kind {
		return fmt.Errorf("expected the %s round, got %s", kind, state.Round.Kind)
	}
	return nil
}

func (c *GameContext) theAvailableActionsShouldBe(actions string) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	expected := splitList(actions)
	if !reflect.DeepEqual(expected, state.Round.AvailableActions) {
		return fmt.Errorf("expected available actions %v, got %v", expected, state.Round.AvailableActions)
	}
	return nil
}

func (c *GameContext) theAuctionWinnerShouldBe(name string) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if state.Round.Auction == nil {
		return fmt.Errorf("no auction in progress")
	}
	if state.Round.Auction.Winner != name {
		return fmt.Errorf("expected %s to win the auction, got %q", name, state.Round.Auction.Winner)
	}
	return nil
}

func (c *GameContext) shouldHaveCash(name string, amount int) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	cash, ok := cashOf(state, name)
	if !ok {
		return fmt.Errorf("unknown shareholder %s", name)
	}
	if cash != amount {
		return fmt.Errorf("expected %s to have $%d, got $%d", name, amount, cash)
	}
	return nil
}

func (c *GameContext) theShareholdersShouldHold(table *godog.Table) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	for _, row := range table.Rows[1:] {
		name := getCellValue(row, 0)
		expected, err := strconv.Atoi(strings.TrimPrefix(getCellValue(row, 1), "$"))
		if err != nil {
			return fmt.Errorf("invalid cash for %s: %w", name, err)
		}
		cash, ok := cashOf(state, name)
		if !ok {
			return fmt.Errorf("unknown shareholder %s", name)
		}
		if cash != expected {
			return fmt.Errorf("expected %s to have $%d, got $%d", name, expected, cash)
		}
	}
	return nil
}

func (c *GameContext) shouldHold(name, item string) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	holding, ok := holdingOf(state, name)
	if !ok {
		return fmt.Errorf("unknown shareholder %s", name)
	}
	if !contains(holding.Certificates, item) && !contains(holding.Trains, item) {
		return fmt.Errorf("expected %s to hold %s, holds %v and %v", name, item, holding.Certificates, holding.Trains)
	}
	return nil
}

func (c *GameContext) shouldHoldNCertificates(name string, count int) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	holding, ok := holdingOf(state, name)
	if !ok {
		return fmt.Errorf("unknown shareholder %s", name)
	}
	if len(holding.Certificates) != count {
		return fmt.Errorf("expected %s to hold %d certificates, got %v", name, count, holding.Certificates)
	}
	return nil
}

func (c *GameContext) thePriceOfShouldBe(abbreviation string, price int) error {
	major, err := c.major(abbreviation)
	if err != nil {
		return err
	}
	if major.Price == nil {
		return fmt.Errorf("%s has no market price", abbreviation)
	}
	if *major.Price != price {
		return fmt.Errorf("expected %s to trade at %d, got %d", abbreviation, price, *major.Price)
	}
	return nil
}

func (c *GameContext) shouldBeFloated(abbreviation string) error {
	major, err := c.major(abbreviation)
	if err != nil {
		return err
	}
	if !major.Floated {
		return fmt.Errorf("expected %s to have floated", abbreviation)
	}
	return nil
}

func (c *GameContext) shouldNotBeFloated(abbreviation string) error {
	major, err := c.major(abbreviation)
	if err != nil {
		return err
	}
	if major.Floated {
		return fmt.Errorf("expected %s not to have floated", abbreviation)
	}
	return nil
}

func (c *GameContext) shouldDirect(name, abbreviation string) error {
	major, err := c.major(abbreviation)
	if err != nil {
		return err
	}
	if major.Director != name {
		return fmt.Errorf("expected %s to direct %s, got %q", name, abbreviation, major.Director)
	}
	return nil
}

func (c *GameContext) theOperatingCompanyShouldBe(abbreviation string) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if state.Round.Operating != abbreviation {
		return fmt.Errorf("expected %s to operate, got %q", abbreviation, state.Round.Operating)
	}
	return nil
}

func (c *GameContext) thePhaseShouldBe(phase int) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if state.Phase != phase {
		return fmt.Errorf("expected phase %d, got %d", phase, state.Phase)
	}
	return nil
}

func (c *GameContext) theLastActionShouldTransfer(item, from, to string) error {
	if c.lastResponse == nil {
		return fmt.Errorf("no action was accepted")
	}
	if !transfers(c.lastResponse.Transactions, item, from, to) {
		return fmt.Errorf("no transaction moved %s from %s to %s in %d transactions", item, from, to, len(c.lastResponse.Transactions))
	}
	return nil
}

func (c *GameContext) theLastActionShouldRecordNoTransactions() error {
	if c.lastResponse == nil {
		return fmt.Errorf("no action was accepted")
	}
	if n := len(c.lastResponse.Transactions); n != 0 {
		return fmt.Errorf("expected no transactions, got %d", n)
	}
	return nil
}

func (c *GameContext) reloadingTheGameShouldReproduceTheSameState() error {
	before, err := c.state()
	if err != nil {
		return err
	}
	fresh, err := newGameMediator()
	if err != nil {
		return err
	}
	after, err := stateOf(fresh, c.gameID)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(before, after) {
		return fmt.Errorf("replayed state differs from the live state")
	}
	return nil
}

func (c *GameContext) theGameShouldHaveStoredActions(count int) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if state.Actions != count {
		return fmt.Errorf("expected %d stored actions, got %d", count, state.Actions)
	}
	return nil
}

func (c *GameContext) major(abbreviation string) (*session.MajorState, error) {
	state, err := c.state()
	if err != nil {
		return nil, err
	}
	for i := range state.Majors {
		if state.Majors[i].Abbreviation == abbreviation {
			return &state.Majors[i], nil
		}
	}
	return nil, fmt.Errorf("unknown company %s", abbreviation)
}

// Helpers

func cashOf(state *session.GameState, name string) (int, bool) {
	if name == "Bank" {
		return state.Bank, true
	}
	for _, m := range state.Majors {
		if m.Abbreviation == name {
			return m.Treasury, true
		}
	}
	holding, ok := holdingOf(state, name)
	if !ok {
		return 0, false
	}
	return holding.Cash, true
}

func holdingOf(state *session.GameState, name string) (session.HoldingState, bool) {
	switch name {
	case state.Offering.Name:
		return state.Offering, true
	case state.Pool.Name:
		return state.Pool, true
	}
	for _, p := range state.Players {
		if p.Name == name {
			return p, true
		}
	}
	return session.HoldingState{}, false
}

// transfers reports whether item went from one party to another in either leg of a transaction
func transfers(entries []*ledger.TransactionEntry, item, from, to string) bool {
	for _, e := range entries {
		if e.Seller == from && e.Buyer == to && contains(e.BuyerItems, item) {
			return true
		}
		if e.Buyer == from && e.Seller == to && contains(e.SellerItems, item) {
			return true
		}
	}
	return false
}

func actionFromRow(header, row *messages.PickleTableRow) (session.ActionDTO, error) {
	var dto session.ActionDTO
	for i, cell := range header.Cells {
		value := getCellValue(row, i)
		if value == "" {
			continue
		}
		switch cell.Value {
		case "actor":
			dto.Actor = value
		case "type":
			dto.Type = value
		case "certificate":
			dto.Certificate = value
		case "certificates":
			dto.Certificates = splitList(value)
		case "company":
			dto.Company = value
		case "source":
			dto.Source = value
		case "train":
			dto.Train = value
		case "tile":
			dto.Tile = value
		case "hex":
			dto.Hex = value
		case "amount", "bonus", "price", "par", "orientation":
			n, err := strconv.Atoi(strings.TrimPrefix(value, "$"))
			if err != nil {
				return dto, fmt.Errorf("invalid %s %q: %w", cell.Value, value, err)
			}
			switch cell.Value {
			case "amount":
				dto.Amount = n
			case "bonus":
				dto.Bonus = n
			case "price":
				dto.Price = n
			case "par":
				dto.ParPrice = &n
			case "orientation":
				dto.Orientation = n
			}
		default:
			return dto, fmt.Errorf("unknown action column %q", cell.Value)
		}
	}
	return dto, nil
}

func getCellValue(row *messages.PickleTableRow, idx int) string {
	if idx >= len(row.Cells) {
		return ""
	}
	return strings.TrimSpace(row.Cells[idx].Value)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func contains(items []string, item string) bool {
	for _, i := range items {
		if i == item {
			return true
		}
	}
	return false
}

// InitializeGameScenario registers game setup, action and state steps
func InitializeGameScenario(sc *godog.ScenarioContext) *GameContext {
	c := &GameContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		return ctx, c.reset()
	})

	sc.Step(`^a new "([^"]*)" game for players "([^"]*)"$`, c.aNewGameForPlayers)
	sc.Step(`^creating a "([^"]*)" game for players "([^"]*)"$`, c.creatingAGameForPlayers)
	sc.Step(`^the initial auction has been played$`, c.theInitialAuctionHasBeenPlayed)
	sc.Step(`^the following actions have been performed:$`, c.theFollowingActionsHaveBeenPerformed)

	sc.Step(`^"([^"]*)" bids (\d+)$`, c.bids)
	sc.Step(`^"([^"]*)" passes$`, c.passes)
	sc.Step(`^"([^"]*)" selects "([^"]*)"$`, c.selects)
	sc.Step(`^"([^"]*)" starts "([^"]*)" at par (\d+)$`, c.startsAtPar)
	sc.Step(`^"([^"]*)" buys "([^"]*)" from the "([^"]*)" for (\d+)$`, c.buysFrom)
	sc.Step(`^"([^"]*)" sells "([^"]*)"$`, c.sells)
	sc.Step(`^"([^"]*)" places tile "([^"]*)" on "([^"]*)"$`, c.placesTile)
	sc.Step(`^"([^"]*)" places a token on "([^"]*)"$`, c.placesToken)
	sc.Step(`^"([^"]*)" runs trains for (\d+)$`, c.runsTrainsFor)
	sc.Step(`^"([^"]*)" runs trains for (\d+) with a bonus of (\d+)$`, c.runsTrainsWithBonus)
	sc.Step(`^"([^"]*)" pays out$`, c.paysOut)
	sc.Step(`^"([^"]*)" retains$`, c.retains)
	sc.Step(`^"([^"]*)" buys train "([^"]*)" from the "([^"]*)" for (\d+)$`, c.buysTrain)
	sc.Step(`^"([^"]*)" is done$`, c.isDone)

	sc.Step(`^the action should be accepted$`, c.theActionShouldBeAccepted)
	sc.Step(`^the action should be rejected as a "([^"]*)" violation$`, c.theActionShouldBeRejectedAsViolation)
	sc.Step(`^the action should be rejected with "([^"]*)"$`, c.theActionShouldBeRejectedWith)

	sc.Step(`^"([^"]*)" should be the player to act$`, c.shouldBeThePlayerToAct)
	sc.Step(`^the current round should be "([^"]*)"$`, c.theCurrentRoundShouldBe)
	sc.Step(`^the available actions should be "([^"]*)"$`, c.theAvailableActionsShouldBe)
	sc.Step(`^the auction winner should be "([^"]*)"$`, c.theAuctionWinnerShouldBe)
	sc.Step(`^"([^"]*)" should have \$(\d+)$`, c.shouldHaveCash)
	sc.Step(`^the shareholders should have:$`, c.theShareholdersShouldHold)
	sc.Step(`^"([^"]*)" should hold "([^"]*)"$`, c.shouldHold)
	sc.Step(`^"([^"]*)" should hold (\d+) certificates?$`, c.shouldHoldNCertificates)
	sc.Step(`^the price of "([^"]*)" should be (\d+)$`, c.thePriceOfShouldBe)
	sc.Step(`^"([^"]*)" should have floated$`, c.shouldBeFloated)
	sc.Step(`^"([^"]*)" should not have floated$`, c.shouldNotBeFloated)
	sc.Step(`^"([^"]*)" should direct "([^"]*)"$`, c.shouldDirect)
	sc.Step(`^"([^"]*)" should be operating$`, c.theOperatingCompanyShouldBe)
	sc.Step(`^the phase should be (\d+)$`, c.thePhaseShouldBe)
	sc.Step(`^the last action should transfer "([^"]*)" from "([^"]*)" to "([^"]*)"$`, c.theLastActionShouldTransfer)
	sc.Step(`^the last action should record no transactions$`, c.theLastActionShouldRecordNoTransactions)
	sc.Step(`^reloading the game should reproduce the same state$`, c.reloadingTheGameShouldReproduceTheSameState)
	sc.Step(`^the game should have (\d+) stored actions$`, c.theGameShouldHaveStoredActions)

	return c
}
