package game

import (
	"fmt"

	"github.com/andrescamacho/baron-go/internal/domain/action"
	"github.com/andrescamacho/baron-go/internal/domain/company"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
	"github.com/andrescamacho/baron-go/internal/domain/market"
	"github.com/andrescamacho/baron-go/internal/domain/player"
	"github.com/andrescamacho/baron-go/internal/domain/rules"
	"github.com/andrescamacho/baron-go/internal/domain/train"
)

// Game is the aggregate root of a single game: the shareholders, the items
// they trade, the journal of every transaction and the round cursor.
type Game struct {
	rules    *rules.Rules
	journal  *ledger.Journal
	bank     *market.Bank
	offering *market.InitialOffering
	pool     *market.UnavailablePool
	market   *market.Market
	players  []*player.Player
	privates []*company.PrivateCompany
	majors   []*company.MajorCompany
	certs    []*company.Certificate
	trains   []*train.Train
	trackMap TrackMap
	flow     *RoundFlow
}

// Option configures a Game at creation
type Option func(*Game)

// WithTrackMap sets the map collaborator that validates tile and token placements
func WithTrackMap(m TrackMap) Option {
	return func(g *Game) {
		g.trackMap = m
	}
}

// New sets up a game: the bank is capitalized, players receive their
// starting cash, every certificate starts in the unavailable pool and the
// first batch of trains is put on sale. The initial auction is started.
func New(r *rules.Rules, playerNames []string, opts ...Option) (*Game, error) {
	g := &Game{
		rules:    r,
		journal:  ledger.NewJournal(),
		bank:     market.NewBank(),
		offering: market.NewInitialOffering(),
		pool:     market.NewUnavailablePool(),
		market:   market.NewMarket(r.MarketValues()),
		trackMap: NoopTrackMap{},
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.seatPlayers(playerNames); err != nil {
		return nil, err
	}
	if err := g.capitalize(); err != nil {
		return nil, err
	}
	if err := g.createCompanies(); err != nil {
		return nil, err
	}
	if err := g.createTrains(); err != nil {
		return nil, err
	}

	flow, err := newRoundFlow(g)
	if err != nil {
		return nil, fmt.Errorf("failed to start the first round: %w", err)
	}
	g.flow = flow
	return g, nil
}

func (g *Game) seatPlayers(names []string) error {
	if _, err := g.rules.StartingCash(len(names)); err != nil {
		return err
	}
	reserved := map[string]bool{
		g.bank.Name():     true,
		g.offering.Name(): true,
		g.pool.Name():     true,
	}
	for _, m := range g.rules.Majors() {
		reserved[m.Abbreviation] = true
	}
	seen := make(map[string]bool)
	for _, name := range names {
		if name == "" {
			return &ErrInvalidPlayers{Reason: "player names cannot be empty"}
		}
		if seen[name] {
			return &ErrInvalidPlayers{Reason: fmt.Sprintf("player %q appears twice", name)}
		}
		if reserved[name] {
			return &ErrInvalidPlayers{Reason: fmt.Sprintf("%q is a reserved name", name)}
		}
		seen[name] = true
		g.players = append(g.players, player.NewPlayer(name))
	}
	return nil
}

func (g *Game) capitalize() error {
	if _, err := g.journal.Grant(g.bank, g.rules.BankCash()); err != nil {
		return err
	}
	cash, err := g.rules.StartingCash(len(g.players))
	if err != nil {
		return err
	}
	for _, p := range g.players {
		if _, err := g.journal.Give(g.bank, p, cash); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) createCompanies() error {
	var items []ledger.Transferrable
	for _, def := range g.rules.Privates() {
		c := company.NewPrivateCompany(def.Abbreviation, def.Name, ledger.NewMoney(def.FaceValue), ledger.NewMoney(def.Revenue))
		g.privates = append(g.privates, c)
		cert := company.NewCertificate(c, company.WholeCompany, 0)
		g.certs = append(g.certs, cert)
		items = append(items, cert)
	}
	for _, def := range g.rules.Majors() {
		c := company.NewMajorCompany(def.Abbreviation, def.Name)
		g.majors = append(g.majors, c)
		for i, portion := range g.rules.ShareSplit() {
			cert := company.NewCertificate(c, portion, i)
			g.certs = append(g.certs, cert)
			items = append(items, cert)
		}
	}
	_, err := g.journal.Grant(g.pool, items...)
	return err
}

func (g *Game) createTrains() error {
	var items []ledger.Transferrable
	for _, batch := range g.rules.Trains() {
		for i := 0; i < batch.Count; i++ {
			t := train.New(batch.Type, i)
			g.trains = append(g.trains, t)
			items = append(items, t)
		}
	}
	if _, err := g.journal.Grant(g.pool, items...); err != nil {
		return err
	}
	return g.releaseTrains()
}

// Perform applies an action to the current turn and moves the game on to
// the next turn or round.
func (g *Game) Perform(a action.Action) error {
	round := g.flow.Current()
	if round.Over() {
		return &ErrGameOver{}
	}
	if err := round.Perform(a); err != nil {
		return err
	}
	return g.flow.advance()
}

func (g *Game) Rules() *rules.Rules {
	return g.rules
}

func (g *Game) Journal() *ledger.Journal {
	return g.journal
}

func (g *Game) Bank() *market.Bank {
	return g.bank
}

func (g *Game) InitialOffering() *market.InitialOffering {
	return g.offering
}

func (g *Game) UnavailablePool() *market.UnavailablePool {
	return g.pool
}

func (g *Game) Market() *market.Market {
	return g.market
}

func (g *Game) Players() []*player.Player {
	return append([]*player.Player(nil), g.players...)
}

func (g *Game) PrivateCompanies() []*company.PrivateCompany {
	return append([]*company.PrivateCompany(nil), g.privates...)
}

func (g *Game) MajorCompanies() []*company.MajorCompany {
	return append([]*company.MajorCompany(nil), g.majors...)
}

func (g *Game) Certificates() []*company.Certificate {
	return append([]*company.Certificate(nil), g.certs...)
}

func (g *Game) Trains() []*train.Train {
	return append([]*train.Train(nil), g.trains...)
}

func (g *Game) Flow() *RoundFlow {
	return g.flow
}

func (g *Game) CurrentRound() Round {
	return g.flow.Current()
}

// CurrentTurn returns the turn awaiting an action, or nil once the game has ended
func (g *Game) CurrentTurn() Turn {
	return g.flow.Current().CurrentTurn()
}

// CurrentActor returns who must act next, or nil
func (g *Game) CurrentActor() ledger.Shareholder {
	if turn := g.CurrentTurn(); turn != nil {
		return turn.Actor()
	}
	return nil
}

// Director returns the player holding the controlling certificate of c, or nil
func (g *Game) Director(c company.Company) *player.Player {
	cert := g.controllingCertificate(c)
	if cert == nil {
		return nil
	}
	p, _ := cert.Owner().(*player.Player)
	return p
}

// Phase is the largest major station allowance among trains that have been released
func (g *Game) Phase() int {
	phase := 0
	for _, t := range g.trains {
		if t.IsOwnedBy(g.pool) {
			continue
		}
		if n := t.Type().MajorStations(); n > phase {
			phase = n
		}
	}
	return phase
}

// Over is true once the bank has run out of money
func (g *Game) Over() bool {
	return !g.bank.Balance().GreaterThan(ledger.Money{})
}

// QuoteCertificate prices a certificate bought from source: the offering
// charges its cost, anyone else sells at the market price
func (g *Game) QuoteCertificate(source ledger.Shareholder, cert *company.Certificate) (ledger.Money, error) {
	if source == g.offering {
		return g.offering.Cost(cert)
	}
	switch c := cert.Company().(type) {
	case *company.PrivateCompany:
		return c.FaceValue(), nil
	case *company.MajorCompany:
		price, ok := g.market.Price(c)
		if !ok {
			return ledger.Money{}, &market.ErrNotListed{Company: c.Abbreviation()}
		}
		return price.Times(cert.NumShares()), nil
	}
	return ledger.Money{}, &ErrNotForSale{Item: cert.String(), Reason: "unknown company type"}
}

// Lookups

func (g *Game) Player(name string) (*player.Player, bool) {
	for _, p := range g.players {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

func (g *Game) Company(abbreviation string) (company.Company, bool) {
	for _, c := range g.privates {
		if c.Abbreviation() == abbreviation {
			return c, true
		}
	}
	if c, ok := g.MajorCompany(abbreviation); ok {
		return c, true
	}
	return nil, false
}

func (g *Game) MajorCompany(abbreviation string) (*company.MajorCompany, bool) {
	for _, c := range g.majors {
		if c.Abbreviation() == abbreviation {
			return c, true
		}
	}
	return nil, false
}

func (g *Game) Certificate(id string) (*company.Certificate, bool) {
	for _, cert := range g.certs {
		if cert.ID() == id {
			return cert, true
		}
	}
	return nil, false
}

func (g *Game) Train(id string) (*train.Train, bool) {
	for _, t := range g.trains {
		if t.ID() == id {
			return t, true
		}
	}
	return nil, false
}

// Shareholder resolves a player name, a holding area name or a major company abbreviation
func (g *Game) Shareholder(name string) (ledger.Shareholder, bool) {
	switch name {
	case g.bank.Name():
		return g.bank, true
	case g.offering.Name():
		return g.offering, true
	case g.pool.Name():
		return g.pool, true
	}
	if p, ok := g.Player(name); ok {
		return p, true
	}
	if c, ok := g.MajorCompany(name); ok {
		return c, true
	}
	return nil, false
}

// Shareholders returns every internal shareholder: holding areas, players and major companies
func (g *Game) Shareholders() []ledger.Shareholder {
	out := []ledger.Shareholder{g.bank, g.offering, g.pool}
	for _, p := range g.players {
		out = append(out, p)
	}
	for _, c := range g.majors {
		out = append(out, c)
	}
	return out
}

// Helpers shared by turns and rounds

func (g *Game) controllingCertificate(c company.Company) *company.Certificate {
	for _, cert := range g.certs {
		if cert.Company() == c && cert.IsControlling() {
			return cert
		}
	}
	return nil
}

// release moves certificates from the unavailable pool into the offering
func (g *Game) release(certs []*company.Certificate) error {
	if len(certs) == 0 {
		return nil
	}
	items := make([]ledger.Transferrable, len(certs))
	for i, cert := range certs {
		items[i] = cert
	}
	_, err := g.journal.Give(g.pool, g.offering, items...)
	return err
}

// releaseTrains puts the next batch of trains from the pool on sale
func (g *Game) releaseTrains() error {
	batch := train.NextBatch(g.pool)
	if len(batch) == 0 {
		return nil
	}
	items := make([]ledger.Transferrable, len(batch))
	for i, t := range batch {
		items[i] = t
	}
	_, err := g.journal.Give(g.pool, g.offering, items...)
	return err
}

// checkParPrice validates a par price before anything changes: a new par
// price must be on the market ladder and may only be set once, and an
// existing company needs no new one.
func (g *Game) checkParPrice(c *company.MajorCompany, par *ledger.Money) error {
	_, set := g.offering.ParPrice(c)
	if par == nil {
		if !set {
			return &market.ErrParPriceNotSet{Company: c.Abbreviation()}
		}
		return nil
	}
	if set {
		return &market.ErrParPriceAlreadySet{Company: c.Abbreviation()}
	}
	if !g.market.IsLegalPrice(*par) {
		return &market.ErrInvalidStartingPrice{Company: c.Abbreviation(), Price: *par}
	}
	return nil
}

// listCompany sets the par price of c and puts it on the market at par
func (g *Game) listCompany(c *company.MajorCompany, par ledger.Money) error {
	if err := g.offering.SetParPrice(c, par); err != nil {
		return err
	}
	return g.market.AddCompany(c, par)
}

func (g *Game) checkFunds(s ledger.Shareholder, amount ledger.Money) error {
	if balance := s.Balance(); amount.GreaterThan(balance) {
		return &ErrInsufficientFunds{Party: s.Name(), Needed: amount, Available: balance}
	}
	return nil
}

// checkFloat capitalizes c the first time no more than half of it remains in the offering
func (g *Game) checkFloat(c *company.MajorCompany) error {
	if c.IsFloated() {
		return nil
	}
	par, ok := g.offering.ParPrice(c)
	if !ok {
		return nil
	}
	if company.PercentageOwned(g.offering, c) > 50 {
		return nil
	}
	_, err := g.journal.Give(g.bank, c, par.Times(g.rules.TotalShares()))
	return err
}
