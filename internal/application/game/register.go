package game

import (
	"github.com/andrescamacho/baron-go/internal/application/game/commands"
	"github.com/andrescamacho/baron-go/internal/application/game/queries"
	"github.com/andrescamacho/baron-go/internal/application/game/session"
	"github.com/andrescamacho/baron-go/internal/application/mediator"
	domainGame "github.com/andrescamacho/baron-go/internal/domain/game"
	"github.com/andrescamacho/baron-go/internal/domain/ledger"
)

// RegisterHandlers registers every game command and query with the mediator
func RegisterHandlers(
	med mediator.Mediator,
	registry *session.Registry,
	gameRepo domainGame.GameRepository,
	transactionRepo ledger.TransactionRepository,
	defaultVariant string,
) error {
	if err := mediator.RegisterHandler[*commands.CreateGameCommand](med, commands.NewCreateGameHandler(registry, defaultVariant)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*commands.PerformActionCommand](med, commands.NewPerformActionHandler(registry)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*queries.GetGameStateQuery](med, queries.NewGetGameStateHandler(registry)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*queries.GetLedgerQuery](med, queries.NewGetLedgerHandler(gameRepo, transactionRepo)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*queries.ListGamesQuery](med, queries.NewListGamesHandler(gameRepo)); err != nil {
		return err
	}
	return nil
}
