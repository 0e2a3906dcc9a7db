package cli

import (
	"fmt"

	"github.com/andrescamacho/baron-go/internal/infrastructure/config"
)

// resolveGameID resolves the game from the --game flag or the user config
func resolveGameID() (string, error) {
	if gameID != "" {
		return gameID, nil
	}

	userCfg, err := loadUserConfig()
	if err != nil {
		return "", fmt.Errorf("no game specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultGameID != "" {
		return userCfg.DefaultGameID, nil
	}

	return "", fmt.Errorf("no game specified: use --game, or set a default with 'baron game use'")
}

// resolvePlayer resolves the acting player from the --as flag or the user config
func resolvePlayer() (string, error) {
	if playerName != "" {
		return playerName, nil
	}

	userCfg, err := loadUserConfig()
	if err != nil {
		return "", fmt.Errorf("no player specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultPlayer != "" {
		return userCfg.DefaultPlayer, nil
	}

	return "", fmt.Errorf("no player specified: use --as, or set a default with 'baron game use --as'")
}

func loadUserConfig() (*config.UserConfig, error) {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return nil, err
	}
	return handler.Load()
}

