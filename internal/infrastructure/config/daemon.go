package config

import "time"

// DaemonConfig holds daemon service configuration
type DaemonConfig struct {
	// gRPC server address for daemon (host:port), used when no socket is set
	Address string `mapstructure:"address" validate:"required"`

	// Unix socket path for IPC
	SocketPath string `mapstructure:"socket_path"`

	// PID file location
	PIDFile string `mapstructure:"pid_file"`

	// Maximum number of games kept in memory at once
	MaxSessions int `mapstructure:"max_sessions" validate:"min=1"`

	// Per-game action submission limit
	ActionRate ActionRateConfig `mapstructure:"action_rate"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}

// ActionRateConfig bounds how fast actions can be submitted to a single game
type ActionRateConfig struct {
	// Sustained actions per second
	PerSecond float64 `mapstructure:"per_second" validate:"gt=0"`

	// Burst size
	Burst int `mapstructure:"burst" validate:"min=1"`
}
