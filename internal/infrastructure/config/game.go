package config

// GameConfig selects where rule variants come from
type GameConfig struct {
	// Directory searched for <variant>.yaml before the built-in variants
	RulesDir string `mapstructure:"rules_dir"`

	// Variant used when a new game does not name one
	DefaultVariant string `mapstructure:"default_variant" validate:"required,variant"`
}
