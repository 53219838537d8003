package config

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Study   StudyConfig   `mapstructure:"study"`
}

// ServerConfig contains the HTTP host and logging settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// AllowedOrigins lists the CORS origins of browser clients.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig selects the persistence gateway.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	// DSN is a file path (or ":memory:") for sqlite and a connection URL for postgres.
	DSN string `mapstructure:"dsn" validate:"required"`
}

// StudyConfig tunes the study ordering.
type StudyConfig struct {
	// ShuffleTies randomises the order of cards with equal priority.
	ShuffleTies bool `mapstructure:"shuffle_ties"`
}
