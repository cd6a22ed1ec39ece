package config

// Environment names recognized in ServerConfig.Env.
// Anything other than EnvProduction is treated as a development-style
// environment by components that change behavior per environment.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Env      string `mapstructure:"env" validate:"required,oneof=production development"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`

	// Connection pool tuning. Zero values fall back to the defaults set
	// in Load.
	MaxOpenConns        int `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns        int `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMins int `mapstructure:"conn_max_lifetime_mins" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// IsProduction reports whether the server is configured for the production
// environment.
func (c ServerConfig) IsProduction() bool {
	return c.Env == EnvProduction
}
