package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Reminder ReminderConfig `mapstructure:"reminder" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port          int    `mapstructure:"port"           validate:"required,gt=0,lt=65536"`
	LogLevel      string `mapstructure:"log_level"      validate:"required,oneof=debug info warn error"`
	AllowedOrigin string `mapstructure:"allowed_origin" validate:"required"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// SMTPConfig contains the outbound email transport settings. Username and
// password left empty disable email delivery; the dispatcher then reports
// sends as skipped rather than failing.
type SMTPConfig struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=gmail outlook custom"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"     validate:"omitempty,gt=0,lt=65536"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// ReminderConfig contains the due-task reminder scheduler settings.
type ReminderConfig struct {
	// DailyAt is the UTC time of day ("HH:MM") at which the daily scan runs.
	// Due dates are compared by UTC calendar day, so the schedule uses the
	// same clock.
	DailyAt string `mapstructure:"daily_at" validate:"required"`

	// RunOnStart triggers one immediate scan when the scheduler starts.
	RunOnStart bool `mapstructure:"run_on_start"`
}
