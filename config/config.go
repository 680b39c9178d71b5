package config

import "time"

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	SymmetricKey string

	// Authentication settings
	TokenExpiry      time.Duration
	LockoutThreshold int
	LockoutDuration  time.Duration

	// Scheduling settings
	MinAppointmentMinutes int
	MaxAppointmentMinutes int

	// Outbound email settings
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPass          string
	ClinicEmail       string
	AppointmentsEmail string
}

// Defaults applied by loadConfig when the environment leaves a value unset.
const (
	DefaultTokenExpiry           = 7 * 24 * time.Hour
	DefaultLockoutThreshold      = 5
	DefaultLockoutDuration       = 30 * time.Minute
	DefaultMinAppointmentMinutes = 15
	DefaultMaxAppointmentMinutes = 180
)

// GetSymmetricKey returns the PASETO symmetric key from the config
func (c *AppConfig) GetSymmetricKey() []byte {
	return []byte(c.SymmetricKey)
}
