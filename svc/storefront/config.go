package storefront

import "time"

// Config holds browsing session settings loaded from the environment.
type Config struct {
	SessionCookie string        `env:"STOREFRONT_SESSION_COOKIE" envDefault:"sf_session"`
	SessionTTL    time.Duration `env:"STOREFRONT_SESSION_TTL" envDefault:"30m"`
	MaxSessions   int           `env:"STOREFRONT_MAX_SESSIONS" envDefault:"1000"`
	// GridSize caps how many catalog products a session's grid shows.
	GridSize int `env:"STOREFRONT_GRID_SIZE" envDefault:"100"`
}

func (c Config) withDefaults() Config {
	if c.SessionCookie == "" {
		c.SessionCookie = "sf_session"
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 30 * time.Minute
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = 1000
	}
	if c.GridSize <= 0 {
		c.GridSize = 100
	}
	return c
}
