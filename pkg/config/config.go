package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

// Jwt holds the signing secrets for the two cookie realms. AdminSecret is
// optional; when empty the user secret signs admin tokens as well.
type Jwt struct {
	Secret      string        `envconfig:"SECRET"`
	AdminSecret string        `envconfig:"ADMIN_SECRET"`
	Expiry      time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// AdminSecretOrFallback returns the admin signing secret, falling back to the
// user secret when no dedicated admin secret is configured.
func (j *Jwt) AdminSecretOrFallback() string {
	if j.AdminSecret != "" {
		return j.AdminSecret
	}
	return j.Secret
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// AI configures the external completion API used by the chat assistant.
type AI struct {
	ApiKey      string        `envconfig:"API_KEY"`
	ApiUrl      string        `envconfig:"API_URL" default:"https://api.mistral.ai"`
	Model       string        `envconfig:"MODEL" default:"mistral-small-latest"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[pocketfin]"`
}

type Server struct {
	Scheme      string `envconfig:"SCHEME" default:"http"`
	Host        string `envconfig:"HOST" default:"localhost"`
	Port        int    `envconfig:"PORT" default:"3000"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Jwt       *Jwt       `envconfig:"JWT"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	AI        *AI        `envconfig:"AI"`
}
