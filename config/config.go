package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all process configuration. Secrets are validated lazily by
// the request path that needs them, so the server can boot with a partial
// environment and still serve the paths that are configured.
type Config struct {
	Port           string   `envconfig:"PORT" default:"8080"`
	Environment    string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	Relay     RelayConfig
	Roles     RolesConfig
	DeepL     DeepLConfig
	Redis     RedisConfig
	Protected ProtectedConfig
}

// RelayConfig points at the LiveKit deployment the clients connect to.
type RelayConfig struct {
	// URL is the websocket endpoint handed back to clients in the credential.
	URL string `envconfig:"LIVEKIT_URL"`
	// APIURL is the HTTP endpoint for the room service. Derived from URL
	// (ws -> http) when unset.
	APIURL    string `envconfig:"LIVEKIT_API_URL"`
	APIKey    string `envconfig:"LIVEKIT_API_KEY"`
	APISecret string `envconfig:"LIVEKIT_API_SECRET"`
}

// RolesConfig names the two seats of a room and their passwords.
type RolesConfig struct {
	SeatA         string `envconfig:"ROLE_A_NAME" default:"omar"`
	SeatAPassword string `envconfig:"ROLE_A_PASSWORD"`
	SeatB         string `envconfig:"ROLE_B_NAME" default:"mila"`
	SeatBPassword string `envconfig:"ROLE_B_PASSWORD"`
}

type DeepLConfig struct {
	AuthKey string `envconfig:"DEEPL_AUTH_KEY"`
	APIURL  string `envconfig:"DEEPL_API_URL" default:"https://api-free.deepl.com"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// ProtectedConfig lists literal terms shielded from the translator.
// Empty means the built-in defaults of the translate package.
type ProtectedConfig struct {
	Terms []string `envconfig:"PROTECTED_TERMS"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Endpoint returns the room-service HTTP endpoint, deriving it from the
// websocket URL when LIVEKIT_API_URL is not set explicitly.
func (r RelayConfig) Endpoint() string {
	if r.APIURL != "" {
		return r.APIURL
	}
	switch {
	case strings.HasPrefix(r.URL, "wss://"):
		return "https://" + strings.TrimPrefix(r.URL, "wss://")
	case strings.HasPrefix(r.URL, "ws://"):
		return "http://" + strings.TrimPrefix(r.URL, "ws://")
	}
	return r.URL
}

// Require returns an error naming the first missing relay setting.
func (r RelayConfig) Require() error {
	switch {
	case r.URL == "":
		return missing("LIVEKIT_URL")
	case r.APIKey == "":
		return missing("LIVEKIT_API_KEY")
	case r.APISecret == "":
		return missing("LIVEKIT_API_SECRET")
	}
	return nil
}

// PasswordFor returns the configured password for a seat name, matched
// case-insensitively. ok is false for unknown seats.
func (r RolesConfig) PasswordFor(role string) (password string, ok bool) {
	switch strings.ToLower(role) {
	case strings.ToLower(r.SeatA):
		return r.SeatAPassword, true
	case strings.ToLower(r.SeatB):
		return r.SeatBPassword, true
	}
	return "", false
}

// Require returns an error naming the first missing seat password.
func (r RolesConfig) Require() error {
	switch {
	case r.SeatAPassword == "":
		return missing("ROLE_A_PASSWORD")
	case r.SeatBPassword == "":
		return missing("ROLE_B_PASSWORD")
	}
	return nil
}

// Require returns an error naming the missing DeepL setting.
func (d DeepLConfig) Require() error {
	if d.AuthKey == "" {
		return missing("DEEPL_AUTH_KEY")
	}
	return nil
}

// MissingSettingError names a required environment variable that is not
// set. Handlers surface its message verbatim so operators can tell which
// setting the failing path needs.
type MissingSettingError struct {
	Name string
}

func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Name)
}

func missing(name string) error {
	return &MissingSettingError{Name: name}
}
