package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	req := require.New(t)
	cfg, err := Load()
	req.NoError(err)
	req.Equal("8080", cfg.Port)
	req.Equal("development", cfg.Environment)
	req.Equal("omar", cfg.Roles.SeatA)
	req.Equal("mila", cfg.Roles.SeatB)
	req.Equal("https://api-free.deepl.com", cfg.DeepL.APIURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LIVEKIT_URL", "wss://relay.example.com")
	t.Setenv("ROLE_A_PASSWORD", "pw-a")
	t.Setenv("PROTECTED_TERMS", "Omar,Mila")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "wss://relay.example.com", cfg.Relay.URL)
	require.Equal(t, "pw-a", cfg.Roles.SeatAPassword)
	require.Equal(t, []string{"Omar", "Mila"}, cfg.Protected.Terms)
}

func TestRelayEndpoint(t *testing.T) {
	tests := []struct {
		name string
		cfg  RelayConfig
		want string
	}{
		{
			name: "explicit api url wins",
			cfg:  RelayConfig{URL: "wss://relay.example.com", APIURL: "https://api.example.com"},
			want: "https://api.example.com",
		},
		{
			name: "wss becomes https",
			cfg:  RelayConfig{URL: "wss://relay.example.com"},
			want: "https://relay.example.com",
		},
		{
			name: "ws becomes http",
			cfg:  RelayConfig{URL: "ws://localhost:7880"},
			want: "http://localhost:7880",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.cfg.Endpoint())
		})
	}
}

func TestRelayRequireNamesFirstMissing(t *testing.T) {
	req := require.New(t)

	err := RelayConfig{}.Require()
	var missing *MissingSettingError
	req.ErrorAs(err, &missing)
	req.Equal("LIVEKIT_URL", missing.Name)

	err = RelayConfig{URL: "wss://r"}.Require()
	req.ErrorAs(err, &missing)
	req.Equal("LIVEKIT_API_KEY", missing.Name)

	err = RelayConfig{URL: "wss://r", APIKey: "k"}.Require()
	req.ErrorAs(err, &missing)
	req.Equal("LIVEKIT_API_SECRET", missing.Name)

	req.NoError(RelayConfig{URL: "wss://r", APIKey: "k", APISecret: "s"}.Require())
}

func TestPasswordFor(t *testing.T) {
	req := require.New(t)
	roles := RolesConfig{SeatA: "omar", SeatAPassword: "a", SeatB: "mila", SeatBPassword: "b"}

	pw, ok := roles.PasswordFor("OMAR")
	req.True(ok)
	req.Equal("a", pw)

	pw, ok = roles.PasswordFor("Mila")
	req.True(ok)
	req.Equal("b", pw)

	_, ok = roles.PasswordFor("stranger")
	req.False(ok)
}
