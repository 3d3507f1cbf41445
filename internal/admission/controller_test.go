package admission

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/omar-p/duet-call/config"
	"github.com/omar-p/duet-call/internal/models"
)

type fakeDirectory struct {
	identities []string
	err        error
	lastRoom   string
}

func (f *fakeDirectory) ListIdentities(_ context.Context, room string) ([]string, error) {
	f.lastRoom = room
	return f.identities, f.err
}

func testRelay() config.RelayConfig {
	return config.RelayConfig{
		URL:       "wss://relay.example.com",
		APIKey:    "api-key",
		APISecret: "api-secret",
	}
}

func testRoles() config.RolesConfig {
	return config.RolesConfig{
		SeatA: "omar", SeatAPassword: "secret-a",
		SeatB: "mila", SeatBPassword: "secret-b",
	}
}

func newTestController(dir Directory) *Controller {
	return NewController(testRelay(), testRoles(), dir, slog.New(slog.DiscardHandler))
}

func TestAdmitSuccess(t *testing.T) {
	req := require.New(t)
	dir := &fakeDirectory{}
	ctrl := newTestController(dir)

	res, err := ctrl.Admit(context.Background(), models.JoinRequest{
		Room: "our-room", Role: "omar", Password: "secret-a",
	})
	req.NoError(err)
	req.Equal("OMAR", res.Identity)
	req.Equal("wss://relay.example.com", res.RelayURL)
	req.NotEmpty(res.Token)
	req.Equal("our-room", dir.lastRoom)
}

func TestAdmitRoleCaseInsensitive(t *testing.T) {
	req := require.New(t)
	ctrl := newTestController(&fakeDirectory{})

	res, err := ctrl.Admit(context.Background(), models.JoinRequest{
		Room: "our-room", Role: "OmAr", Password: "secret-a",
	})
	req.NoError(err)
	req.Equal("OMAR", res.Identity)
}

func TestAdmitTokenClaims(t *testing.T) {
	req := require.New(t)
	ctrl := newTestController(&fakeDirectory{})

	res, err := ctrl.Admit(context.Background(), models.JoinRequest{
		Room: "our-room", Role: "mila", Password: "secret-b",
	})
	req.NoError(err)

	var claims relayClaims
	parsed, err := jwt.ParseWithClaims(res.Token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte("api-secret"), nil
	})
	req.NoError(err)
	req.True(parsed.Valid)
	req.Equal("MILA", claims.Subject)
	req.Equal("api-key", claims.Issuer)
	req.NotEmpty(claims.ID)
	req.True(claims.Video.RoomJoin)
	req.Equal("our-room", claims.Video.Room)
	req.WithinDuration(time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAdmitMissingFields(t *testing.T) {
	ctrl := newTestController(&fakeDirectory{})
	tests := []struct {
		name string
		req  models.JoinRequest
	}{
		{name: "no room", req: models.JoinRequest{Role: "omar", Password: "secret-a"}},
		{name: "no role", req: models.JoinRequest{Room: "r", Password: "secret-a"}},
		{name: "no password", req: models.JoinRequest{Room: "r", Role: "omar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ctrl.Admit(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestAdmitUnknownRole(t *testing.T) {
	ctrl := newTestController(&fakeDirectory{})
	// Correct password for seat A does not help an unknown role.
	_, err := ctrl.Admit(context.Background(), models.JoinRequest{
		Room: "r", Role: "stranger", Password: "secret-a",
	})
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestAdmitWrongPassword(t *testing.T) {
	ctrl := newTestController(&fakeDirectory{})
	_, err := ctrl.Admit(context.Background(), models.JoinRequest{
		Room: "r", Role: "omar", Password: "secret-b",
	})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAdmitSeatTaken(t *testing.T) {
	dir := &fakeDirectory{identities: []string{"OMAR"}}
	ctrl := newTestController(dir)
	_, err := ctrl.Admit(context.Background(), models.JoinRequest{
		Room: "r", Role: "omar", Password: "secret-a",
	})
	require.ErrorIs(t, err, ErrRoleTaken)
}

func TestAdmitSeatTakenIsCaseInsensitive(t *testing.T) {
	dir := &fakeDirectory{identities: []string{"omar"}}
	ctrl := newTestController(dir)
	_, err := ctrl.Admit(context.Background(), models.JoinRequest{
		Room: "r", Role: "OMAR", Password: "secret-a",
	})
	require.ErrorIs(t, err, ErrRoleTaken)
}

func TestAdmitOtherSeatDoesNotBlock(t *testing.T) {
	dir := &fakeDirectory{identities: []string{"MILA"}}
	ctrl := newTestController(dir)
	_, err := ctrl.Admit(context.Background(), models.JoinRequest{
		Room: "r", Role: "omar", Password: "secret-a",
	})
	require.NoError(t, err)
}

func TestAdmitDirectoryError(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("relay unreachable")}
	ctrl := newTestController(dir)
	_, err := ctrl.Admit(context.Background(), models.JoinRequest{
		Room: "r", Role: "omar", Password: "secret-a",
	})
	require.ErrorContains(t, err, "relay unreachable")
}

func TestAdmitMissingRelayConfig(t *testing.T) {
	ctrl := NewController(config.RelayConfig{}, testRoles(), &fakeDirectory{}, slog.New(slog.DiscardHandler))
	_, err := ctrl.Admit(context.Background(), models.JoinRequest{
		Room: "r", Role: "omar", Password: "secret-a",
	})
	var missing *config.MissingSettingError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "LIVEKIT_URL", missing.Name)
}

func TestAdmitMissingPasswords(t *testing.T) {
	roles := config.RolesConfig{SeatA: "omar", SeatB: "mila"}
	ctrl := NewController(testRelay(), roles, &fakeDirectory{}, slog.New(slog.DiscardHandler))
	_, err := ctrl.Admit(context.Background(), models.JoinRequest{
		Room: "r", Role: "omar", Password: "anything",
	})
	var missing *config.MissingSettingError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "ROLE_A_PASSWORD", missing.Name)
}
