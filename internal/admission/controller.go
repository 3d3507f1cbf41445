package admission

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/omar-p/duet-call/config"
	"github.com/omar-p/duet-call/internal/models"
)

// Admission outcomes, mapped to HTTP statuses by the handler layer.
var (
	ErrInvalidRequest = errors.New("room, role and password are required")
	ErrInvalidRole    = errors.New("unknown role")
	ErrUnauthorized   = errors.New("invalid credentials")
	ErrRoleTaken      = errors.New("role already connected in this room")
)

// Directory lists the participant identities currently connected to a room.
// A room that does not exist yet reports zero identities, not an error.
type Directory interface {
	ListIdentities(ctx context.Context, room string) ([]string, error)
}

// Controller validates join requests and mints relay credentials. It holds
// no state between requests; uniqueness enforcement stays advisory and the
// relay's own identity check remains authoritative.
type Controller struct {
	relay config.RelayConfig
	roles config.RolesConfig
	dir   Directory
	log   *slog.Logger
}

func NewController(relay config.RelayConfig, roles config.RolesConfig, dir Directory, log *slog.Logger) *Controller {
	return &Controller{relay: relay, roles: roles, dir: dir, log: log}
}

// Admit validates the request in a fixed order (presence, role, password,
// seat uniqueness) and returns a one-hour relay credential on success.
func (c *Controller) Admit(ctx context.Context, req models.JoinRequest) (models.JoinResponse, error) {
	if req.Room == "" || req.Role == "" || req.Password == "" {
		return models.JoinResponse{}, ErrInvalidRequest
	}

	expected, known := c.roles.PasswordFor(req.Role)
	if !known {
		return models.JoinResponse{}, ErrInvalidRole
	}

	if err := c.roles.Require(); err != nil {
		return models.JoinResponse{}, err
	}
	// Deliberately generic: the caller cannot tell which check failed.
	if req.Password != expected {
		return models.JoinResponse{}, ErrUnauthorized
	}

	if err := c.relay.Require(); err != nil {
		return models.JoinResponse{}, err
	}

	identity := strings.ToUpper(req.Role)

	identities, err := c.dir.ListIdentities(ctx, req.Room)
	if err != nil {
		return models.JoinResponse{}, err
	}
	taken := lo.ContainsBy(identities, func(id string) bool {
		return strings.EqualFold(id, identity)
	})
	if taken {
		return models.JoinResponse{}, ErrRoleTaken
	}

	token, err := mintToken(c.relay.APIKey, c.relay.APISecret, req.Room, identity)
	if err != nil {
		return models.JoinResponse{}, err
	}

	c.log.Info("admitted participant", "room", req.Room, "identity", identity)

	return models.JoinResponse{
		Token:    token,
		RelayURL: c.relay.URL,
		Identity: identity,
	}, nil
}
