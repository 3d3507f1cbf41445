package admission

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenTTL bounds the lifetime of a relay credential. The relay rejects
// the token after this, so a stale link cannot be reused.
const tokenTTL = time.Hour

// videoGrant mirrors the relay's video-grant claim. Only room-scoped join
// capability is granted; everything else stays at the relay's defaults.
type videoGrant struct {
	Room     string `json:"room,omitempty"`
	RoomJoin bool   `json:"roomJoin,omitempty"`
}

type relayClaims struct {
	Video videoGrant `json:"video"`
	jwt.RegisteredClaims
}

// mintToken signs a relay access token for one identity in one room.
func mintToken(apiKey, apiSecret, room, identity string) (string, error) {
	now := time.Now()
	claims := relayClaims{
		Video: videoGrant{Room: room, RoomJoin: true},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    apiKey,
			Subject:   identity,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(apiSecret))
	if err != nil {
		return "", fmt.Errorf("sign relay token: %w", err)
	}
	return signed, nil
}
