// Package relay wraps the LiveKit room service. The relay owns room
// lifecycle and media entirely; this package only reads the participant
// directory and publishes application data messages.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
	"github.com/samber/lo"
	"github.com/twitchtv/twirp"

	"github.com/omar-p/duet-call/internal/models"
)

// ChatTopic is the data-channel topic both clients subscribe to.
const ChatTopic = "chat"

type RoomService struct {
	client *lksdk.RoomServiceClient
}

// NewRoomService builds a client for the relay's HTTP API.
func NewRoomService(endpoint, apiKey, apiSecret string) *RoomService {
	return &RoomService{client: lksdk.NewRoomServiceClient(endpoint, apiKey, apiSecret)}
}

// ListIdentities returns the identities connected to a room. Rooms are
// created lazily by the relay on first connection, so a NotFound from the
// directory means "empty room", not a failure.
func (s *RoomService) ListIdentities(ctx context.Context, room string) ([]string, error) {
	res, err := s.client.ListParticipants(ctx, &livekit.ListParticipantsRequest{Room: room})
	if err != nil {
		var twerr twirp.Error
		if errors.As(err, &twerr) && twerr.Code() == twirp.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return lo.Map(res.Participants, func(p *livekit.ParticipantInfo, _ int) string {
		return p.Identity
	}), nil
}

// PublishChat sends a chat envelope on the room's reliable data channel.
func (s *RoomService) PublishChat(ctx context.Context, room string, env models.ChatEnvelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal chat envelope: %w", err)
	}
	topic := ChatTopic
	_, err = s.client.SendData(ctx, &livekit.SendDataRequest{
		Room:  room,
		Data:  data,
		Kind:  livekit.DataPacket_RELIABLE,
		Topic: &topic,
	})
	if err != nil {
		return fmt.Errorf("publish chat message: %w", err)
	}
	return nil
}
