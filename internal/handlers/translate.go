package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/omar-p/duet-call/config"
	"github.com/omar-p/duet-call/internal/models"
	"github.com/omar-p/duet-call/internal/translate"
)

// Translator runs the translation pipeline for one message.
type Translator interface {
	ProviderName() string
	Translate(ctx context.Context, req translate.Request) (translate.Result, error)
}

// ChatPublisher pushes a chat envelope onto a room's data channel.
type ChatPublisher interface {
	PublishChat(ctx context.Context, room string, env models.ChatEnvelope) error
}

// Translate handles POST /api/translate. When the request names a room and
// the relay is configured, the envelope is additionally published on that
// room's data channel; publish failures never fail the request.
func Translate(pipeline Translator, publisher ChatPublisher, deepL config.DeepLConfig, relay config.RelayConfig, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TranslateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		// Missing text is the client's problem before it is ours.
		if strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": translate.ErrEmptyText.Error()})
			return
		}

		if err := deepL.Require(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "translation unavailable",
				"detail":  err.Error(),
				"version": Version,
			})
			return
		}

		res, err := pipeline.Translate(c.Request.Context(), translate.Request{
			Text:       req.Text,
			SourceLang: req.MyLang,
			TargetLang: req.TargetLang,
			Tone:       req.Tone,
		})
		if err != nil {
			if errors.Is(err, translate.ErrEmptyText) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Error("translation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "translation failed",
				"detail":  err.Error(),
				"version": Version,
			})
			return
		}

		if req.Room != "" && publisher != nil && relay.Require() == nil {
			env := models.NewChatEnvelope(res.Original, res.Translated)
			if err := publisher.PublishChat(c.Request.Context(), req.Room, env); err != nil {
				log.Warn("chat publish failed", "room", req.Room, "error", err)
			}
		}

		c.JSON(http.StatusOK, models.TranslateResponse{
			Original:       res.Original,
			Translated:     res.Translated,
			DetectedSource: res.DetectedSource,
			Provider:       pipeline.ProviderName(),
			Version:        Version,
		})
	}
}
