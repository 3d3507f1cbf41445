package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omar-p/duet-call/config"
	"github.com/omar-p/duet-call/internal/admission"
	"github.com/omar-p/duet-call/internal/models"
)

// Version is reported in translation responses so clients can detect
// backend rollouts.
const Version = "1.2.0"

// Admitter validates a join request and mints a relay credential.
type Admitter interface {
	Admit(ctx context.Context, req models.JoinRequest) (models.JoinResponse, error)
}

// Join handles POST /api/join.
func Join(ctrl Admitter, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.JoinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		res, err := ctrl.Admit(c.Request.Context(), req)
		if err != nil {
			status, msg := admissionStatus(err)
			if status == http.StatusInternalServerError {
				log.Error("admission failed", "room", req.Room, "error", err)
			}
			c.JSON(status, gin.H{"error": msg})
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

// admissionStatus maps admission errors onto the API's status codes.
// Config errors keep their message so operators see the missing setting;
// anything else unexpected stays generic.
func admissionStatus(err error) (int, string) {
	var missing *config.MissingSettingError
	switch {
	case errors.Is(err, admission.ErrInvalidRequest),
		errors.Is(err, admission.ErrInvalidRole):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, admission.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, admission.ErrRoleTaken):
		return http.StatusConflict, err.Error()
	case errors.As(err, &missing):
		return http.StatusInternalServerError, missing.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

// Seats handles GET /api/rooms/:room/seats so the UI can show seat
// occupancy before a join attempt.
func Seats(dir admission.Directory, relay config.RelayConfig, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		room := c.Param("room")

		if err := relay.Require(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		identities, err := dir.ListIdentities(c.Request.Context(), room)
		if err != nil {
			log.Error("seat lookup failed", "room", room, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if identities == nil {
			identities = []string{}
		}
		c.JSON(http.StatusOK, models.SeatsResponse{Room: room, Taken: identities})
	}
}
