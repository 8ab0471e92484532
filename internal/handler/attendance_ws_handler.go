package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/orgportal-backend/internal/config"
	"github.com/stemsi/orgportal-backend/internal/middleware"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/service"
	ws "github.com/stemsi/orgportal-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// AttendanceWSHandler streams live check-in events to program monitors.
type AttendanceWSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewAttendanceWSHandler creates a new AttendanceWSHandler.
func NewAttendanceWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *AttendanceWSHandler {
	return &AttendanceWSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "attendance_ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// AttendanceStream godoc
// WS /ws/v1/programs/:id/attendance?token=...
// Upgrades to WebSocket and forwards every check-in published on the
// program's attendance channel until the client disconnects.
func (h *AttendanceWSHandler) AttendanceStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil || (claims.Role != model.RoleCoordinator && claims.Role != model.RoleOfficer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	programID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Int("program_id", programID).
		Int("user_id", claims.UserID).
		Logger()

	wsLog.Info().Msg("Attendance monitor connected")

	ctx := c.Request.Context()
	pubsub := h.rdb.Subscribe(ctx, config.CacheKey.ProgramAttendanceChannel(programID))
	defer pubsub.Close()

	// Reader goroutine: forwards pings to the writer loop and unblocks it
	// when the client goes away. All frame writes happen in the select loop
	// below, since the connection allows only one concurrent writer.
	done := make(chan struct{})
	pings := make(chan struct{}, 1)
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				select {
				case pings <- struct{}{}:
				default:
				}
			}
		}
	}()

	events := pubsub.Channel()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, dropping monitor")
				return
			}
		case msg, ok := <-events:
			if !ok {
				return
			}

			var event service.CheckInEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				wsLog.Error().Err(err).Msg("Invalid check-in payload")
				continue
			}

			err := ws.WriteTyped(conn, ws.CheckInMessage{
				Event:       ws.EventCheckIn,
				ProgramID:   event.ProgramID,
				StudentID:   event.StudentID,
				StudentName: event.StudentName,
				CheckedInAt: event.CheckedInAt,
			})
			if err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, dropping monitor")
				return
			}
		}
	}
}
