package v1

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/towercard/backend/internal/flow"
	"github.com/towercard/backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

func (h *Handler) upgrader() *gorillaws.Upgrader {
	return &gorillaws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// native mobile clients send no Origin
			if origin == "" {
				return true
			}
			return slices.Contains(h.config.HttpServer.AllowedOrigins, origin)
		},
	}
}

// @Summary Watch flow
// @Tags Flows
// @Description WebSocket stream of flow snapshots, starting with the current one
// @ModuleID flowWatch
// @Param id path string true "Flow ID"
// @Success 101
// @Failure 404 {object} ErrorStruct
// @Router /flows/{id}/ws [get]
func (h *Handler) flowWatch(c *gin.Context) {
	id, err := h.getFlowID(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, FlowInvalidIDCode)
		return
	}

	snapshots, cancel, err := h.services.Flows.Subscribe(c.Request.Context(), id)
	if err != nil {
		h.flowErrorResponse(c, id, flow.Snapshot{}, err)
		return
	}
	defer cancel()

	conn, err := h.upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.String("flow_id", id.String()), zap.Error(err))
		return
	}
	defer conn.Close()

	// the reader only exists to notice the peer going away and answer pongs
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case snapshot, ok := <-snapshots:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(gorillaws.CloseMessage, gorillaws.FormatCloseMessage(gorillaws.CloseGoingAway, "flow closed"))
				return
			}
			if err := conn.WriteJSON(newFlowResponse(id, snapshot)); err != nil {
				logger.Debug("websocket write failed", zap.String("flow_id", id.String()), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(gorillaws.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
