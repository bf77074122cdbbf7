package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/emgbraker/greencompanions/config"
	"github.com/emgbraker/greencompanions/internal/auth"
	"github.com/emgbraker/greencompanions/internal/cache"
	"github.com/emgbraker/greencompanions/internal/chat"
	"github.com/emgbraker/greencompanions/internal/logger"
	"github.com/emgbraker/greencompanions/internal/repository"
	"github.com/emgbraker/greencompanions/internal/service"
	"github.com/emgbraker/greencompanions/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	chatWriteWait  = 10 * time.Second
	chatPongWait   = 60 * time.Second
	chatPingPeriod = (chatPongWait * 9) / 10
	chatSendBuffer = 64
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// UpgradeChatWS upgrades to WebSocket for a one-on-one chat; query: token,
// peer_id. The caller must have a mutual match with the peer. On open the
// server pushes the transcript (with day separators), marks the peer's
// messages read, and then streams live messages until either side hangs up.
func UpgradeChatWS(cfg *config.JWTConfig, hub *ws.Hub, chatSvc *service.ChatService, msgRepo *repository.MessageRepository, presence *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		peerIDStr := c.Query("peer_id")
		if token == "" || peerIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token and peer_id required"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		peerID64, err := strconv.ParseUint(peerIDStr, 10, 32)
		if err != nil || peerID64 == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer_id"})
			return
		}
		peerID := uint(peerID64)
		if err := chatSvc.RequireMutual(claims.UserID, peerID); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "no mutual match with this member"})
			return
		}

		conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		session, err := chat.Open(msgRepo, hub, claims.UserID, peerID)
		if err != nil {
			logger.Error("chat open failed", "user_id", claims.UserID, "peer_id", peerID, "error", err)
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "history load failed"),
				time.Now().Add(chatWriteWait))
			return
		}
		defer session.Close()

		ctx := c.Request.Context()
		presence.Heartbeat(ctx, claims.UserID)
		defer presence.SetOffline(ctx, claims.UserID)

		msgs, state := session.Snapshot()
		tr := chat.NewTranscript()
		tr.AddAll(msgs)
		initial, _ := json.Marshal(gin.H{
			"type":    "history",
			"state":   state,
			"entries": tr.Entries(time.Local),
		})

		conn.SetReadDeadline(time.Now().Add(chatPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(chatPongWait))
			presence.Heartbeat(ctx, claims.UserID)
			return nil
		})

		// All frames go through the writer goroutine; gorilla allows only
		// one concurrent writer per connection.
		out := make(chan []byte, chatSendBuffer)
		out <- initial
		done := make(chan struct{})
		go func() {
			defer close(done)
			ticker := time.NewTicker(chatPingPeriod)
			defer ticker.Stop()
			for {
				select {
				case payload, ok := <-out:
					if !ok {
						return
					}
					conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
					if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
						return
					}
				case ev, ok := <-session.Events():
					if !ok {
						return
					}
					if !session.Absorb(ev) {
						continue
					}
					payload, _ := json.Marshal(ev)
					conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
					if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
						return
					}
				case <-ticker.C:
					conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				}
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var in struct {
				Type    string `json:"type"`
				Content string `json:"content"`
			}
			if json.Unmarshal(raw, &in) != nil || in.Type != "message" {
				continue
			}
			var payload []byte
			m, err := chatSvc.Send(ctx, claims.UserID, peerID, in.Content)
			if err != nil {
				payload, _ = json.Marshal(gin.H{"type": "error", "error": err.Error()})
			} else {
				session.Record(*m)
				payload, _ = json.Marshal(gin.H{"type": "sent", "message": m})
			}
			select {
			case out <- payload:
			case <-done:
			}
			select {
			case <-done:
			default:
				continue
			}
			break
		}
		session.Close()
		<-done
	}
}
