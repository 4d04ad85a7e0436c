package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"qna_workspace/internal/logger"
	"qna_workspace/internal/middleware"
	"qna_workspace/internal/watch"
)

// WSHandler streams hub events to browser clients over a websocket. Each
// connection subscribes to the question and session list topics; a
// ?session=<id> query adds that session's chat topic and a valid ?token=
// query adds the caller's notification topic.
//
// The upgrade goes through net/http via the fiber adaptor because the
// websocket handshake needs the hijackable ResponseWriter fasthttp does not
// expose through fiber's own API.
type WSHandler struct {
	Hub *watch.Hub
	Log *logger.Logger
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

func (h *WSHandler) Stream() fiber.Handler {
	return adaptor.HTTPHandlerFunc(h.serve)
}

func (h *WSHandler) serve(w http.ResponseWriter, r *http.Request) {
	topics := []string{watch.TopicQuestions, watch.TopicSessions}
	if sessionID := r.URL.Query().Get("session"); sessionID != "" {
		topics = append(topics, watch.SessionTopic(sessionID))
	}
	if uid := wsUserID(r.URL.Query().Get("token")); uid != "" {
		topics = append(topics, watch.UserTopic(uid))
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	sub := h.Hub.Subscribe(topics...)
	defer sub.Cancel()
	defer conn.Close()

	// Reader drains client frames so close and pong handling work; clients
	// never send payloads we act on.
	done := make(chan struct{})
	go func() {
		defer close(done)
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
		case ev, open := <-sub.C:
			if !open {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// wsUserID validates a token passed in the query string. Browsers cannot set
// an Authorization header on a websocket handshake, so the token rides as a
// query parameter instead.
func wsUserID(tokenStr string) string {
	if tokenStr == "" {
		return ""
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return ""
	}
	var claims middleware.UserClaims
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims,
		func(t *jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return ""
	}
	if claims.UID != "" {
		return claims.UID
	}
	return claims.Subject
}
