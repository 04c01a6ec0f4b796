package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const pingInterval = 25 * time.Second

type RealtimeController struct {
	RT       *services.RealtimeHub
	upgrader websocket.Upgrader
}

// NewRealtimeController accepts upgrades from the given browser origins; "*" allows any.
func NewRealtimeController(rt *services.RealtimeHub, origins []string) *RealtimeController {
	return &RealtimeController{
		RT:       rt,
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(origins)},
	}
}

// originChecker matches the Origin header exactly. Requests without one
// (native clients) are let through.
func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(strings.TrimSpace(o), "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowed["*"] {
			return true
		}
		return allowed[strings.TrimRight(origin, "/")]
	}
}

// Connect upgrades to a websocket that receives chat messages and notifications.
func (rc *RealtimeController) Connect(c *gin.Context) {
	uid := caller(c).ID

	conn, err := rc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	rc.RT.Register(cl)

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.Write(websocket.PingMessage, nil); err != nil {
					rc.RT.Unregister(cl)
					return
				}
			}
		}
	}()

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.RT.Unregister(cl)
			return
		}
	}
}
