package controllers

import (
	"net/http"
	"net/url"

	"github.com/Xfhreall/armaso-pos/kds"
	"github.com/Xfhreall/armaso-pos/middlewares"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type KDSController struct {
	Hub      *kds.Hub
	upgrader websocket.Upgrader
}

// NewKDSController accepts websocket upgrades from same-host pages and from origins.
func NewKDSController(hub *kds.Hub, origins []string) *KDSController {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &KDSController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed[origin] {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

// KDSHandler -> websocket feed for kitchen screens
func (kc *KDSController) KDSHandler(c *gin.Context) {
	username := c.GetString(middlewares.ContextUsername)

	ws, err := kc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.InfoLogger.WithError(err).Warn("kitchen websocket upgrade failed")
		return
	}

	kc.Hub.Register(ws, username)
	utils.InfoLogger.WithField("username", username).Info("kitchen screen connected")

	// reads only detect the disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kc.Hub.Unregister(ws)
	utils.InfoLogger.WithField("username", username).Info("kitchen screen disconnected")
}
