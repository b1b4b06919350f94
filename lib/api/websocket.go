package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

// @Summary	Open websocket for realtime stats
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		base
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't make websocket: %s", err), http.StatusBadRequest)
		return
	}
	a.setClient(ws, true)

	done := make(chan struct{})
	go a.websocketWriter(ws, done)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	close(done)
	a.setClient(ws, false)
}

func (a *Api) setClient(ws *websocket.Conn, connected bool) {
	a.wsMu.Lock()
	if connected {
		a.wsClients[ws] = true
	} else {
		delete(a.wsClients, ws)
	}
	n := len(a.wsClients)
	a.wsMu.Unlock()

	a.statsMu.Lock()
	a.Stats.WsClients = n
	a.statsMu.Unlock()
}

func (a *Api) websocketWriter(ws *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(a.wsPeriod)
	defer func() {
		ticker.Stop()
		if err := ws.Close(); err != nil {
			logger.Debug("could not close websocket", "err", err)
		}
	}()

	timeout := 10 * time.Second
	for {
		packet, err := a.statsJSON()
		if err != nil {
			return
		}
		if err := ws.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			logger.Warn("could not set write deadline", "err", err)
			return
		}
		if err := ws.WriteMessage(websocket.TextMessage, packet); err != nil {
			return
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
