package server

import (
	"colorchanger/internal/dom"
	"colorchanger/internal/wshub"
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	page := s.pageFromPath(r)
	if page == nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[WSHub] Accept error: %v\n", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	client := &wshub.Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	page.Hub.Register(client)
	defer page.Hub.Unregister(client.ID)
	s.Metrics.WSClients.Inc()
	defer s.Metrics.WSClients.Dec()

	go client.WritePump(ctx)

	if bg := page.Background(); bg != "" {
		page.Hub.Send(client.ID, wshub.ServerMessage{
			Type:      wshub.TypeStyle,
			ElementID: dom.BodyID,
			Property:  dom.PropBackgroundColor,
			Value:     bg,
		})
	}

	err = client.ReadPump(ctx, func(msg wshub.ClientMessage) {
		if msg.Type != wshub.TypeClick {
			return
		}
		if _, err := s.click(page, msg.ElementID); err != nil {
			page.Hub.Send(client.ID, wshub.ServerMessage{
				Type:      wshub.TypeError,
				ElementID: msg.ElementID,
				Error:     err.Error(),
			})
		}
	})

	status := websocket.CloseStatus(err)
	if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
		log.Printf("[WSHub] Client %s on %s closed: %v\n", client.ID, page.Code, err)
	}
}
