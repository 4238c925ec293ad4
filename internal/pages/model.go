package pages

import (
	"colorchanger/internal/broadcast"
	"colorchanger/internal/changer"
	"colorchanger/internal/dom"
	"colorchanger/internal/events"
	"colorchanger/internal/wshub"
	"time"
)

// Page is one hosted document with its live fan-out.
type Page struct {
	ID          string
	Code        string
	Doc         *dom.Page
	Changer     *changer.ColorChanger
	Broadcaster *broadcast.Broadcaster
	Hub         *wshub.Hub
	CreatedAt   time.Time
	OwnerID     string

	bus *events.Bus
}

// Background reads the body background as the page currently shows it.
func (p *Page) Background() string {
	return p.Doc.Style(dom.BodyID, dom.PropBackgroundColor)
}

// Click dispatches a click on id and returns the background this click
// left, unaffected by clicks that run after it.
func (p *Page) Click(id string) (string, error) {
	return p.Doc.ClickRead(id, dom.BodyID, dom.PropBackgroundColor)
}

// Close stops the page's fan-out. SSE streams end once pending changes are
// delivered and websocket clients are disconnected.
func (p *Page) Close() {
	p.bus.Close()
	p.Hub.Close()
}
