package pages

import (
	"colorchanger/internal/broadcast"
	"colorchanger/internal/changer"
	"colorchanger/internal/color"
	"colorchanger/internal/dom"
	"colorchanger/internal/events"
	"colorchanger/internal/wshub"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultTTL = 1 * time.Hour

type Config struct {
	ControlID string
	TTL       time.Duration
	Options   []changer.Option
}

type Store struct {
	mu    sync.Mutex
	pages map[string]*Page
	cfg   Config
}

func NewStore(cfg Config) *Store {
	if cfg.ControlID == "" {
		cfg.ControlID = changer.DefaultControlID
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	s := &Store{
		pages: make(map[string]*Page),
		cfg:   cfg,
	}
	go s.sweepStale()
	return s
}

func (s *Store) Create(ownerID string) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Try up to 10 times to generate a unique code
	for range 10 {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating page code: %w", err)
		}
		if _, exists := s.pages[code]; exists {
			continue
		}

		bus := events.NewBus()
		doc := dom.NewPage(bus, s.cfg.ControlID)
		opts := append([]changer.Option{changer.WithControlID(s.cfg.ControlID)}, s.cfg.Options...)
		c, err := changer.Init(doc, opts...)
		if err != nil {
			return nil, fmt.Errorf("initializing page: %w", err)
		}

		hub := wshub.NewHub()
		b := broadcast.NewBroadcaster(bus, func(ev events.StyleChangeEvent) {
			hub.Broadcast(styleMessage(ev))
		})

		page := &Page{
			ID:          uuid.New().String(),
			Code:        code,
			Doc:         doc,
			Changer:     c,
			Broadcaster: b,
			Hub:         hub,
			CreatedAt:   time.Now(),
			OwnerID:     ownerID,
			bus:         bus,
		}
		s.pages[code] = page
		return page, nil
	}
	return nil, fmt.Errorf("failed to generate unique page code after 10 attempts")
}

func (s *Store) Get(code string) *Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages[code]
}

// Delete removes the page and closes it.
func (s *Store) Delete(code string) {
	s.mu.Lock()
	page, ok := s.pages[code]
	delete(s.pages, code)
	s.mu.Unlock()
	if ok {
		page.Close()
	}
}

func (s *Store) List() []*Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Page, 0, len(s.pages))
	for _, p := range s.pages {
		list = append(list, p)
	}
	return list
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Sweep closes and drops pages older than the TTL and returns how many were
// removed.
func (s *Store) Sweep(now time.Time) int {
	var stale []*Page
	s.mu.Lock()
	for code, page := range s.pages {
		if now.Sub(page.CreatedAt) > s.cfg.TTL {
			delete(s.pages, code)
			stale = append(stale, page)
		}
	}
	s.mu.Unlock()

	for _, page := range stale {
		page.Close()
		log.Printf("[Pages] Swept stale page %s\n", page.Code)
	}
	return len(stale)
}

// styleMessage turns a style change into a websocket message. Color values
// also carry their RGB channels; a value that is not a color is logged and
// sent without them.
func styleMessage(ev events.StyleChangeEvent) wshub.ServerMessage {
	msg := wshub.ServerMessage{
		Type:      wshub.TypeStyle,
		ElementID: ev.Target,
		Property:  ev.Property,
		Value:     ev.Value,
	}
	if ev.Property != dom.PropBackgroundColor {
		return msg
	}
	v, err := color.ParseHex(ev.Value)
	if err != nil {
		log.Printf("[Pages] Unexpected %s value %q on %s: %v\n", ev.Property, ev.Value, ev.Target, err)
		return msg
	}
	r, g, b := v.RGB()
	msg.RGB = []int{int(r), int(g), int(b)}
	return msg
}

func (s *Store) sweepStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for now := range ticker.C {
		s.Sweep(now)
	}
}
