package dom

import (
	"colorchanger/internal/events"
	"errors"
	"log"
	"sync"
)

// Page is an in-memory Document. Click dispatch is serialized per page.
type Page struct {
	mu       sync.Mutex
	dispatch sync.Mutex
	elements map[string]*Node
	body     *Node
	bus      *events.Bus
}

// NewPage creates a page with a body and one element per id. bus may be nil.
func NewPage(bus *events.Bus, ids ...string) *Page {
	p := &Page{
		elements: make(map[string]*Node),
		bus:      bus,
	}
	p.body = p.newNode(BodyID)
	for _, id := range ids {
		p.elements[id] = p.newNode(id)
	}
	return p
}

func (p *Page) newNode(id string) *Node {
	return &Node{
		id:        id,
		page:      p,
		styles:    make(map[string]string),
		listeners: make(map[string][]Listener),
	}
}

// AddElement inserts an element, replacing any element with the same id.
func (p *Page) AddElement(id string) *Node {
	n := p.newNode(id)
	p.mu.Lock()
	p.elements[id] = n
	p.mu.Unlock()
	return n
}

func (p *Page) RemoveElement(id string) {
	p.mu.Lock()
	delete(p.elements, id)
	p.mu.Unlock()
}

// DetachBody drops the body so later Body lookups fail.
func (p *Page) DetachBody() {
	p.mu.Lock()
	p.body = nil
	p.mu.Unlock()
}

func (p *Page) GetElementByID(id string) (Element, error) {
	n, err := p.node(id)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Page) Body() (Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.body == nil {
		return nil, &ElementNotFoundError{ID: BodyID}
	}
	return p.body, nil
}

func (p *Page) node(id string) (*Node, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id == BodyID && p.body != nil {
		return p.body, nil
	}
	n, ok := p.elements[id]
	if !ok {
		return nil, &ElementNotFoundError{ID: id}
	}
	return n, nil
}

// Click dispatches a click on the element with the given id and returns the
// joined listener errors. Only one click runs at a time on a page.
func (p *Page) Click(id string) error {
	n, err := p.node(id)
	if err != nil {
		return err
	}
	p.dispatch.Lock()
	defer p.dispatch.Unlock()
	return n.dispatchEvent(Event{Type: EventClick, TargetID: id})
}

// ClickRead dispatches a click like Click and reads styleID's property
// before the next click on the page can run, so the value is the one this
// click left behind.
func (p *Page) ClickRead(id, styleID, property string) (string, error) {
	n, err := p.node(id)
	if err != nil {
		return "", err
	}
	p.dispatch.Lock()
	defer p.dispatch.Unlock()
	err = n.dispatchEvent(Event{Type: EventClick, TargetID: id})
	return p.Style(styleID, property), err
}

// Style reads a style property of an element. Missing elements read as "".
func (p *Page) Style(id, property string) string {
	n, err := p.node(id)
	if err != nil {
		return ""
	}
	return n.Style(property)
}

func (p *Page) publish(ev events.StyleChangeEvent) {
	if p.bus == nil {
		return
	}
	if !p.bus.Publish(ev) {
		log.Printf("[DOM] Event bus closed, %s change on %s not published\n", ev.Property, ev.Target)
	}
}

// Node is an element of a Page.
type Node struct {
	id        string
	page      *Page
	mu        sync.Mutex
	styles    map[string]string
	listeners map[string][]Listener
}

func (n *Node) ID() string { return n.id }

func (n *Node) SetStyle(property, value string) {
	n.mu.Lock()
	n.styles[property] = value
	n.mu.Unlock()
	n.page.publish(events.StyleChangeEvent{Target: n.id, Property: property, Value: value})
}

func (n *Node) Style(property string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.styles[property]
}

func (n *Node) AddEventListener(event string, fn Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners[event] = append(n.listeners[event], fn)
}

// ListenerCount reports how many listeners are bound for event.
func (n *Node) ListenerCount(event string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners[event])
}

func (n *Node) dispatchEvent(ev Event) error {
	n.mu.Lock()
	ls := append([]Listener(nil), n.listeners[ev.Type]...)
	n.mu.Unlock()

	var errs []error
	for _, fn := range ls {
		if err := fn(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
