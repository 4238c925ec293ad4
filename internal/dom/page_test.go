package dom

import (
	"colorchanger/internal/events"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_GetElementByID(t *testing.T) {
	p := NewPage(nil, "colorButton")

	el, err := p.GetElementByID("colorButton")
	require.NoError(t, err)
	assert.Equal(t, "colorButton", el.ID())

	_, err = p.GetElementByID("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrElementNotFound))

	var nf *ElementNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing", nf.ID)
}

func TestPage_Body(t *testing.T) {
	p := NewPage(nil)
	body, err := p.Body()
	require.NoError(t, err)
	assert.Equal(t, BodyID, body.ID())

	p.DetachBody()
	_, err = p.Body()
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestPage_SetStylePublishes(t *testing.T) {
	bus := events.NewBus()
	p := NewPage(bus)

	body, err := p.Body()
	require.NoError(t, err)
	body.SetStyle(PropBackgroundColor, "#ff")

	assert.Equal(t, "#ff", p.Style(BodyID, PropBackgroundColor))

	evs, ok := bus.Next()
	require.True(t, ok)
	assert.Equal(t, []events.StyleChangeEvent{{Target: BodyID, Property: PropBackgroundColor, Value: "#ff"}}, evs)
}

func TestPage_SetStyleUnreadBusDoesNotBlock(t *testing.T) {
	bus := events.NewBus()
	p := NewPage(bus)
	body, _ := p.Body()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			body.SetStyle(PropBackgroundColor, "#1")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SetStyle blocked on an unread bus")
	}
}

func TestPage_Click(t *testing.T) {
	p := NewPage(nil, "colorButton")
	el, _ := p.GetElementByID("colorButton")

	var got []Event
	el.AddEventListener(EventClick, func(ev Event) error {
		got = append(got, ev)
		return nil
	})
	el.AddEventListener("mouseover", func(Event) error {
		t.Error("mouseover listener should not fire on click")
		return nil
	})

	require.NoError(t, p.Click("colorButton"))
	require.Len(t, got, 1)
	assert.Equal(t, Event{Type: EventClick, TargetID: "colorButton"}, got[0])
}

func TestPage_ClickMissing(t *testing.T) {
	p := NewPage(nil)
	assert.ErrorIs(t, p.Click("colorButton"), ErrElementNotFound)
}

func TestPage_ClickJoinsListenerErrors(t *testing.T) {
	p := NewPage(nil, "b")
	el, _ := p.GetElementByID("b")
	e1 := errors.New("first")
	e2 := errors.New("second")
	el.AddEventListener(EventClick, func(Event) error { return e1 })
	el.AddEventListener(EventClick, func(Event) error { return e2 })

	err := p.Click("b")
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
}

func TestPage_ClickSerialized(t *testing.T) {
	p := NewPage(nil, "b")
	el, _ := p.GetElementByID("b")

	var mu sync.Mutex
	running, maxRunning := 0, 0
	el.AddEventListener(EventClick, func(Event) error {
		mu.Lock()
		running++
		if running > maxRunning {
			maxRunning = running
		}
		mu.Unlock()
		time.Sleep(time.Millisecond)
		mu.Lock()
		running--
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Click("b")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxRunning)
}

func TestPage_AddRemoveElement(t *testing.T) {
	p := NewPage(nil)
	n := p.AddElement("x")
	assert.Equal(t, 0, n.ListenerCount(EventClick))

	_, err := p.GetElementByID("x")
	require.NoError(t, err)

	p.RemoveElement("x")
	_, err = p.GetElementByID("x")
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestPage_ClickRead(t *testing.T) {
	p := NewPage(nil, "colorButton")
	btn, _ := p.GetElementByID("colorButton")
	n := 0
	btn.AddEventListener(EventClick, func(Event) error {
		n++
		body, _ := p.Body()
		body.SetStyle(PropBackgroundColor, fmt.Sprintf("#%x", n))
		return nil
	})

	var wg sync.WaitGroup
	seen := make(chan string, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := p.ClickRead("colorButton", BodyID, PropBackgroundColor)
			assert.NoError(t, err)
			seen <- v
		}()
	}
	wg.Wait()
	close(seen)

	// every click reads back its own write, never a later one
	unique := make(map[string]bool)
	for v := range seen {
		assert.False(t, unique[v], "value %s read by two clicks", v)
		unique[v] = true
	}
	assert.Len(t, unique, 100)
}

func TestPage_ClickReadMissing(t *testing.T) {
	p := NewPage(nil)
	_, err := p.ClickRead("colorButton", BodyID, PropBackgroundColor)
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestPage_PublishAfterBusClosed(t *testing.T) {
	bus := events.NewBus()
	bus.Close()
	p := NewPage(bus)
	body, _ := p.Body()

	assert.NotPanics(t, func() { body.SetStyle(PropBackgroundColor, "#1") })
	assert.Equal(t, "#1", p.Style(BodyID, PropBackgroundColor))
}
