//go:build js && wasm

// Package jsdom implements dom.Document over the browser's document object.
package jsdom

import (
	"colorchanger/internal/dom"
	"log"
	"syscall/js"
)

type Document struct {
	doc js.Value
}

// New wraps the global document.
func New() *Document {
	return &Document{doc: js.Global().Get("document")}
}

func (d *Document) GetElementByID(id string) (dom.Element, error) {
	v := d.doc.Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return nil, &dom.ElementNotFoundError{ID: id}
	}
	return &Element{id: id, v: v}, nil
}

func (d *Document) Body() (dom.Element, error) {
	v := d.doc.Get("body")
	if v.IsNull() || v.IsUndefined() {
		return nil, &dom.ElementNotFoundError{ID: dom.BodyID}
	}
	return &Element{id: dom.BodyID, v: v}, nil
}

type Element struct {
	id string
	v  js.Value
	// funcs keeps callbacks reachable for the lifetime of the element.
	funcs []js.Func
}

func (e *Element) ID() string { return e.id }

func (e *Element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

// AddEventListener registers fn with the browser. Listener errors are logged;
// the browser has no channel to return them on.
func (e *Element) AddEventListener(event string, fn dom.Listener) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if err := fn(dom.Event{Type: event, TargetID: e.id}); err != nil {
			log.Printf("[DOM] %s listener on %s: %v\n", event, e.id, err)
		}
		return nil
	})
	e.funcs = append(e.funcs, cb)
	e.v.Call("addEventListener", event, cb)
}
