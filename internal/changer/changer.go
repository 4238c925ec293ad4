// Package changer binds a click control to a random background color.
package changer

import (
	"colorchanger/internal/color"
	"colorchanger/internal/dom"
	"errors"
	"fmt"
)

const DefaultControlID = "colorButton"

// ColorChanger assigns a freshly drawn color to the document body on every
// call. It keeps no color state between calls.
type ColorChanger struct {
	doc       dom.Document
	source    color.Source
	controlID string
	padded    bool
	rec       Recorder
}

// Recorder observes clicks, applied colors and failed lookups.
type Recorder interface {
	Click()
	ColorChanged()
	ElementNotFound(id string)
}

type Option func(*ColorChanger)

func WithSource(src color.Source) Option {
	return func(c *ColorChanger) { c.source = src }
}

func WithControlID(id string) Option {
	return func(c *ColorChanger) { c.controlID = id }
}

// WithPadding switches the output to always-six-digit "#rrggbb".
func WithPadding(padded bool) Option {
	return func(c *ColorChanger) { c.padded = padded }
}

func WithRecorder(r Recorder) Option {
	return func(c *ColorChanger) { c.rec = r }
}

// New builds a changer for doc without binding any listener.
func New(doc dom.Document, opts ...Option) *ColorChanger {
	c := &ColorChanger{
		doc:       doc,
		source:    color.MathSource(),
		controlID: DefaultControlID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init looks the control up once and binds ChangeBackgroundColor to its
// click event. A missing control binds nothing and returns an
// ElementNotFound error.
func Init(doc dom.Document, opts ...Option) (*ColorChanger, error) {
	c := New(doc, opts...)
	ctrl, err := doc.GetElementByID(c.controlID)
	if err != nil {
		c.notFound(err)
		return nil, fmt.Errorf("binding color control: %w", err)
	}
	ctrl.AddEventListener(dom.EventClick, func(dom.Event) error {
		if c.rec != nil {
			c.rec.Click()
		}
		return c.ChangeBackgroundColor()
	})
	return c, nil
}

func (c *ColorChanger) ControlID() string { return c.controlID }

// ChangeBackgroundColor draws a color and sets it as the body background.
func (c *ColorChanger) ChangeBackgroundColor() error {
	s := color.Random(c.source).Format(c.padded)
	body, err := c.doc.Body()
	if err != nil {
		c.notFound(err)
		return fmt.Errorf("changing background color: %w", err)
	}
	body.SetStyle(dom.PropBackgroundColor, s)
	if c.rec != nil {
		c.rec.ColorChanged()
	}
	return nil
}

func (c *ColorChanger) notFound(err error) {
	if c.rec == nil {
		return
	}
	var nf *dom.ElementNotFoundError
	if errors.As(err, &nf) {
		c.rec.ElementNotFound(nf.ID)
	}
}
