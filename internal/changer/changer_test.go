package changer

import (
	"colorchanger/internal/color"
	"colorchanger/internal/dom"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDoc records every style write and listener binding.
type fakeDoc struct {
	control   *fakeElement
	body      *fakeElement
	lookups   int
	bodyCalls int
}

type fakeElement struct {
	id        string
	writes    []string
	listeners map[string][]dom.Listener
}

func (e *fakeElement) ID() string { return e.id }

func (e *fakeElement) SetStyle(property, value string) {
	e.writes = append(e.writes, property+"="+value)
}

func (e *fakeElement) AddEventListener(event string, fn dom.Listener) {
	if e.listeners == nil {
		e.listeners = make(map[string][]dom.Listener)
	}
	e.listeners[event] = append(e.listeners[event], fn)
}

func (e *fakeElement) click() error {
	var errs []error
	for _, fn := range e.listeners[dom.EventClick] {
		errs = append(errs, fn(dom.Event{Type: dom.EventClick, TargetID: e.id}))
	}
	return errors.Join(errs...)
}

func (d *fakeDoc) GetElementByID(id string) (dom.Element, error) {
	d.lookups++
	if d.control == nil || d.control.id != id {
		return nil, &dom.ElementNotFoundError{ID: id}
	}
	return d.control, nil
}

func (d *fakeDoc) Body() (dom.Element, error) {
	d.bodyCalls++
	if d.body == nil {
		return nil, &dom.ElementNotFoundError{ID: dom.BodyID}
	}
	return d.body, nil
}

func newFakeDoc() *fakeDoc {
	return &fakeDoc{
		control: &fakeElement{id: DefaultControlID},
		body:    &fakeElement{id: dom.BodyID},
	}
}

func TestChangeBackgroundColor_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		draw float64
		want string
		pad  bool
	}{
		{"zero", 0, "#0", false},
		{"max", 16777215.0 / 16777216.0, "#ffffff", false},
		{"blue", 255.0 / 16777216.0, "#ff", false},
		{"blue padded", 255.0 / 16777216.0, "#0000ff", true},
		{"zero padded", 0, "#000000", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newFakeDoc()
			c := New(doc, WithSource(color.NewSequence(tt.draw)), WithPadding(tt.pad))

			require.NoError(t, c.ChangeBackgroundColor())
			assert.Equal(t, []string{"background-color=" + tt.want}, doc.body.writes)
		})
	}
}

func TestChangeBackgroundColor_FreshDrawEachCall(t *testing.T) {
	doc := newFakeDoc()
	seq := color.NewSequence(color.Exact(1), color.Exact(2), color.Exact(3))
	c := New(doc, WithSource(seq))

	for i := 0; i < 3; i++ {
		require.NoError(t, c.ChangeBackgroundColor())
	}
	assert.Equal(t, 3, seq.Draws())
	assert.Equal(t, []string{
		"background-color=#1",
		"background-color=#2",
		"background-color=#3",
	}, doc.body.writes)
}

func TestChangeBackgroundColor_Shape(t *testing.T) {
	pattern := regexp.MustCompile(`^background-color=#[0-9a-f]{1,6}$`)
	doc := newFakeDoc()
	c := New(doc)
	for i := 0; i < 500; i++ {
		require.NoError(t, c.ChangeBackgroundColor())
	}
	require.Len(t, doc.body.writes, 500)
	for _, w := range doc.body.writes {
		assert.Regexp(t, pattern, w)
	}
}

func TestChangeBackgroundColor_MissingBody(t *testing.T) {
	doc := newFakeDoc()
	doc.body = nil
	rec := &countingRecorder{}
	c := New(doc, WithRecorder(rec))

	err := c.ChangeBackgroundColor()
	require.Error(t, err)
	assert.ErrorIs(t, err, dom.ErrElementNotFound)

	var nf *dom.ElementNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, dom.BodyID, nf.ID)
	assert.Equal(t, []string{dom.BodyID}, rec.notFound)
	assert.Equal(t, 0, rec.changed)
}

type countingRecorder struct {
	clicks   int
	changed  int
	notFound []string
}

func (r *countingRecorder) Click() { r.clicks++ }
func (r *countingRecorder) ColorChanged() { r.changed++ }
func (r *countingRecorder) ElementNotFound(id string) { r.notFound = append(r.notFound, id) }

func TestInit_RecordsClicks(t *testing.T) {
	doc := newFakeDoc()
	rec := &countingRecorder{}
	_, err := Init(doc, WithRecorder(rec))
	require.NoError(t, err)

	require.NoError(t, doc.control.click())
	require.NoError(t, doc.control.click())
	assert.Equal(t, 2, rec.clicks)
	assert.Equal(t, 2, rec.changed)

	doc.control = nil
	_, err = Init(doc, WithRecorder(rec))
	require.Error(t, err)
	assert.Equal(t, []string{DefaultControlID}, rec.notFound)
}

func TestInit_BindsOnce(t *testing.T) {
	doc := newFakeDoc()
	c, err := Init(doc)
	require.NoError(t, err)
	assert.Equal(t, DefaultControlID, c.ControlID())
	assert.Equal(t, 1, doc.lookups)
	assert.Len(t, doc.control.listeners[dom.EventClick], 1)
	assert.Empty(t, doc.body.writes, "Init must not change the color")
}

func TestInit_ClickTriggersExactlyOneMutation(t *testing.T) {
	doc := newFakeDoc()
	seq := color.NewSequence(color.Exact(0xabcdef))
	_, err := Init(doc, WithSource(seq))
	require.NoError(t, err)

	require.NoError(t, doc.control.click())

	assert.Equal(t, 1, seq.Draws())
	assert.Equal(t, 1, doc.bodyCalls)
	assert.Equal(t, []string{"background-color=#abcdef"}, doc.body.writes)
	assert.Empty(t, doc.control.writes)
}

func TestInit_MissingControl(t *testing.T) {
	doc := newFakeDoc()
	doc.control = nil

	c, err := Init(doc)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, dom.ErrElementNotFound)
}

func TestInit_CustomControlID(t *testing.T) {
	doc := newFakeDoc()
	doc.control.id = "paint"

	_, err := Init(doc)
	assert.ErrorIs(t, err, dom.ErrElementNotFound)

	_, err = Init(doc, WithControlID("paint"))
	assert.NoError(t, err)
}

func TestInit_WithPage(t *testing.T) {
	p := dom.NewPage(nil, DefaultControlID)
	_, err := Init(p, WithSource(color.NewSequence(color.Exact(255))))
	require.NoError(t, err)

	require.NoError(t, p.Click(DefaultControlID))
	assert.Equal(t, "#ff", p.Style(dom.BodyID, dom.PropBackgroundColor))

	p.DetachBody()
	assert.ErrorIs(t, p.Click(DefaultControlID), dom.ErrElementNotFound)
}
