package sink

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventKind distinguishes the four sink calls.
type EventKind uint8

const (
	EventOpen EventKind = iota
	EventClose
	EventText
	EventFigure
)

var eventKindNames = [...]string{"open", "close", "text", "figure"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "event(" + fmt.Sprint(uint8(k)) + ")"
}

// Event is one recorded sink call. Text holds RawText content or the
// FigureGraphics source.
type Event struct {
	Kind    EventKind
	Element Element
	Text    string
	Attrs   Attrs
}

// String renders the event compactly, e.g. "open(heading2)" or
// `text("Hello")`.
func (e Event) String() string {
	switch e.Kind {
	case EventOpen:
		if len(e.Attrs) > 0 {
			return fmt.Sprintf("open(%s %s)", e.Element, formatAttrs(e.Attrs))
		}
		return fmt.Sprintf("open(%s)", e.Element)
	case EventClose:
		return fmt.Sprintf("close(%s)", e.Element)
	case EventText:
		return fmt.Sprintf("text(%q)", e.Text)
	default:
		if len(e.Attrs) > 0 {
			return fmt.Sprintf("figure(%q %s)", e.Text, formatAttrs(e.Attrs))
		}
		return fmt.Sprintf("figure(%q)", e.Text)
	}
}

func formatAttrs(a Attrs) string {
	parts := make([]string, 0, len(a))
	for _, k := range a.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%q", k, a[k]))
	}
	return strings.Join(parts, " ")
}

// Recorder is a Sink that keeps every event in memory.
// The zero value is ready to use.
type Recorder struct {
	Events []Event
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Open(e Element, attrs Attrs) error {
	r.Events = append(r.Events, Event{Kind: EventOpen, Element: e, Attrs: attrs.Clone()})
	return nil
}

func (r *Recorder) Close(e Element) error {
	r.Events = append(r.Events, Event{Kind: EventClose, Element: e})
	return nil
}

func (r *Recorder) RawText(text string) error {
	r.Events = append(r.Events, Event{Kind: EventText, Text: text})
	return nil
}

func (r *Recorder) FigureGraphics(src string, attrs Attrs) error {
	r.Events = append(r.Events, Event{Kind: EventFigure, Text: src, Attrs: attrs.Clone()})
	return nil
}

// Strings returns the String form of every event.
func (r *Recorder) Strings() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.String()
	}
	return out
}

// Reset discards all recorded events.
func (r *Recorder) Reset() { r.Events = r.Events[:0] }

// Balanced reports the first open/close mismatch, or nil if every Open
// has a matching Close in stack order.
func (r *Recorder) Balanced() error {
	var stack []Element
	for i, e := range r.Events {
		switch e.Kind {
		case EventOpen:
			stack = append(stack, e.Element)
		case EventClose:
			if len(stack) == 0 {
				return fmt.Errorf("event %d: close(%s) without open", i, e.Element)
			}
			top := stack[len(stack)-1]
			if top != e.Element {
				return fmt.Errorf("event %d: close(%s) while %s is open", i, e.Element, top)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("%d unclosed element(s), innermost %s", len(stack), stack[len(stack)-1])
	}
	return nil
}

type jsonEvent struct {
	Event   string            `json:"event"`
	Element string            `json:"element,omitempty"`
	Text    string            `json:"text,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// MarshalJSON encodes the event log as an array of objects:
//
//	[{"event":"open","element":"paragraph"},{"event":"text","text":"Hello"}]
func (r *Recorder) MarshalJSON() ([]byte, error) {
	out := make([]jsonEvent, len(r.Events))
	for i, e := range r.Events {
		je := jsonEvent{Event: e.Kind.String(), Text: e.Text, Attrs: e.Attrs}
		if e.Kind == EventOpen || e.Kind == EventClose {
			je.Element = e.Element.String()
		}
		out[i] = je
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an event log written by MarshalJSON.
func (r *Recorder) UnmarshalJSON(data []byte) error {
	var in []jsonEvent
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	events := make([]Event, len(in))
	for i, je := range in {
		var e Event
		switch je.Event {
		case "open":
			e.Kind = EventOpen
		case "close":
			e.Kind = EventClose
		case "text":
			e.Kind = EventText
		case "figure":
			e.Kind = EventFigure
		default:
			return fmt.Errorf("event %d: unknown event %q", i, je.Event)
		}
		if e.Kind == EventOpen || e.Kind == EventClose {
			el, ok := ParseElement(je.Element)
			if !ok {
				return fmt.Errorf("event %d: unknown element %q", i, je.Element)
			}
			e.Element = el
		}
		e.Text = je.Text
		if len(je.Attrs) > 0 {
			e.Attrs = Attrs(je.Attrs)
		}
		events[i] = e
	}
	r.Events = events
	return nil
}

// Replay sends the recorded events to s in order and returns the first
// error s reports.
func (r *Recorder) Replay(s Sink) error {
	for _, e := range r.Events {
		var err error
		switch e.Kind {
		case EventOpen:
			err = s.Open(e.Element, e.Attrs)
		case EventClose:
			err = s.Close(e.Element)
		case EventText:
			err = s.RawText(e.Text)
		case EventFigure:
			err = s.FigureGraphics(e.Text, e.Attrs)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

var _ Sink = (*Recorder)(nil)
