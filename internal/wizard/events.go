// Package wizard implements the multi-step chat dialogs that create and
// edit catalog entries: the creation wizard, the single-field edit flow,
// the photo replacement flow, and the session manager that routes input
// events to the one machine a session may have open.
package wizard

import "context"

// Event is one unit of administrator input fed into a state machine. The
// transport decodes raw updates into exactly one of the variants below
// before any machine sees them.
type Event interface {
	isEvent()
}

// Text carries a free-text message.
type Text struct {
	Value string
}

// Choice carries a discrete button selection identified by its option key.
type Choice struct {
	Key string
}

// Photo carries a reference to an uploaded photo; the bytes are fetched
// through a PhotoSource only when a machine accepts the upload.
type Photo struct {
	Ref string
}

// Done is the explicit completion signal of a photo-collection loop.
type Done struct{}

// Cancel aborts the active machine from any state.
type Cancel struct{}

func (Text) isEvent()   {}
func (Choice) isEvent() {}
func (Photo) isEvent()  {}
func (Done) isEvent()   {}
func (Cancel) isEvent() {}

// PhotoSource resolves a photo reference into raw bytes.
type PhotoSource interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}
