// Package xmlevents defines the structural event stream the score
// builder consumes: a flat, forward-only sequence of element opens,
// element closes and text runs, terminated by an explicit
// end-of-document event.
package xmlevents

type Kind int

const (
	StartElement Kind = iota + 1
	EndElement
	CharData
	EndOfDocument
)

// Event is one structural token. Name is set for StartElement and
// EndElement, Text for CharData.
type Event struct {
	Kind Kind
	Name string
	Text string
}

// Reader produces events one at a time. A Reader is forward-only and
// not restartable; a fresh parse pass needs a fresh Reader.
type Reader interface {
	Next() (Event, error)
}
