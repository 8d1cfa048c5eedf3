package xmlevents

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/Solteris-Dev/OpenSteamController/model"
)

// Decoder adapts encoding/xml's token stream to the Reader contract.
// Comments, directives and processing instructions are dropped, as is
// inter-element whitespace; CharData text arrives trimmed.
type Decoder struct {
	d *xml.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{d: xml.NewDecoder(r)}
}

func (d *Decoder) Next() (Event, error) {
	for {
		tok, err := d.d.Token()
		if err == io.EOF {
			return Event{Kind: EndOfDocument}, nil
		}
		if err != nil {
			return Event{}, fmt.Errorf("%w: %v", model.ErrXMLStructure, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return Event{Kind: StartElement, Name: t.Name.Local}, nil
		case xml.EndElement:
			return Event{Kind: EndElement, Name: t.Name.Local}, nil
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			return Event{Kind: CharData, Text: text}, nil
		}
	}
}
