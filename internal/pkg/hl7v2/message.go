package hl7v2

import (
	"fmt"
	"strings"
)

// Delimiters are the encoding characters declared in MSH-1 and MSH-2.
type Delimiters struct {
	Field        byte
	Component    byte
	Repetition   byte
	Escape       byte
	SubComponent byte
}

var DefaultDelimiters = Delimiters{
	Field:        '|',
	Component:    '^',
	Repetition:   '~',
	Escape:       '\\',
	SubComponent: '&',
}

// Message is a parsed ER7 message. Segments keep their original order.
type Message struct {
	Delimiters Delimiters
	Segments   []*Segment
}

// Segment holds the raw fields of one segment. Field numbering is 1-based and
// follows HL7 conventions: for MSH, field 1 is the field separator itself.
type Segment struct {
	Name   string
	fields []string
	delims Delimiters
}

// Parse parses an ER7 encoded message. Segment separators may be \r, \n or \r\n.
func Parse(raw string) (*Message, error) {
	text := strings.ReplaceAll(raw, "\r\n", "\r")
	text = strings.ReplaceAll(text, "\n", "\r")

	var lines []string
	for _, line := range strings.Split(text, "\r") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("hl7v2: message is empty")
	}
	if !strings.HasPrefix(lines[0], "MSH") || len(lines[0]) < 8 {
		return nil, fmt.Errorf("hl7v2: first segment must be MSH, got %q", lines[0][:min(3, len(lines[0]))])
	}

	header := lines[0]
	delims := Delimiters{
		Field:        header[3],
		Component:    header[4],
		Repetition:   header[5],
		Escape:       header[6],
		SubComponent: header[7],
	}
	if header[7] == delims.Field {
		// only three encoding characters declared
		delims.SubComponent = DefaultDelimiters.SubComponent
	}

	msg := &Message{Delimiters: delims}
	for _, line := range lines {
		segment, err := parseSegment(line, delims)
		if err != nil {
			return nil, err
		}
		msg.Segments = append(msg.Segments, segment)
	}
	return msg, nil
}

func parseSegment(line string, delims Delimiters) (*Segment, error) {
	if len(line) < 3 {
		return nil, fmt.Errorf("hl7v2: segment too short: %q", line)
	}
	parts := strings.Split(line, string(delims.Field))
	segment := &Segment{Name: parts[0], delims: delims}

	if segment.Name == "MSH" {
		// MSH-1 is the separator, MSH-2 the encoding characters.
		segment.fields = append([]string{string(delims.Field)}, parts[1:]...)
		return segment, nil
	}
	segment.fields = parts[1:]
	return segment, nil
}

// Segment returns the first segment with the given name, or nil.
func (m *Message) Segment(name string) *Segment {
	for _, segment := range m.Segments {
		if segment.Name == name {
			return segment
		}
	}
	return nil
}

// AllSegments returns every segment with the given name in message order.
func (m *Message) AllSegments(name string) []*Segment {
	var result []*Segment
	for _, segment := range m.Segments {
		if segment.Name == name {
			result = append(result, segment)
		}
	}
	return result
}

func (m *Message) MSH() *Segment {
	return m.Segment("MSH")
}

func (m *Message) mshComponent(field, component int) string {
	msh := m.MSH()
	if msh == nil {
		return ""
	}
	return msh.Component(field, component)
}

func (m *Message) SendingApplication() string   { return m.mshComponent(3, 1) }
func (m *Message) SendingFacility() string      { return m.mshComponent(4, 1) }
func (m *Message) ReceivingApplication() string { return m.mshComponent(5, 1) }
func (m *Message) ReceivingFacility() string    { return m.mshComponent(6, 1) }
func (m *Message) MessageType() string          { return m.mshComponent(9, 1) }
func (m *Message) TriggerEvent() string         { return m.mshComponent(9, 2) }
func (m *Message) ControlID() string            { return m.mshComponent(10, 1) }
func (m *Message) ProcessingID() string         { return m.mshComponent(11, 1) }
func (m *Message) Version() string              { return m.mshComponent(12, 1) }

// Structure returns MSH-9.3, falling back to "<type>_<trigger>".
func (m *Message) Structure() string {
	if structure := m.mshComponent(9, 3); structure != "" {
		return structure
	}
	if m.MessageType() == "" {
		return ""
	}
	return m.MessageType() + "_" + m.TriggerEvent()
}

// Name renders the message type as TYPE^TRIGGER.
func (m *Message) Name() string {
	return m.MessageType() + "^" + m.TriggerEvent()
}

// Raw returns the unparsed text of field n, including repetitions.
func (s *Segment) Raw(n int) string {
	idx := n - 1
	if s == nil || idx < 0 || idx >= len(s.fields) {
		return ""
	}
	return s.fields[idx]
}

// NumFields reports how many fields the segment carries.
func (s *Segment) NumFields() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Repetitions returns every repetition of field n. An empty field has none.
func (s *Segment) Repetitions(n int) []Field {
	raw := s.Raw(n)
	if raw == "" {
		return nil
	}
	if s.Name == "MSH" && n <= 2 {
		return []Field{{raw: raw, delims: s.delims, literal: true}}
	}
	var fields []Field
	for _, rep := range strings.Split(raw, string(s.delims.Repetition)) {
		fields = append(fields, Field{raw: rep, delims: s.delims})
	}
	return fields
}

// Field returns the first repetition of field n.
func (s *Segment) Field(n int) Field {
	reps := s.Repetitions(n)
	if len(reps) == 0 {
		var delims Delimiters
		if s != nil {
			delims = s.delims
		}
		return Field{delims: delims}
	}
	return reps[0]
}

// Value returns the decoded first component of field n.
func (s *Segment) Value(n int) string {
	return s.Field(n).Component(1)
}

// Component returns the decoded component c of the first repetition of field n.
func (s *Segment) Component(n, c int) string {
	return s.Field(n).Component(c)
}

// Sub returns subcomponent sc of component c of the first repetition of field n.
func (s *Segment) Sub(n, c, sc int) string {
	return s.Field(n).Sub(c, sc)
}
