package hl7v2

import (
	"strings"
)

// Field is one repetition of a segment field.
type Field struct {
	raw     string
	delims  Delimiters
	literal bool
}

func (f Field) String() string {
	return f.raw
}

// Text returns the whole repetition decoded, keeping component separators.
// Used for free text types such as FT and TX.
func (f Field) Text() string {
	if f.literal {
		return f.raw
	}
	return Unescape(f.raw, f.delims)
}

func (f Field) IsEmpty() bool {
	return strings.TrimSpace(f.raw) == ""
}

func (f Field) components() []string {
	if f.literal {
		return []string{f.raw}
	}
	return strings.Split(f.raw, string(f.delims.Component))
}

// Component returns component c (1-based) decoded. Subcomponent separators
// inside the component are kept.
func (f Field) Component(c int) string {
	comps := f.components()
	if c < 1 || c > len(comps) {
		return ""
	}
	if f.literal {
		return comps[0]
	}
	return Unescape(comps[c-1], f.delims)
}

// Sub returns subcomponent sc of component c, decoded.
func (f Field) Sub(c, sc int) string {
	comps := f.components()
	if c < 1 || c > len(comps) {
		return ""
	}
	subs := strings.Split(comps[c-1], string(f.delims.SubComponent))
	if sc < 1 || sc > len(subs) {
		return ""
	}
	return Unescape(subs[sc-1], f.delims)
}

// NumComponents reports how many components the field carries.
func (f Field) NumComponents() int {
	if f.raw == "" {
		return 0
	}
	return len(f.components())
}

// Unescape decodes HL7 escape sequences. Unknown sequences are kept verbatim.
func Unescape(value string, delims Delimiters) string {
	esc := string(delims.Escape)
	if !strings.Contains(value, esc) {
		return value
	}

	var b strings.Builder
	for i := 0; i < len(value); i++ {
		if value[i] != delims.Escape {
			b.WriteByte(value[i])
			continue
		}
		end := strings.IndexByte(value[i+1:], delims.Escape)
		if end < 0 {
			b.WriteString(value[i:])
			break
		}
		seq := value[i+1 : i+1+end]
		switch seq {
		case "F":
			b.WriteByte(delims.Field)
		case "S":
			b.WriteByte(delims.Component)
		case "T":
			b.WriteByte(delims.SubComponent)
		case "R":
			b.WriteByte(delims.Repetition)
		case "E":
			b.WriteByte(delims.Escape)
		case ".br":
			b.WriteByte('\n')
		default:
			b.WriteString(esc + seq + esc)
		}
		i += end + 1
	}
	return b.String()
}

// Escape encodes delimiter characters so value can be embedded in a field.
func Escape(value string, delims Delimiters) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case delims.Escape:
			b.WriteString(string(delims.Escape) + "E" + string(delims.Escape))
		case delims.Field:
			b.WriteString(string(delims.Escape) + "F" + string(delims.Escape))
		case delims.Component:
			b.WriteString(string(delims.Escape) + "S" + string(delims.Escape))
		case delims.SubComponent:
			b.WriteString(string(delims.Escape) + "T" + string(delims.Escape))
		case delims.Repetition:
			b.WriteString(string(delims.Escape) + "R" + string(delims.Escape))
		case '\r', '\n':
			b.WriteByte(' ')
		default:
			b.WriteByte(value[i])
		}
	}
	return b.String()
}
