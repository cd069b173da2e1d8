package fhir_dto

type Reference struct {
	Reference  string      `json:"reference,omitempty" bson:"reference,omitempty"`
	Type       string      `json:"type,omitempty" bson:"type,omitempty"`
	Identifier *Identifier `json:"identifier,omitempty" bson:"identifier,omitempty"`
	Display    string      `json:"display,omitempty" bson:"display,omitempty"`
}

// IsEmpty reports whether the reference carries nothing worth serializing.
func (r *Reference) IsEmpty() bool {
	return r == nil || (r.Reference == "" && r.Type == "" && r.Display == "" && !r.Identifier.HasValue())
}

type Identifier struct {
	Use       string           `json:"use,omitempty" bson:"use,omitempty"`
	Type      *CodeableConcept `json:"type,omitempty" bson:"type,omitempty"`
	System    string           `json:"system,omitempty" bson:"system,omitempty"`
	Value     string           `json:"value,omitempty" bson:"value,omitempty"`
	Period    *Period          `json:"period,omitempty" bson:"period,omitempty"`
	Extension []Extension      `json:"extension,omitempty" bson:"extension,omitempty"`
}

// HasValue reports whether the identifier has a value.
func (i *Identifier) HasValue() bool {
	return i != nil && i.Value != ""
}

// IsSearchable reports whether the identifier has both system and value.
func (i *Identifier) IsSearchable() bool {
	return i != nil && i.System != "" && i.Value != ""
}

// Token renders the identifier as a FHIR search token.
func (i Identifier) Token() string {
	return i.System + "|" + i.Value
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty" bson:"coding,omitempty"`
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
}

func NewCodeableConcept(system, code, display string) *CodeableConcept {
	return &CodeableConcept{Coding: []Coding{{System: system, Code: code, Display: display}}}
}

// FirstCode returns the code of the first coding, if any.
func (c *CodeableConcept) FirstCode() string {
	if c == nil || len(c.Coding) == 0 {
		return ""
	}
	return c.Coding[0].Code
}

type Coding struct {
	System  string `json:"system,omitempty" bson:"system,omitempty"`
	Version string `json:"version,omitempty" bson:"version,omitempty"`
	Code    string `json:"code,omitempty" bson:"code,omitempty"`
	Display string `json:"display,omitempty" bson:"display,omitempty"`
}

type Period struct {
	Start string `json:"start,omitempty" bson:"start,omitempty"`
	End   string `json:"end,omitempty" bson:"end,omitempty"`
}

type HumanName struct {
	Use    string   `json:"use,omitempty" bson:"use,omitempty"`
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
	Family string   `json:"family,omitempty" bson:"family,omitempty"`
	Given  []string `json:"given,omitempty" bson:"given,omitempty"`
	Prefix []string `json:"prefix,omitempty" bson:"prefix,omitempty"`
}

type Meta struct {
	VersionId   string   `json:"versionId,omitempty" bson:"versionId,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
	Source      string   `json:"source,omitempty" bson:"source,omitempty"`
	Profile     []string `json:"profile,omitempty" bson:"profile,omitempty"`
	Security    []Coding `json:"security,omitempty" bson:"security,omitempty"`
	Tag         []Coding `json:"tag,omitempty" bson:"tag,omitempty"`
}

type ContactPoint struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
	Use    string `json:"use,omitempty"`
}

type Attachment struct {
	ContentType string `json:"contentType,omitempty"`
	Language    string `json:"language,omitempty"`
	Data        string `json:"data,omitempty"`
	Url         string `json:"url,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Hash        string `json:"hash,omitempty"`
	Title       string `json:"title,omitempty"`
	Creation    string `json:"creation,omitempty"`
}

type Narrative struct {
	Status string `json:"status,omitempty"`
	Div    string `json:"div,omitempty"`
}

type Quantity struct {
	Value      *float64 `json:"value,omitempty"`
	Comparator string   `json:"comparator,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	System     string   `json:"system,omitempty"`
	Code       string   `json:"code,omitempty"`
}

type Annotation struct {
	AuthorString string `json:"authorString,omitempty"`
	Time         string `json:"time,omitempty"`
	Text         string `json:"text,omitempty"`
}

type Extension struct {
	Url                  string           `json:"url,omitempty"`
	ValueString          string           `json:"valueString,omitempty"`
	ValueCode            string           `json:"valueCode,omitempty"`
	ValueDateTime        string           `json:"valueDateTime,omitempty"`
	ValueCodeableConcept *CodeableConcept `json:"valueCodeableConcept,omitempty"`
	ValueIdentifier      *Identifier      `json:"valueIdentifier,omitempty"`
	ValueReference       *Reference       `json:"valueReference,omitempty"`
	ValueAnnotation      *Annotation      `json:"valueAnnotation,omitempty"`
	ValueCoding          *Coding          `json:"valueCoding,omitempty"`
}

type Address struct {
	Use        string   `json:"use,omitempty"`
	Line       []string `json:"line,omitempty"`
	City       string   `json:"city,omitempty"`
	District   string   `json:"district,omitempty"`
	State      string   `json:"state,omitempty"`
	PostalCode string   `json:"postalCode,omitempty"`
	Country    string   `json:"country,omitempty"`
}

// IdentifierRef builds a logical reference to a resource known only by identifier.
func IdentifierRef(system, value string) *Reference {
	return &Reference{Identifier: &Identifier{System: system, Value: value}}
}
