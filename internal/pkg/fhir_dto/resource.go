package fhir_dto

import (
	"errors"

	"github.com/goccy/go-json"
)

// Resource is implemented by every identifier-bearing resource the engine upserts.
type Resource interface {
	GetResourceType() string
	GetID() string
	SetID(id string)
	GetIdentifier() []Identifier
	SetIdentifier(identifiers []Identifier)
	ClearContained()
	GetContained() []json.RawMessage
}

type DomainResource struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id,omitempty"`
	Meta         *Meta             `json:"meta,omitempty"`
	Text         *Narrative        `json:"text,omitempty"`
	Contained    []json.RawMessage `json:"contained,omitempty"`
	Extension    []Extension       `json:"extension,omitempty"`
	Identifier   []Identifier      `json:"identifier,omitempty"`
}

func (d *DomainResource) GetResourceType() string { return d.ResourceType }

func (d *DomainResource) GetID() string { return d.ID }

func (d *DomainResource) SetID(id string) { d.ID = id }

func (d *DomainResource) GetIdentifier() []Identifier { return d.Identifier }

func (d *DomainResource) SetIdentifier(identifiers []Identifier) { d.Identifier = identifiers }

func (d *DomainResource) ClearContained() { d.Contained = nil }

func (d *DomainResource) GetContained() []json.RawMessage { return d.Contained }

func (d *DomainResource) AddIdentifier(identifier Identifier) {
	d.Identifier = append(d.Identifier, identifier)
}

func (d *DomainResource) AddExtension(extension Extension) {
	d.Extension = append(d.Extension, extension)
}

// FindExtension returns the first extension with url, or nil.
func (d *DomainResource) FindExtension(url string) *Extension {
	for i := range d.Extension {
		if d.Extension[i].Url == url {
			return &d.Extension[i]
		}
	}
	return nil
}

// FirstSearchableIdentifier returns the first identifier with both system and value.
func FirstSearchableIdentifier(resource Resource) (Identifier, bool) {
	for _, identifier := range resource.GetIdentifier() {
		if identifier.IsSearchable() {
			return identifier, true
		}
	}
	return Identifier{}, false
}

// MergeIdentifiers returns incoming plus every identifier from existing that
// incoming does not already carry. Nothing from existing is dropped.
func MergeIdentifiers(incoming, existing []Identifier) []Identifier {
	merged := append([]Identifier{}, incoming...)
	for _, candidate := range existing {
		found := false
		for _, identifier := range merged {
			if identifier.System == candidate.System && identifier.Value == candidate.Value {
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, candidate)
		}
	}
	return merged
}

// ResourceHeader is the subset of any resource needed to route it.
type ResourceHeader struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id,omitempty"`
	Contained    []json.RawMessage `json:"contained,omitempty"`
}

func ProbeResource(raw json.RawMessage) (ResourceHeader, error) {
	var header ResourceHeader
	if len(raw) == 0 {
		return header, errors.New("empty resource")
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return header, err
	}
	return header, nil
}

// Overlay re-encodes resource on top of the raw document it was decoded from,
// so top-level elements the typed model does not carry are preserved.
// Contained resources are dropped when the typed resource has none.
func Overlay(original json.RawMessage, resource Resource) (json.RawMessage, error) {
	typed, err := json.Marshal(resource)
	if err != nil {
		return nil, err
	}
	if len(original) == 0 {
		return typed, nil
	}

	var base map[string]json.RawMessage
	if err := json.Unmarshal(original, &base); err != nil {
		return typed, nil
	}
	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(typed, &overlay); err != nil {
		return nil, err
	}

	for key, value := range overlay {
		base[key] = value
	}
	if len(resource.GetContained()) == 0 {
		delete(base, "contained")
	}
	if resource.GetID() == "" {
		delete(base, "id")
	}
	return json.Marshal(base)
}
