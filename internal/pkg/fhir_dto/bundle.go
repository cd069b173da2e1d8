package fhir_dto

import (
	"github.com/goccy/go-json"
)

type FHIRBundle struct {
	ResourceType string       `json:"resourceType" validate:"required,eq=Bundle"`
	ID           string       `json:"id,omitempty" validate:"omitempty,fhirid"`
	Meta         *Meta        `json:"meta,omitempty"`
	Identifier   *Identifier  `json:"identifier,omitempty"`
	Type         string       `json:"type" validate:"required,fhirbundletype"`
	Timestamp    string       `json:"timestamp,omitempty"`
	Total        *int         `json:"total,omitempty"`
	Link         []BundleLink `json:"link,omitempty"`
	Entry        []Entry      `json:"entry,omitempty"`
}

type BundleLink struct {
	Relation string `json:"relation,omitempty"`
	Url      string `json:"url,omitempty"`
}

type Entry struct {
	FullUrl  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Request  *EntryRequest   `json:"request,omitempty"`
	Response *EntryResponse  `json:"response,omitempty"`
}

type EntryRequest struct {
	Method string `json:"method" validate:"required"`
	Url    string `json:"url" validate:"required"`
}

type EntryResponse struct {
	Status   string          `json:"status"`
	Location string          `json:"location,omitempty"`
	Etag     string          `json:"etag,omitempty"`
	Outcome  json.RawMessage `json:"outcome,omitempty"`
}

func NewBundle(bundleType string) *FHIRBundle {
	return &FHIRBundle{ResourceType: "Bundle", Type: bundleType}
}

// AddEntry encodes resource and appends it as a new entry.
func (b *FHIRBundle) AddEntry(fullUrl string, resource interface{}, request *EntryRequest) error {
	raw, err := json.Marshal(resource)
	if err != nil {
		return err
	}
	b.Entry = append(b.Entry, Entry{FullUrl: fullUrl, Resource: raw, Request: request})
	return nil
}

// EntryResourceType returns the declared resourceType of an entry, or "" when
// the entry has no parseable resource.
func (e Entry) EntryResourceType() string {
	if len(e.Resource) == 0 {
		return ""
	}
	header, err := ProbeResource(e.Resource)
	if err != nil {
		return ""
	}
	return header.ResourceType
}
