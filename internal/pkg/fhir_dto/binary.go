package fhir_dto

// Binary is not identifier-bearing and is never upserted; it is created as-is.
type Binary struct {
	ResourceType    string     `json:"resourceType"`
	ID              string     `json:"id,omitempty"`
	Meta            *Meta      `json:"meta,omitempty"`
	ContentType     string     `json:"contentType"`
	SecurityContext *Reference `json:"securityContext,omitempty"`
	Data            string     `json:"data,omitempty"`
}
