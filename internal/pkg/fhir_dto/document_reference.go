package fhir_dto

type DocumentReference struct {
	DomainResource
	MasterIdentifier *Identifier                `json:"masterIdentifier,omitempty"`
	Status           string                     `json:"status,omitempty"`
	DocStatus        string                     `json:"docStatus,omitempty"`
	Type             *CodeableConcept           `json:"type,omitempty"`
	Category         []CodeableConcept          `json:"category,omitempty"`
	Subject          *Reference                 `json:"subject,omitempty"`
	Date             string                     `json:"date,omitempty"`
	Author           []Reference                `json:"author,omitempty"`
	Custodian        *Reference                 `json:"custodian,omitempty"`
	Description      string                     `json:"description,omitempty"`
	Content          []DocumentReferenceContent `json:"content,omitempty"`
	Context          *DocumentReferenceContext  `json:"context,omitempty"`
}

type DocumentReferenceContent struct {
	Attachment Attachment `json:"attachment"`
	Format     *Coding    `json:"format,omitempty"`
}

type DocumentReferenceContext struct {
	Encounter []Reference `json:"encounter,omitempty"`
	Period    *Period     `json:"period,omitempty"`
	Related   []Reference `json:"related,omitempty"`
}
