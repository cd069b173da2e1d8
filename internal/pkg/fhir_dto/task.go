package fhir_dto

type Task struct {
	DomainResource
	BasedOn         []Reference      `json:"basedOn,omitempty"`
	GroupIdentifier *Identifier      `json:"groupIdentifier,omitempty"`
	PartOf          []Reference      `json:"partOf,omitempty"`
	Status          string           `json:"status,omitempty"`
	BusinessStatus  *CodeableConcept `json:"businessStatus,omitempty"`
	Intent          string           `json:"intent,omitempty"`
	Priority        string           `json:"priority,omitempty"`
	Code            *CodeableConcept `json:"code,omitempty"`
	Description     string           `json:"description,omitempty"`
	Focus           *Reference       `json:"focus,omitempty"`
	For             *Reference       `json:"for,omitempty"`
	Encounter       *Reference       `json:"encounter,omitempty"`
	AuthoredOn      string           `json:"authoredOn,omitempty"`
	LastModified    string           `json:"lastModified,omitempty"`
	Requester       *Reference       `json:"requester,omitempty"`
	Owner           *Reference       `json:"owner,omitempty"`
	Note            []Annotation     `json:"note,omitempty"`
	Input           []TaskParameter  `json:"input,omitempty"`
	Output          []TaskParameter  `json:"output,omitempty"`
}

type TaskParameter struct {
	Type           CodeableConcept `json:"type"`
	ValueReference *Reference      `json:"valueReference,omitempty"`
	ValueString    string          `json:"valueString,omitempty"`
}

func NewTask() *Task {
	return &Task{DomainResource: DomainResource{ResourceType: "Task"}}
}
