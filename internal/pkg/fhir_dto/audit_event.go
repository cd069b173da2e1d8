package fhir_dto

type AuditEvent struct {
	ResourceType string             `json:"resourceType"`
	ID           string             `json:"id,omitempty"`
	Type         Coding             `json:"type"`
	Subtype      []Coding           `json:"subtype,omitempty"`
	Action       string             `json:"action,omitempty"`
	Recorded     string             `json:"recorded"`
	Outcome      string             `json:"outcome,omitempty"`
	OutcomeDesc  string             `json:"outcomeDesc,omitempty"`
	Agent        []AuditEventAgent  `json:"agent"`
	Source       AuditEventSource   `json:"source"`
	Entity       []AuditEventEntity `json:"entity,omitempty"`
}

type AuditEventAgent struct {
	Type      *CodeableConcept   `json:"type,omitempty"`
	Role      []CodeableConcept  `json:"role,omitempty"`
	Who       *Reference         `json:"who,omitempty"`
	Requestor bool               `json:"requestor"`
	Network   *AuditEventNetwork `json:"network,omitempty"`
}

type AuditEventNetwork struct {
	Address string `json:"address,omitempty"`
	Type    string `json:"type,omitempty"`
}

type AuditEventSource struct {
	Site     string    `json:"site,omitempty"`
	Observer Reference `json:"observer"`
	Type     []Coding  `json:"type,omitempty"`
}

type AuditEventEntity struct {
	What   *Reference               `json:"what,omitempty"`
	Type   *Coding                  `json:"type,omitempty"`
	Name   string                   `json:"name,omitempty"`
	Query  string                   `json:"query,omitempty"`
	Detail []AuditEventEntityDetail `json:"detail,omitempty"`
}

type AuditEventEntityDetail struct {
	Type        string `json:"type"`
	ValueString string `json:"valueString,omitempty"`
}

const (
	AuditEventOutcomeSuccess      = "0"
	AuditEventOutcomeMinorFailure = "4"
	AuditEventOutcomeSeriousFail  = "8"

	AuditEventActionCreate = "C"
	AuditEventActionUpdate = "U"
)
