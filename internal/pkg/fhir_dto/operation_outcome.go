package fhir_dto

type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	ID           string                  `json:"id,omitempty"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

type OperationOutcomeIssue struct {
	Severity    string           `json:"severity"`
	Code        string           `json:"code"`
	Details     *CodeableConcept `json:"details,omitempty"`
	Diagnostics string           `json:"diagnostics,omitempty"`
	Location    []string         `json:"location,omitempty"`
}

func NewOperationOutcome() *OperationOutcome {
	return &OperationOutcome{ResourceType: "OperationOutcome", Issue: []OperationOutcomeIssue{}}
}

func (o *OperationOutcome) AddIssue(issue OperationOutcomeIssue) {
	o.Issue = append(o.Issue, issue)
}

// FirstDiagnostics returns the diagnostics of the first issue, if any.
func (o *OperationOutcome) FirstDiagnostics() string {
	if o == nil || len(o.Issue) == 0 {
		return ""
	}
	return o.Issue[0].Diagnostics
}
