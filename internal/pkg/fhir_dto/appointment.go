package fhir_dto

type Appointment struct {
	DomainResource
	Status      string                   `json:"status,omitempty"`
	ServiceType []CodeableConcept        `json:"serviceType,omitempty"`
	Description string                   `json:"description,omitempty"`
	Start       string                   `json:"start,omitempty"`
	End         string                   `json:"end,omitempty"`
	Created     string                   `json:"created,omitempty"`
	BasedOn     []Reference              `json:"basedOn,omitempty"`
	Participant []AppointmentParticipant `json:"participant,omitempty"`
}

type AppointmentParticipant struct {
	Type   []CodeableConcept `json:"type,omitempty"`
	Actor  *Reference        `json:"actor,omitempty"`
	Status string            `json:"status,omitempty"`
}

func NewAppointment() *Appointment {
	return &Appointment{DomainResource: DomainResource{ResourceType: "Appointment"}}
}
