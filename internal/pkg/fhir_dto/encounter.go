package fhir_dto

type Encounter struct {
	DomainResource
	Status          string                    `json:"status,omitempty"`
	Class           *Coding                   `json:"class,omitempty"`
	Type            []CodeableConcept         `json:"type,omitempty"`
	ServiceType     *CodeableConcept          `json:"serviceType,omitempty"`
	Subject         *Reference                `json:"subject,omitempty"`
	BasedOn         []Reference               `json:"basedOn,omitempty"`
	Participant     []EncounterParticipant    `json:"participant,omitempty"`
	Period          *Period                   `json:"period,omitempty"`
	Hospitalization *EncounterHospitalization `json:"hospitalization,omitempty"`
	Location        []EncounterLocation       `json:"location,omitempty"`
	ServiceProvider *Reference                `json:"serviceProvider,omitempty"`
}

type EncounterParticipant struct {
	Type       []CodeableConcept `json:"type,omitempty"`
	Period     *Period           `json:"period,omitempty"`
	Individual *Reference        `json:"individual,omitempty"`
}

type EncounterHospitalization struct {
	AdmitSource          *CodeableConcept `json:"admitSource,omitempty"`
	DischargeDisposition *CodeableConcept `json:"dischargeDisposition,omitempty"`
}

type EncounterLocation struct {
	Location Reference `json:"location"`
	Status   string    `json:"status,omitempty"`
	Period   *Period   `json:"period,omitempty"`
}

func NewEncounter() *Encounter {
	return &Encounter{DomainResource: DomainResource{ResourceType: "Encounter"}}
}
