package transforms

import (
	"strings"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/hl7v2"
)

// Patient converts a PID segment.
func Patient(pid *hl7v2.Segment) *fhir_dto.Patient {
	patient := fhir_dto.NewPatient()
	if pid == nil {
		return patient
	}

	for _, cx := range pid.Repetitions(3) {
		if identifier := Identifier(cx); identifier != nil {
			patient.AddIdentifier(*identifier)
		}
	}

	for _, xpn := range pid.Repetitions(5) {
		if name := HumanName(xpn); name != nil {
			patient.Name = append(patient.Name, *name)
		}
	}

	if birthDate, ok := hl7v2.Date(pid.Value(7)); ok {
		patient.BirthDate = birthDate
	}

	patient.Gender = gender(pid.Value(8))

	for _, xtn := range pid.Repetitions(13) {
		if contact := ContactPoint(xtn); contact != nil {
			contact.Use = constvars.FhirUseHome
			patient.Telecom = append(patient.Telecom, *contact)
		}
	}
	for _, xtn := range pid.Repetitions(14) {
		if contact := ContactPoint(xtn); contact != nil {
			contact.Use = constvars.FhirUseWork
			patient.Telecom = append(patient.Telecom, *contact)
		}
	}

	for _, xad := range pid.Repetitions(11) {
		if address := Address(xad); address != nil {
			patient.Address = append(patient.Address, *address)
		}
	}

	if deceased, ok := hl7v2.DateTime(pid.Value(29)); ok {
		patient.DeceasedDateTime = deceased
	}

	return patient
}

// gender maps PID-8. The NHS numeric codes come first, the HL7 table 0001
// letters are accepted as well.
func gender(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "1", "M":
		return constvars.FhirGenderMale
	case "2", "F":
		return constvars.FhirGenderFemale
	case "9", "O":
		return constvars.FhirGenderOther
	case "X", "U":
		return constvars.FhirGenderUnknown
	}
	return ""
}

// PractitionerRole converts a PD1 segment: PD1-3 is the registered GP
// practice, PD1-4 the registered GP.
func PractitionerRole(pd1 *hl7v2.Segment) *fhir_dto.PractitionerRole {
	role := fhir_dto.NewPractitionerRole()
	if pd1 == nil {
		return role
	}

	if facility := pd1.Field(3); !facility.IsEmpty() {
		organization := &fhir_dto.Reference{Display: strings.TrimSpace(facility.Component(1))}
		if ods := strings.TrimSpace(facility.Component(3)); ods != "" {
			organization.Identifier = &fhir_dto.Identifier{System: constvars.SystemODSCode, Value: ods}
		}
		if !organization.IsEmpty() {
			role.Organization = organization
		}
	}

	if provider := pd1.Field(4); !provider.IsEmpty() {
		practitioner := &fhir_dto.Reference{Display: strings.TrimSpace(provider.Sub(2, 1))}
		if gmp := strings.TrimSpace(provider.Component(1)); gmp != "" {
			practitioner.Identifier = &fhir_dto.Identifier{System: constvars.SystemGMPNumber, Value: gmp}
		}
		if !practitioner.IsEmpty() {
			role.Practitioner = practitioner
		}
	}

	return role
}

// GeneralPractitioners returns the registered GP and practice of a PD1 in
// the order Patient.generalPractitioner expects them.
func GeneralPractitioners(pd1 *hl7v2.Segment) []fhir_dto.Reference {
	if pd1 == nil {
		return nil
	}
	role := PractitionerRole(pd1)

	var refs []fhir_dto.Reference
	if role.Practitioner != nil {
		practitioner := *role.Practitioner
		practitioner.Type = constvars.ResourcePractitioner
		refs = append(refs, practitioner)
	}
	if role.Organization != nil {
		organization := *role.Organization
		organization.Type = constvars.ResourceOrganization
		refs = append(refs, organization)
	}
	return refs
}
