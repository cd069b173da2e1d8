package transforms

import (
	"fmt"
	"strings"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/hl7v2"
)

type participantRole struct {
	field   int
	code    string
	display string
}

// PV1 doctor fields in the order their participants are emitted.
var participantRoles = []participantRole{
	{7, "ATND", "attender"},
	{17, "ADM", "admitter"},
	{9, "CON", "consultant"},
	{8, "REF", "referrer"},
	{52, "PART", "Participation"},
}

type patientClass struct {
	code    string
	display string
}

var patientClasses = map[string]patientClass{
	"E": {"EMER", "emergency"},
	"O": {"AMB", "ambulatory"},
	"I": {"IMP", "inpatient encounter"},
	"P": {"PRENC", "pre-admission"},
}

// visit holds the PV1 values shared by the Encounter and Appointment mappings.
type visit struct {
	odsCode        string
	siteCode       string
	visitNumber    string
	alternateVisit string
	admissionType  string
	admit          string
	discharge      string
	discharged     bool
}

func readVisit(pv1 *hl7v2.Segment) visit {
	v := visit{
		odsCode:        strings.TrimSpace(pv1.Component(3, 1)),
		siteCode:       strings.TrimSpace(pv1.Sub(3, 4, 1)),
		visitNumber:    strings.TrimSpace(pv1.Component(19, 1)),
		alternateVisit: strings.TrimSpace(pv1.Component(50, 1)),
		admissionType:  strings.TrimSpace(pv1.Value(4)),
	}
	if admit, ok := hl7v2.DateTime(pv1.Value(44)); ok {
		v.admit = admit
	}
	// PV1-45 repeats, the last parseable value wins.
	for _, rep := range pv1.Repetitions(45) {
		if rep.IsEmpty() {
			continue
		}
		v.discharged = true
		if discharge, ok := hl7v2.DateTime(rep.Component(1)); ok {
			v.discharge = discharge
		}
	}
	return v
}

func (v visit) identifiers(systemFormat string) []fhir_dto.Identifier {
	var identifiers []fhir_dto.Identifier
	if v.visitNumber != "" {
		system := constvars.SystemV20203
		if v.odsCode != "" {
			system = fmt.Sprintf(systemFormat, v.odsCode)
		}
		identifiers = append(identifiers, fhir_dto.Identifier{System: system, Value: v.visitNumber})
	}
	if v.alternateVisit != "" {
		identifiers = append(identifiers, fhir_dto.Identifier{Value: v.alternateVisit})
	}
	return identifiers
}

func (v visit) admissionMethod() *fhir_dto.Extension {
	if v.admissionType == "" {
		return nil
	}
	return &fhir_dto.Extension{
		Url:                  constvars.ExtensionAdmissionMethod,
		ValueCodeableConcept: fhir_dto.NewCodeableConcept(constvars.SystemAdmissionMethod, v.admissionType, ""),
	}
}

func participantType(role participantRole) []fhir_dto.CodeableConcept {
	return []fhir_dto.CodeableConcept{*fhir_dto.NewCodeableConcept(constvars.SystemV3Participation, role.code, role.display)}
}

// Encounter converts a PV1 segment.
func Encounter(pv1 *hl7v2.Segment) *fhir_dto.Encounter {
	encounter := fhir_dto.NewEncounter()
	if pv1 == nil {
		return encounter
	}
	v := readVisit(pv1)

	if v.odsCode != "" {
		encounter.ServiceProvider = fhir_dto.IdentifierRef(constvars.SystemODSCode, v.odsCode)
	}
	if v.siteCode != "" {
		location := fhir_dto.EncounterLocation{
			Location: *fhir_dto.IdentifierRef(constvars.SystemODSSiteCode, v.siteCode),
		}
		if v.admit != "" || v.discharge != "" {
			location.Period = &fhir_dto.Period{Start: v.admit, End: v.discharge}
		}
		encounter.Location = append(encounter.Location, location)
	}

	for _, identifier := range v.identifiers(constvars.SystemEncounterPrefix) {
		encounter.AddIdentifier(identifier)
	}

	if class, ok := patientClasses[pv1.Value(2)]; ok {
		encounter.Class = &fhir_dto.Coding{System: constvars.SystemV3ActCode, Code: class.code, Display: class.display}
		if pv1.Value(2) == "P" {
			encounter.Status = constvars.FhirEncounterStatusPlanned
		}
	}

	if ext := v.admissionMethod(); ext != nil {
		encounter.AddExtension(*ext)
	}

	if v.admit != "" {
		encounter.Period = &fhir_dto.Period{Start: v.admit}
		encounter.Status = constvars.FhirEncounterStatusInProgress
	}
	if v.discharged {
		encounter.Status = constvars.FhirEncounterStatusFinished
		if v.discharge != "" {
			if encounter.Period == nil {
				encounter.Period = &fhir_dto.Period{}
			}
			encounter.Period.End = v.discharge
		}
	}

	for _, role := range participantRoles {
		for _, xcn := range pv1.Repetitions(role.field) {
			individual := PractitionerReference(xcn)
			if individual == nil {
				continue
			}
			encounter.Participant = append(encounter.Participant, fhir_dto.EncounterParticipant{
				Type:       participantType(role),
				Individual: individual,
			})
		}
	}

	if service := strings.TrimSpace(pv1.Value(10)); service != "" {
		encounter.ServiceType = fhir_dto.NewCodeableConcept(constvars.SystemTreatmentFunc, service, "")
	}

	admitSource := strings.TrimSpace(pv1.Value(14))
	disposition := strings.TrimSpace(pv1.Value(36))
	if admitSource != "" || disposition != "" {
		encounter.Hospitalization = &fhir_dto.EncounterHospitalization{}
		if admitSource != "" {
			encounter.Hospitalization.AdmitSource = fhir_dto.NewCodeableConcept(constvars.SystemSourceOfAdmisson, admitSource, "")
		}
		if disposition != "" {
			encounter.Hospitalization.DischargeDisposition = fhir_dto.NewCodeableConcept(constvars.SystemDischargeMethod, disposition, "")
		}
	}

	return encounter
}

// Appointment converts a PV1 segment for outpatient bookings.
func Appointment(pv1 *hl7v2.Segment) *fhir_dto.Appointment {
	appointment := fhir_dto.NewAppointment()
	if pv1 == nil {
		return appointment
	}
	v := readVisit(pv1)

	if v.siteCode != "" {
		appointment.Participant = append(appointment.Participant, fhir_dto.AppointmentParticipant{
			Actor: fhir_dto.IdentifierRef(constvars.SystemODSSiteCode, v.siteCode),
		})
	}

	for _, identifier := range v.identifiers(constvars.SystemAppointmentFmt) {
		appointment.AddIdentifier(identifier)
	}

	if ext := v.admissionMethod(); ext != nil {
		appointment.AddExtension(*ext)
	}

	if v.admit != "" {
		appointment.Start = v.admit
		appointment.Status = constvars.FhirAppointmentStatusBooked
	}
	if v.discharged {
		appointment.Status = constvars.FhirAppointmentStatusFulfilled
		if v.discharge != "" {
			appointment.End = v.discharge
		}
	}

	for _, role := range participantRoles {
		for _, xcn := range pv1.Repetitions(role.field) {
			actor := PractitionerReference(xcn)
			if actor == nil {
				continue
			}
			appointment.Participant = append(appointment.Participant, fhir_dto.AppointmentParticipant{
				Type:  participantType(role),
				Actor: actor,
			})
		}
	}

	return appointment
}
