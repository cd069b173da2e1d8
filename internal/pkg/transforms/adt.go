package transforms

import (
	"fmt"
	"strings"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/hl7v2"
)

// adtEvent describes how one ADT trigger is composed.
type adtEvent struct {
	encounter   bool
	status      string
	typeCode    string
	typeDisplay string
}

var adtEvents = map[string]adtEvent{
	constvars.HL7TriggerA01: {encounter: true, status: constvars.FhirEncounterStatusInProgress, typeCode: constvars.SnomedHospitalAdmission, typeDisplay: "Hospital admission"},
	constvars.HL7TriggerA02: {encounter: true, typeCode: constvars.SnomedPatientTransfer, typeDisplay: "Patient transfer"},
	constvars.HL7TriggerA03: {encounter: true, status: constvars.FhirEncounterStatusFinished, typeCode: constvars.SnomedPatientDischarge, typeDisplay: "Patient discharge"},
	constvars.HL7TriggerA04: {encounter: true, typeCode: constvars.SnomedConsultation, typeDisplay: "Consultation"},
	constvars.HL7TriggerA05: {encounter: true, status: constvars.FhirEncounterStatusPlanned},
	constvars.HL7TriggerA28: {},
	constvars.HL7TriggerA31: {},
}

// IsSupportedADT reports whether trigger is one ConvertADT composes.
func IsSupportedADT(trigger string) bool {
	_, ok := adtEvents[trigger]
	return ok
}

// ConvertADT composes the single resource an ADT message describes: an
// Encounter for encounter events carrying PV1, otherwise a Patient. It
// returns nil when the message is not a supported ADT event or has no PID.
func ConvertADT(msg *hl7v2.Message) fhir_dto.Resource {
	if msg == nil || msg.MessageType() != constvars.HL7MessageTypeADT {
		return nil
	}
	event, ok := adtEvents[msg.TriggerEvent()]
	if !ok {
		return nil
	}
	pid := msg.Segment("PID")
	if pid == nil {
		return nil
	}

	pv1 := msg.Segment("PV1")
	if event.encounter && pv1 != nil {
		return composeEncounter(msg, event, pid, pv1)
	}
	return composePatient(pid, msg.Segment("PD1"))
}

func composeEncounter(msg *hl7v2.Message, event adtEvent, pid, pv1 *hl7v2.Segment) *fhir_dto.Encounter {
	encounter := Encounter(pv1)

	if encounter.Status == "" {
		encounter.Status = constvars.FhirEncounterStatusInProgress
	}
	// A trigger with a fixed status overrides whatever PV1 implied.
	if event.status != "" {
		encounter.Status = event.status
	}

	if event.typeCode != "" {
		encounter.ServiceType = fhir_dto.NewCodeableConcept(constvars.SystemSNOMEDCT, event.typeCode, event.typeDisplay)
	}

	applySendingFacility(msg, pv1, encounter)

	// Patient is only read for the NHS number.
	patient := Patient(pid)
	if nhs := patient.IdentifierBySystem(constvars.SystemNHSNumber); nhs != nil {
		identifier := *nhs
		encounter.Subject = &fhir_dto.Reference{Type: constvars.ResourcePatient, Identifier: &identifier}
	}

	return encounter
}

// applySendingFacility falls back to the ODS code in MSH-4 when PV1 carried
// no point of care.
func applySendingFacility(msg *hl7v2.Message, pv1 *hl7v2.Segment, encounter *fhir_dto.Encounter) {
	if encounter.ServiceProvider != nil {
		return
	}
	ods := strings.TrimSpace(msg.SendingFacility())
	if ods == "" {
		return
	}
	encounter.ServiceProvider = fhir_dto.IdentifierRef(constvars.SystemODSCode, ods)

	visitNumber := strings.TrimSpace(pv1.Component(19, 1))
	for i := range encounter.Identifier {
		if encounter.Identifier[i].Value == visitNumber && encounter.Identifier[i].System == constvars.SystemV20203 {
			encounter.Identifier[i].System = fmt.Sprintf(constvars.SystemEncounterPrefix, ods)
		}
	}
}

func composePatient(pid, pd1 *hl7v2.Segment) *fhir_dto.Patient {
	patient := Patient(pid)
	patient.GeneralPractitioner = append(patient.GeneralPractitioner, GeneralPractitioners(pd1)...)
	return patient
}
