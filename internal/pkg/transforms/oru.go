package transforms

import (
	"fmt"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/hl7v2"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

type pendingEntry struct {
	fullUrl      string
	resourceType string
	resource     interface{}
}

// ConvertORU turns an ORU_R01 result message into a transaction bundle. Every
// entry is a POST keyed by a urn:uuid fullUrl, and entries reference each
// other through those urls.
func ConvertORU(msg *hl7v2.Message) (*fhir_dto.FHIRBundle, error) {
	if msg == nil || msg.MessageType() != constvars.HL7MessageTypeORU {
		return nil, fmt.Errorf("not an ORU message")
	}

	var entries []pendingEntry
	add := func(resourceType string, resource interface{}) string {
		fullUrl := utils.NewURNUUID()
		entries = append(entries, pendingEntry{fullUrl: fullUrl, resourceType: resourceType, resource: resource})
		return fullUrl
	}

	var patientRef, encounterRef *fhir_dto.Reference
	var encounter *fhir_dto.Encounter

	if pid := msg.Segment("PID"); pid != nil {
		patient := composePatient(pid, msg.Segment("PD1"))
		patientRef = &fhir_dto.Reference{Reference: add(constvars.ResourcePatient, patient)}

		if pv1 := msg.Segment("PV1"); pv1 != nil {
			encounter = Encounter(pv1)
			if encounter.Status == "" {
				encounter.Status = constvars.FhirEncounterStatusInProgress
			}
			applySendingFacility(msg, pv1, encounter)
			if nhs := patient.IdentifierBySystem(constvars.SystemNHSNumber); nhs != nil {
				identifier := *nhs
				encounter.Subject = &fhir_dto.Reference{Reference: patientRef.Reference, Identifier: &identifier}
			} else {
				encounter.Subject = &fhir_dto.Reference{Reference: patientRef.Reference}
			}
			encounterRef = &fhir_dto.Reference{Reference: add(constvars.ResourceEncounter, encounter)}
		}
	}

	for i, group := range msg.OrderGroups() {
		groupIndex := i + 1

		request := ServiceRequest(group.OBR)
		for _, tq1 := range group.Timing {
			ApplyTiming(tq1, request)
		}
		request.Subject = patientRef
		request.Encounter = encounterRef
		requestUrl := add(constvars.ResourceServiceRequest, request)

		report := DiagnosticReport(group.OBR)
		report.Status = constvars.FhirDiagnosticReportStatusFinal
		report.Subject = patientRef
		report.Encounter = encounterRef
		if text := NoteText(group.Notes); text != "" {
			report.Conclusion = text
		}
		report.BasedOn = append(report.BasedOn, fhir_dto.Reference{Reference: requestUrl})

		placerRef := ""
		if len(report.BasedOn) > 0 && report.BasedOn[0].Identifier.HasValue() {
			placerRef = report.BasedOn[0].Identifier.Value
			report.AddIdentifier(fhir_dto.Identifier{Value: fmt.Sprintf("%s-%d", placerRef, groupIndex)})
			if encounter != nil && len(encounter.Identifier) == 0 {
				encounter.AddIdentifier(fhir_dto.Identifier{Value: placerRef})
			}
		}
		add(constvars.ResourceDiagnosticReport, report)

		for _, spm := range group.Specimens {
			specimen := Specimen(spm)
			specimen.Subject = patientRef
			specimenUrl := add(constvars.ResourceSpecimen, specimen)
			report.Specimen = append(report.Specimen, fhir_dto.Reference{Reference: specimenUrl})
			request.Specimen = append(request.Specimen, fhir_dto.Reference{Reference: specimenUrl})
		}

		for f, observationGroup := range group.Observations {
			observation := Observation(observationGroup.OBX)
			observation.Status = constvars.FhirObservationStatusFinal
			observation.Subject = patientRef
			observation.Encounter = encounterRef
			if placerRef != "" {
				observation.AddIdentifier(fhir_dto.Identifier{Value: fmt.Sprintf("%s-%d-%d", placerRef, groupIndex, f+1)})
			}
			if note := Annotation(observationGroup.Notes); note != nil {
				observation.Note = append(observation.Note, *note)
			}
			observationUrl := add(constvars.ResourceObservation, observation)
			report.Result = append(report.Result, fhir_dto.Reference{Reference: observationUrl})
		}
	}

	// Resources are encoded last since later groups still mutate earlier ones.
	bundle := fhir_dto.NewBundle(constvars.FhirBundleTypeTransaction)
	for _, entry := range entries {
		request := &fhir_dto.EntryRequest{Method: constvars.MethodPost, Url: entry.resourceType}
		if err := bundle.AddEntry(entry.fullUrl, entry.resource, request); err != nil {
			return nil, err
		}
	}
	return bundle, nil
}
