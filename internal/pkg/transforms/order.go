package transforms

import (
	"strings"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/hl7v2"
)

const defaultServiceSection = "LAB"

// ServiceRequest converts an OBR segment into the order it reports on.
func ServiceRequest(obr *hl7v2.Segment) *fhir_dto.ServiceRequest {
	request := fhir_dto.NewServiceRequest()
	request.Intent = constvars.FhirServiceRequestIntentOrder
	request.Status = constvars.FhirServiceRequestStatusActive
	if obr == nil {
		return request
	}

	for _, field := range []int{2, 3} {
		if value := strings.TrimSpace(obr.Component(field, 1)); value != "" {
			request.AddIdentifier(fhir_dto.Identifier{Value: value})
		}
	}

	request.Code = serviceCode(obr)

	if providers := obr.Repetitions(16); len(providers) > 0 {
		request.Requester = PractitionerReference(providers[0])
	}

	return request
}

// DiagnosticReport converts an OBR segment into the report header.
func DiagnosticReport(obr *hl7v2.Segment) *fhir_dto.DiagnosticReport {
	report := fhir_dto.NewDiagnosticReport()
	if obr == nil {
		return report
	}

	section := strings.TrimSpace(obr.Value(24))
	if section == "" {
		section = defaultServiceSection
	}
	report.Category = []fhir_dto.CodeableConcept{*fhir_dto.NewCodeableConcept(constvars.SystemV20074, section, "")}

	report.Code = serviceCode(obr)

	// Set basedOn
	for _, order := range []struct {
		field int
		code  string
	}{{2, "PLAC"}, {3, "FILL"}} {
		value := strings.TrimSpace(obr.Component(order.field, 1))
		if value == "" {
			continue
		}
		report.BasedOn = append(report.BasedOn, fhir_dto.Reference{
			Type: constvars.ResourceServiceRequest,
			Identifier: &fhir_dto.Identifier{
				Type:  fhir_dto.NewCodeableConcept(constvars.SystemV20203, order.code, ""),
				Value: value,
			},
		})
	}

	if effective, ok := hl7v2.DateTime(obr.Value(7)); ok {
		report.EffectiveDateTime = effective
	}

	for _, xcn := range obr.Repetitions(10) {
		if performer := PractitionerReference(xcn); performer != nil {
			report.Performer = append(report.Performer, *performer)
		}
	}

	if info := strings.TrimSpace(obr.Field(13).Component(1)); info != "" {
		report.AddExtension(fhir_dto.Extension{
			Url:             constvars.ExtensionDiagnosticReportNote,
			ValueAnnotation: &fhir_dto.Annotation{Text: info},
		})
	}

	return report
}

func serviceCode(obr *hl7v2.Segment) *fhir_dto.CodeableConcept {
	code := strings.TrimSpace(obr.Component(4, 1))
	if code == "" {
		return nil
	}
	return &fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{
		System:  codeSystem(obr.Component(4, 3)),
		Code:    code,
		Display: strings.TrimSpace(obr.Component(4, 2)),
	}}}
}

// ApplyTiming copies the TQ1 occurrence window and priority onto request.
func ApplyTiming(tq1 *hl7v2.Segment, request *fhir_dto.ServiceRequest) {
	if tq1 == nil || request == nil {
		return
	}

	start, hasStart := hl7v2.DateTime(tq1.Value(7))
	end, hasEnd := hl7v2.DateTime(tq1.Value(8))
	if hasStart || hasEnd {
		request.OccurrencePeriod = &fhir_dto.Period{Start: start, End: end}
	}

	for _, priority := range tq1.Repetitions(9) {
		switch priority.Component(1) {
		case "U":
			request.Priority = constvars.FhirServiceRequestPriorityUrg
		case "S":
			request.Priority = constvars.FhirServiceRequestPriorityStat
		}
	}
}

// NoteText joins the NTE-3 comments of notes, one line per repetition.
func NoteText(notes []*hl7v2.Segment) string {
	var lines []string
	for _, nte := range notes {
		for _, comment := range nte.Repetitions(3) {
			if text := strings.TrimSpace(comment.Text()); text != "" {
				lines = append(lines, text)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// Annotation converts NTE segments into a single note, or nil when empty.
func Annotation(notes []*hl7v2.Segment) *fhir_dto.Annotation {
	text := NoteText(notes)
	if text == "" {
		return nil
	}
	return &fhir_dto.Annotation{Text: text}
}
