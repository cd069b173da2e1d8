package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/hl7v2"
)

const sampleOBR = `OBR|1|PL-77|914694928301|B3051^HbA1c (IFCC traceable)|||201803091500|||^ABM: Angharad Shore|||Fasting sample|201803091500|^^Dr Andar Gunneberg|^Gunneberg^Andar^^^Dr||||||201803091500||HM|C`

func TestServiceRequest(t *testing.T) {
	request := ServiceRequest(segment(t, sampleOBR))

	assert.Equal(t, constvars.FhirServiceRequestIntentOrder, request.Intent)
	assert.Equal(t, constvars.FhirServiceRequestStatusActive, request.Status)
	require.Len(t, request.Identifier, 2)
	assert.Equal(t, "PL-77", request.Identifier[0].Value)
	assert.Equal(t, "914694928301", request.Identifier[1].Value)
	assert.Equal(t, "B3051", request.Code.FirstCode())
	assert.Equal(t, "HbA1c (IFCC traceable)", request.Code.Coding[0].Display)
	require.NotNil(t, request.Requester)
	assert.Equal(t, "Dr Andar Gunneberg", request.Requester.Display)
}

func TestDiagnosticReport(t *testing.T) {
	report := DiagnosticReport(segment(t, sampleOBR))

	require.Len(t, report.Category, 1)
	assert.Equal(t, "HM", report.Category[0].FirstCode())
	assert.Equal(t, constvars.SystemV20074, report.Category[0].Coding[0].System)

	require.Len(t, report.BasedOn, 2)
	assert.Equal(t, "PLAC", report.BasedOn[0].Identifier.Type.FirstCode())
	assert.Equal(t, "PL-77", report.BasedOn[0].Identifier.Value)
	assert.Equal(t, "FILL", report.BasedOn[1].Identifier.Type.FirstCode())
	assert.Equal(t, constvars.ResourceServiceRequest, report.BasedOn[1].Type)

	assert.Equal(t, "2018-03-09T15:00:00Z", report.EffectiveDateTime)
	require.Len(t, report.Performer, 1)
	assert.Equal(t, "ABM: Angharad Shore", report.Performer[0].Display)

	note := report.FindExtension(constvars.ExtensionDiagnosticReportNote)
	require.NotNil(t, note)
	assert.Equal(t, "Fasting sample", note.ValueAnnotation.Text)
}

func TestDiagnosticReportDefaultsToLaboratory(t *testing.T) {
	report := DiagnosticReport(segment(t, "OBR|1||F1|B0001^Full blood count|||notadate"))

	assert.Equal(t, "LAB", report.Category[0].FirstCode())
	assert.Empty(t, report.EffectiveDateTime)
	require.Len(t, report.BasedOn, 1)
	assert.Equal(t, "FILL", report.BasedOn[0].Identifier.Type.FirstCode())
	assert.Empty(t, report.Extension)
}

func TestApplyTiming(t *testing.T) {
	tests := []struct {
		name     string
		tq1      string
		priority string
	}{
		{"stat", "TQ1|||||||201803091400|201803091500|S^^^^^^^^Urgent", constvars.FhirServiceRequestPriorityStat},
		{"urgent", "TQ1|||||||201803091400|201803091500|U", constvars.FhirServiceRequestPriorityUrg},
		{"routine is ignored", "TQ1|||||||201803091400|201803091500|R^^^^^^^^Routine", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := ServiceRequest(nil)
			ApplyTiming(segment(t, tt.tq1), request)

			require.NotNil(t, request.OccurrencePeriod)
			assert.Equal(t, "2018-03-09T14:00:00Z", request.OccurrencePeriod.Start)
			assert.Equal(t, "2018-03-09T15:00:00Z", request.OccurrencePeriod.End)
			assert.Equal(t, tt.priority, request.Priority)
		})
	}
}

func TestNoteText(t *testing.T) {
	notes := []*hl7v2.Segment{
		segment(t, `NTE|1||First line~Second \T\ line`),
		segment(t, "NTE|2||"),
		segment(t, "NTE|3||Third^part"),
	}

	assert.Equal(t, "First line\nSecond & line\nThird^part", NoteText(notes))
	assert.Nil(t, Annotation(nil))
	assert.Equal(t, "Third^part", Annotation(notes[2:]).Text)
}
