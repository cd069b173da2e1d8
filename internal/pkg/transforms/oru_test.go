package transforms

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

func TestConvertORU(t *testing.T) {
	bundle, err := ConvertORU(parse(t, oruR01))
	require.NoError(t, err)

	assert.Equal(t, constvars.FhirBundleTypeTransaction, bundle.Type)

	var types []string
	for _, entry := range bundle.Entry {
		types = append(types, entry.EntryResourceType())
		assert.True(t, strings.HasPrefix(entry.FullUrl, "urn:uuid:"))
		require.NotNil(t, entry.Request)
		assert.Equal(t, constvars.MethodPost, entry.Request.Method)
		assert.Equal(t, entry.EntryResourceType(), entry.Request.Url)
	}
	assert.Equal(t, []string{
		"Patient", "Encounter",
		"ServiceRequest", "DiagnosticReport", "Observation",
		"ServiceRequest", "DiagnosticReport", "Specimen", "Observation", "Observation",
	}, types)

	patientUrl := bundle.Entry[0].FullUrl
	encounterUrl := bundle.Entry[1].FullUrl

	var patient fhir_dto.Patient
	require.NoError(t, json.Unmarshal(bundle.Entry[0].Resource, &patient))
	require.Len(t, patient.Identifier, 2)
	assert.Equal(t, constvars.SystemCardiffMRN, patient.Identifier[0].System)
	assert.Equal(t, constvars.SystemNHSNumber, patient.Identifier[1].System)
	assert.Equal(t, constvars.FhirGenderMale, patient.Gender)

	var encounter fhir_dto.Encounter
	require.NoError(t, json.Unmarshal(bundle.Entry[1].Resource, &encounter))
	assert.Equal(t, patientUrl, encounter.Subject.Reference)
	require.Len(t, encounter.Identifier, 1)
	assert.Equal(t, "914694928301", encounter.Identifier[0].Value)
	assert.Equal(t, "CAV", encounter.ServiceProvider.Identifier.Value)

	var report fhir_dto.DiagnosticReport
	require.NoError(t, json.Unmarshal(bundle.Entry[3].Resource, &report))
	assert.Equal(t, constvars.FhirDiagnosticReportStatusFinal, report.Status)
	assert.Equal(t, patientUrl, report.Subject.Reference)
	assert.Equal(t, encounterUrl, report.Encounter.Reference)
	assert.Equal(t, "914694928301-1", report.Identifier[0].Value)
	assert.Contains(t, report.Conclusion, "NICE guidelines")
	require.Len(t, report.Result, 1)
	assert.Equal(t, bundle.Entry[4].FullUrl, report.Result[0].Reference)
	assert.Equal(t, bundle.Entry[2].FullUrl, report.BasedOn[len(report.BasedOn)-1].Reference)

	var observation fhir_dto.Observation
	require.NoError(t, json.Unmarshal(bundle.Entry[4].Resource, &observation))
	assert.Equal(t, constvars.FhirObservationStatusFinal, observation.Status)
	assert.Equal(t, "914694928301-1-1", observation.Identifier[0].Value)
	assert.InDelta(t, 49, *observation.ValueQuantity.Value, 0.0001)

	var second fhir_dto.DiagnosticReport
	require.NoError(t, json.Unmarshal(bundle.Entry[6].Resource, &second))
	assert.Equal(t, "914694928301-2", second.Identifier[0].Value)
	require.Len(t, second.Result, 2)
	require.Len(t, second.Specimen, 1)
	assert.Equal(t, bundle.Entry[7].FullUrl, second.Specimen[0].Reference)

	var request fhir_dto.ServiceRequest
	require.NoError(t, json.Unmarshal(bundle.Entry[5].Resource, &request))
	assert.Equal(t, constvars.FhirServiceRequestPriorityStat, request.Priority)
	require.NotNil(t, request.OccurrencePeriod)
	assert.Equal(t, "2018-03-09T14:00:00Z", request.OccurrencePeriod.Start)

	var last fhir_dto.Observation
	require.NoError(t, json.Unmarshal(bundle.Entry[9].Resource, &last))
	assert.Equal(t, "914694928301-2-2", last.Identifier[0].Value)
}

func TestConvertORURejectsOtherMessages(t *testing.T) {
	_, err := ConvertORU(parse(t, adtA01))
	assert.Error(t, err)

	_, err = ConvertORU(nil)
	assert.Error(t, err)
}
