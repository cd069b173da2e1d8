package transforms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

func TestConvertADTAdmission(t *testing.T) {
	resource := ConvertADT(parse(t, adtA01))

	encounter, ok := resource.(*fhir_dto.Encounter)
	require.True(t, ok, "expected an Encounter, got %T", resource)

	assert.Equal(t, constvars.FhirEncounterStatusInProgress, encounter.Status)
	require.NotNil(t, encounter.Subject)
	require.NotNil(t, encounter.Subject.Identifier)
	assert.Equal(t, constvars.SystemNHSNumber, encounter.Subject.Identifier.System)
	assert.Equal(t, "3333333333", encounter.Subject.Identifier.Value)
	assert.Equal(t, constvars.ResourcePatient, encounter.Subject.Type)

	assert.Equal(t, constvars.SnomedHospitalAdmission, encounter.ServiceType.FirstCode())
	assert.Equal(t, constvars.SystemSNOMEDCT, encounter.ServiceType.Coding[0].System)
	assert.Equal(t, "2010-10-20T17:16:00Z", encounter.Period.Start)
	assert.Equal(t, "IMP", encounter.Class.Code)

	require.Len(t, encounter.Participant, 3)
	assert.Equal(t, "CON", encounter.Participant[1].Type[0].FirstCode())
	assert.Equal(t, "REF", encounter.Participant[2].Type[0].FirstCode())
	assert.Equal(t, constvars.SystemGMPNumber, encounter.Participant[2].Individual.Identifier.System)
}

func TestConvertADTDischarge(t *testing.T) {
	resource := ConvertADT(parse(t, adtA03))

	encounter, ok := resource.(*fhir_dto.Encounter)
	require.True(t, ok)
	assert.Equal(t, constvars.FhirEncounterStatusFinished, encounter.Status)
	require.NotNil(t, encounter.Period)
	assert.Equal(t, "2010-03-31T17:15:00Z", encounter.Period.End)
	assert.Equal(t, constvars.SnomedPatientDischarge, encounter.ServiceType.FirstCode())
}

func TestConvertADTTriggers(t *testing.T) {
	retrigger := func(trigger string) string {
		return strings.Replace(adtA01, "ADT^A01^ADT_A01", "ADT^"+trigger, 1)
	}

	t.Run("transfer keeps the PV1 status", func(t *testing.T) {
		encounter := ConvertADT(parse(t, retrigger("A02"))).(*fhir_dto.Encounter)
		assert.Equal(t, constvars.FhirEncounterStatusInProgress, encounter.Status)
		assert.Equal(t, constvars.SnomedPatientTransfer, encounter.ServiceType.FirstCode())
	})

	t.Run("registration is a consultation", func(t *testing.T) {
		encounter := ConvertADT(parse(t, retrigger("A04"))).(*fhir_dto.Encounter)
		assert.Equal(t, constvars.SnomedConsultation, encounter.ServiceType.FirstCode())
		assert.Equal(t, "Consultation", encounter.ServiceType.Coding[0].Display)
	})

	t.Run("pre-admit is planned", func(t *testing.T) {
		encounter := ConvertADT(parse(t, retrigger("A05"))).(*fhir_dto.Encounter)
		assert.Equal(t, constvars.FhirEncounterStatusPlanned, encounter.Status)
	})

	t.Run("unknown trigger", func(t *testing.T) {
		assert.Nil(t, ConvertADT(parse(t, retrigger("A08"))))
		assert.False(t, IsSupportedADT("A08"))
		assert.True(t, IsSupportedADT("A31"))
	})
}

func TestConvertADTPatientEvents(t *testing.T) {
	resource := ConvertADT(parse(t, adtA28))

	patient, ok := resource.(*fhir_dto.Patient)
	require.True(t, ok, "expected a Patient, got %T", resource)
	assert.Equal(t, "3333333333", patient.Identifier[0].Value)

	require.Len(t, patient.GeneralPractitioner, 2)
	assert.Equal(t, constvars.ResourcePractitioner, patient.GeneralPractitioner[0].Type)
	assert.Equal(t, "G5612908", patient.GeneralPractitioner[0].Identifier.Value)
	assert.Equal(t, constvars.ResourceOrganization, patient.GeneralPractitioner[1].Type)
	assert.Equal(t, constvars.SystemODSCode, patient.GeneralPractitioner[1].Identifier.System)
	assert.Equal(t, "Y06601", patient.GeneralPractitioner[1].Identifier.Value)
}

func TestConvertADTFallbacks(t *testing.T) {
	t.Run("encounter event without PV1 yields the patient", func(t *testing.T) {
		raw := strings.Join([]string{
			`MSH|^~\&|PAS|RCB|ROUTE|ROUTE|201010101418||ADT^A01^ADT_A01|1|P|2.4`,
			samplePID,
		}, "\r")

		_, ok := ConvertADT(parse(t, raw)).(*fhir_dto.Patient)
		assert.True(t, ok)
	})

	t.Run("no PID yields nothing", func(t *testing.T) {
		raw := strings.Join([]string{
			`MSH|^~\&|PAS|RCB|ROUTE|ROUTE|201010101418||ADT^A01^ADT_A01|1|P|2.4`,
			`PV1|1|I|RCB^OBS1^BAY2-6^RCB55`,
		}, "\r")

		assert.Nil(t, ConvertADT(parse(t, raw)))
	})

	t.Run("non ADT message", func(t *testing.T) {
		assert.Nil(t, ConvertADT(parse(t, oruR01)))
		assert.Nil(t, ConvertADT(nil))
	})

	t.Run("sending facility supplies the provider", func(t *testing.T) {
		raw := strings.Join([]string{
			`MSH|^~\&|PAS|RX1|ROUTE|ROUTE|201010101418||ADT^A01^ADT_A01|1|P|2.4`,
			samplePID,
			`PV1|1|I|||||||||||||||||2139^^^VISITID`,
		}, "\r")

		encounter := ConvertADT(parse(t, raw)).(*fhir_dto.Encounter)
		require.NotNil(t, encounter.ServiceProvider)
		assert.Equal(t, "RX1", encounter.ServiceProvider.Identifier.Value)
		require.Len(t, encounter.Identifier, 1)
		assert.Equal(t, "https://fhir.nhs.uk/RX1/Id/Encounter", encounter.Identifier[0].System)
		assert.Equal(t, "2139", encounter.Identifier[0].Value)
	})

	t.Run("point of care in PV1 wins over the sending facility", func(t *testing.T) {
		raw := strings.Join([]string{
			`MSH|^~\&|PAS|ROUTE|ROUTE|ROUTE|201010101418||ADT^A01^ADT_A01|1|P|2.4`,
			samplePID,
			`PV1|1|I|RCB^OBS1^BAY2-6^RCB55||||||||||||||||2139^^^VISITID`,
		}, "\r")

		encounter := ConvertADT(parse(t, raw)).(*fhir_dto.Encounter)
		require.NotNil(t, encounter.ServiceProvider)
		assert.Equal(t, "RCB", encounter.ServiceProvider.Identifier.Value)
		for _, identifier := range encounter.Identifier {
			assert.NotContains(t, identifier.System, "ROUTE")
		}
	})
}
