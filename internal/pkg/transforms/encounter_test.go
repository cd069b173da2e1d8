package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
)

const samplePV1 = `PV1|61|O|RCB^MATWRD^Bed 3^RCB55|82|||C3456789^Darwin^Samuel^^^Dr^^^GMC||C3456789^Darwin^Samuel^^^Dr^^^GMC|500||||79|B6||C3456789^Darwin^Samuel^^^Dr^^^GMC|Pregnant|11554^^^VISITID|||||||||||||||||19||||||||201003301100|201003311715`

func TestEncounter(t *testing.T) {
	encounter := Encounter(segment(t, samplePV1))

	assert.Equal(t, constvars.ResourceEncounter, encounter.ResourceType)
	assert.Equal(t, constvars.FhirEncounterStatusFinished, encounter.Status)

	require.NotNil(t, encounter.Period)
	assert.Equal(t, "2010-03-30T11:00:00Z", encounter.Period.Start)
	assert.Equal(t, "2010-03-31T17:15:00Z", encounter.Period.End)

	require.NotNil(t, encounter.Class)
	assert.Equal(t, "AMB", encounter.Class.Code)
	assert.Equal(t, constvars.SystemV3ActCode, encounter.Class.System)

	require.NotNil(t, encounter.ServiceProvider)
	assert.Equal(t, "RCB", encounter.ServiceProvider.Identifier.Value)
	assert.Equal(t, constvars.SystemODSCode, encounter.ServiceProvider.Identifier.System)

	require.Len(t, encounter.Location, 1)
	assert.Equal(t, "RCB55", encounter.Location[0].Location.Identifier.Value)
	assert.Equal(t, constvars.SystemODSSiteCode, encounter.Location[0].Location.Identifier.System)
	require.NotNil(t, encounter.Location[0].Period)
	assert.Equal(t, "2010-03-31T17:15:00Z", encounter.Location[0].Period.End)

	require.Len(t, encounter.Identifier, 1)
	assert.Equal(t, "https://fhir.nhs.uk/RCB/Id/Encounter", encounter.Identifier[0].System)
	assert.Equal(t, "11554", encounter.Identifier[0].Value)

	extension := encounter.FindExtension(constvars.ExtensionAdmissionMethod)
	require.NotNil(t, extension)
	assert.Equal(t, "82", extension.ValueCodeableConcept.FirstCode())

	require.Len(t, encounter.Participant, 3)
	codes := []string{}
	for _, participant := range encounter.Participant {
		codes = append(codes, participant.Type[0].FirstCode())
		assert.Equal(t, "Dr Samuel Darwin", participant.Individual.Display)
	}
	assert.Equal(t, []string{"ATND", "ADM", "CON"}, codes)

	assert.Equal(t, "500", encounter.ServiceType.FirstCode())
	require.NotNil(t, encounter.Hospitalization)
	assert.Equal(t, "79", encounter.Hospitalization.AdmitSource.FirstCode())
	assert.Equal(t, "19", encounter.Hospitalization.DischargeDisposition.FirstCode())
}

func TestEncounterDischarge(t *testing.T) {
	t.Run("last discharge wins", func(t *testing.T) {
		encounter := Encounter(segment(t, "PV1|1|I|||||||||||||||||V1^^^VISITID|||||||||||||||||||||||||201003301100|201003311715~201004011000"))

		assert.Equal(t, constvars.FhirEncounterStatusFinished, encounter.Status)
		require.NotNil(t, encounter.Period)
		assert.Equal(t, "2010-04-01T10:00:00Z", encounter.Period.End)
		assert.Equal(t, constvars.SystemV20203, encounter.Identifier[0].System)
	})

	t.Run("bad discharge timestamp is skipped", func(t *testing.T) {
		encounter := Encounter(segment(t, "PV1|1|I||||||||||||||||||||||||||||||||||||||||||201003301100|201003311715~garbage"))

		assert.Equal(t, constvars.FhirEncounterStatusFinished, encounter.Status)
		assert.Equal(t, "2010-03-31T17:15:00Z", encounter.Period.End)
	})

	t.Run("bad admit timestamp leaves period unset", func(t *testing.T) {
		encounter := Encounter(segment(t, "PV1|1|I||||||||||||||||||||||||||||||||||||||||||notadate"))

		assert.Nil(t, encounter.Period)
		assert.Empty(t, encounter.Status)
		assert.Equal(t, "IMP", encounter.Class.Code)
	})
}

func TestEncounterPreAdmission(t *testing.T) {
	encounter := Encounter(segment(t, "PV1|1|P"))

	assert.Equal(t, constvars.FhirEncounterStatusPlanned, encounter.Status)
	assert.Equal(t, "PRENC", encounter.Class.Code)
	assert.Nil(t, encounter.Hospitalization)
}

func TestEncounterParticipantRepetitions(t *testing.T) {
	encounter := Encounter(segment(t, "PV1|1|E|||||A1^One^Ann~A2^Two^Bob|R1^Ref^Rita"))

	require.Len(t, encounter.Participant, 3)
	assert.Equal(t, "ATND", encounter.Participant[0].Type[0].FirstCode())
	assert.Equal(t, "ATND", encounter.Participant[1].Type[0].FirstCode())
	assert.Equal(t, "Bob Two", encounter.Participant[1].Individual.Display)
	assert.Equal(t, "REF", encounter.Participant[2].Type[0].FirstCode())
	assert.Equal(t, "EMER", encounter.Class.Code)
}

func TestAppointment(t *testing.T) {
	appointment := Appointment(segment(t, samplePV1))

	assert.Equal(t, constvars.ResourceAppointment, appointment.ResourceType)
	assert.Equal(t, constvars.FhirAppointmentStatusFulfilled, appointment.Status)
	assert.Equal(t, "2010-03-30T11:00:00Z", appointment.Start)
	assert.Equal(t, "2010-03-31T17:15:00Z", appointment.End)

	require.Len(t, appointment.Participant, 4)
	assert.Equal(t, "RCB55", appointment.Participant[0].Actor.Identifier.Value)
	assert.Equal(t, "ATND", appointment.Participant[1].Type[0].FirstCode())

	require.Len(t, appointment.Identifier, 1)
	assert.Equal(t, "https://fhir.nhs.uk/RCB/Id/Appointment", appointment.Identifier[0].System)
}

func TestAppointmentBooked(t *testing.T) {
	appointment := Appointment(segment(t, "PV1|1|O||||||||||||||||||||||||||||||||||||||||||201003301100"))

	assert.Equal(t, constvars.FhirAppointmentStatusBooked, appointment.Status)
	assert.Empty(t, appointment.End)
}
