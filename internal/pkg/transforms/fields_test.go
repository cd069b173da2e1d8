package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
)

func TestHumanName(t *testing.T) {
	pid := segment(t, samplePID)

	name := HumanName(pid.Field(5))
	require.NotNil(t, name)
	assert.Equal(t, "SMITH", name.Family)
	assert.Equal(t, []string{"FREDRICA"}, name.Given)
	assert.Equal(t, []string{"MRS"}, name.Prefix)

	assert.Nil(t, HumanName(pid.Field(4)))
}

func TestAddress(t *testing.T) {
	t.Run("whole street line", func(t *testing.T) {
		pid := segment(t, samplePID)

		address := Address(pid.Field(11))
		require.NotNil(t, address)
		assert.Equal(t, []string{"29 WEST AVENUE", "BURYTHORPE"}, address.Line)
		assert.Equal(t, "MALTON", address.City)
		assert.Equal(t, "NORTH YORKSHIRE", address.District)
		assert.Equal(t, "YO32 5TT", address.PostalCode)
		assert.Equal(t, "GBR", address.Country)
		assert.Equal(t, constvars.FhirUseHome, address.Use)
	})

	t.Run("street name and dwelling number", func(t *testing.T) {
		pid := segment(t, `PID|1||||||||||&High Street&12^^LEEDS^^LS1 4AP^^B`)

		address := Address(pid.Field(11))
		require.NotNil(t, address)
		assert.Equal(t, []string{"12", "High Street"}, address.Line)
		assert.Equal(t, "LEEDS", address.City)
		assert.Equal(t, constvars.FhirUseWork, address.Use)
	})

	t.Run("temporary and empty", func(t *testing.T) {
		pid := segment(t, `PID|1||||||||||1 Road^^^^^^C~^^^^^^H`)

		reps := pid.Repetitions(11)
		require.Len(t, reps, 2)
		assert.Equal(t, constvars.FhirUseTemp, Address(reps[0]).Use)
		assert.Nil(t, Address(reps[1]))
	})
}

func TestContactPoint(t *testing.T) {
	pid := segment(t, `PID|1||||||||||||+441234567890|^^^^^^01132 555555`)

	home := ContactPoint(pid.Field(13))
	require.NotNil(t, home)
	assert.Equal(t, "+441234567890", home.Value)
	assert.Equal(t, constvars.FhirContactPointSystemPhone, home.System)

	work := ContactPoint(pid.Field(14))
	require.NotNil(t, work)
	assert.Equal(t, "01132 555555", work.Value)

	assert.Nil(t, ContactPoint(pid.Field(15)))
}

func TestPractitionerReference(t *testing.T) {
	tests := []struct {
		name     string
		xcn      string
		display  string
		system   string
		value    string
		expected bool
	}{
		{"GMC consultant", "C3456789^Darwin^Samuel^^^Dr^^^GMC", "Dr Samuel Darwin", constvars.SystemGMCNumber, "C3456789", true},
		{"GMP practitioner", "G5612908^Townley^Gregory^^^Dr^^^GMP", "Dr Gregory Townley", constvars.SystemGMPNumber, "G5612908", true},
		{"unknown authority", "123^Jones^Ann^^^^^^LOCAL", "Ann Jones", "", "123", true},
		{"name only", "^Gunneberg^Andar^^^Dr", "Dr Andar Gunneberg", "", "", true},
		{"empty", "", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pv1 := segment(t, "PV1|1|I|||||"+tt.xcn)

			reference := PractitionerReference(pv1.Field(7))
			if !tt.expected {
				assert.Nil(t, reference)
				return
			}
			require.NotNil(t, reference)
			assert.Equal(t, tt.display, reference.Display)
			if tt.value == "" {
				assert.Nil(t, reference.Identifier)
				return
			}
			require.NotNil(t, reference.Identifier)
			assert.Equal(t, tt.system, reference.Identifier.System)
			assert.Equal(t, tt.value, reference.Identifier.Value)
		})
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		cx     string
		system string
	}{
		{"NHS", "3333333333^^^NHS", constvars.SystemNHSNumber},
		{"NH", "5189214567^^^NHS^NH", constvars.SystemNHSNumber},
		{"NH authority", "5189214567^^^NH", constvars.SystemNHSNumber},
		{"Cardiff", "403281375^^^154^PI", constvars.SystemCardiffMRN},
		{"GMC", "C3456789^^^GMC", constvars.SystemGMCNumber},
		{"GMP", "G5612908^^^GMP", constvars.SystemGMPNumber},
		{"namespace passes through", "X1^^^RCB PAS", "RCBPAS"},
		{"no authority", "X1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pid := segment(t, "PID|1||"+tt.cx)

			identifier := Identifier(pid.Field(3))
			require.NotNil(t, identifier)
			assert.Equal(t, tt.system, identifier.System)
		})
	}

	t.Run("missing value", func(t *testing.T) {
		pid := segment(t, "PID|1||^^^NHS")
		assert.Nil(t, Identifier(pid.Field(3)))
	})
}
