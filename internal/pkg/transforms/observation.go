package transforms

import (
	"strconv"
	"strings"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/hl7v2"
)

var interpretations = map[string]string{
	"H": "High",
	"N": "Normal",
	"L": "Low",
}

// Observation converts an OBX segment.
func Observation(obx *hl7v2.Segment) *fhir_dto.Observation {
	observation := fhir_dto.NewObservation()
	if obx == nil {
		return observation
	}

	if code := codeableConcept(obx.Field(3)); code != nil {
		observation.Code = code
		observation.Category = []fhir_dto.CodeableConcept{
			*fhir_dto.NewCodeableConcept(constvars.SystemObservationCat, "laboratory", "Laboratory"),
		}
	}

	if effective, ok := hl7v2.DateTime(obx.Value(14)); ok {
		observation.EffectiveDateTime = effective
	}

	setObservationValue(observation, obx)

	if rng := strings.TrimSpace(obx.Field(7).Text()); rng != "" {
		observation.ReferenceRange = []fhir_dto.ObservationReferenceRange{{Text: rng}}
	}

	for _, flag := range obx.Repetitions(8) {
		code := strings.TrimSpace(flag.Component(1))
		if display, ok := interpretations[code]; ok {
			observation.Interpretation = append(observation.Interpretation,
				*fhir_dto.NewCodeableConcept(constvars.SystemV3Interpretation, code, display))
		}
	}

	if organization := strings.TrimSpace(obx.Component(23, 1)); organization != "" {
		observation.Performer = append(observation.Performer, fhir_dto.Reference{Display: organization})
	}
	if director := PractitionerReference(obx.Field(25)); director != nil {
		observation.Performer = append(observation.Performer, *director)
	}

	return observation
}

func setObservationValue(observation *fhir_dto.Observation, obx *hl7v2.Segment) {
	values := obx.Repetitions(5)
	if len(values) == 0 {
		return
	}

	switch strings.TrimSpace(obx.Value(2)) {
	case "NM", "SN":
		raw := strings.TrimSpace(values[0].Component(1))
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return
		}
		quantity := &fhir_dto.Quantity{Value: &value}
		units := obx.Field(6)
		quantity.Code = strings.TrimSpace(units.Component(1))
		quantity.Unit = strings.TrimSpace(units.Component(2))
		if quantity.Unit == "" {
			quantity.Unit = quantity.Code
		}
		quantity.System = codeSystem(units.Component(3))
		observation.ValueQuantity = quantity
	case "CWE", "CE", "CNE":
		observation.ValueCodeableConcept = codeableConcept(values[0])
	case "TX", "ST", "FT":
		var lines []string
		for _, value := range values {
			if text := strings.TrimRight(value.Text(), " "); text != "" {
				lines = append(lines, text)
			}
		}
		observation.ValueString = strings.Join(lines, "\n")
	}
}

// Specimen converts an SPM segment.
func Specimen(spm *hl7v2.Segment) *fhir_dto.Specimen {
	specimen := fhir_dto.NewSpecimen()
	if spm == nil {
		return specimen
	}

	// SPM-2 is an EIP: placer EI then filler EI.
	if placer := strings.TrimSpace(spm.Sub(2, 1, 1)); placer != "" {
		specimen.AddIdentifier(fhir_dto.Identifier{Value: placer})
	}
	if filler := strings.TrimSpace(spm.Sub(2, 2, 1)); filler != "" {
		specimen.AccessionIdentifier = &fhir_dto.Identifier{Value: filler}
	}

	if code := strings.TrimSpace(spm.Component(4, 1)); code != "" {
		specimen.Type = &fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{
			Code:    code,
			Display: strings.TrimSpace(spm.Component(4, 2)),
		}}}
	}

	if collected, ok := hl7v2.DateTime(spm.Component(17, 1)); ok {
		specimen.Collection = &fhir_dto.SpecimenCollection{CollectedDateTime: collected}
	}

	return specimen
}
