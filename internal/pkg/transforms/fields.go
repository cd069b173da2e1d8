package transforms

import (
	"strings"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/hl7v2"
)

// HumanName converts an XPN. It returns nil when the name carries no parts.
func HumanName(xpn hl7v2.Field) *fhir_dto.HumanName {
	name := &fhir_dto.HumanName{Family: strings.TrimSpace(xpn.Sub(1, 1))}
	if given := strings.TrimSpace(xpn.Component(2)); given != "" {
		name.Given = append(name.Given, given)
	}
	if prefix := strings.TrimSpace(xpn.Component(5)); prefix != "" {
		name.Prefix = append(name.Prefix, prefix)
	}
	if name.Family == "" && len(name.Given) == 0 && len(name.Prefix) == 0 {
		return nil
	}
	return name
}

// Address converts an XAD. XAD.1 may carry the whole street line or be split
// into street name and dwelling number subcomponents.
func Address(xad hl7v2.Field) *fhir_dto.Address {
	address := &fhir_dto.Address{}

	if line := strings.TrimSpace(xad.Sub(1, 1)); line != "" {
		address.Line = append(address.Line, line)
	}
	dwelling := strings.TrimSpace(xad.Sub(1, 3))
	street := strings.TrimSpace(xad.Sub(1, 2))
	if dwelling != "" {
		address.Line = append(address.Line, dwelling)
	}
	if street != "" {
		address.Line = append(address.Line, street)
	}
	if other := strings.TrimSpace(xad.Component(2)); other != "" {
		address.Line = append(address.Line, other)
	}

	address.City = strings.TrimSpace(xad.Component(3))
	address.District = strings.TrimSpace(xad.Component(4))
	address.PostalCode = strings.TrimSpace(xad.Component(5))
	address.Country = strings.TrimSpace(xad.Component(6))

	switch xad.Component(7) {
	case "H":
		address.Use = constvars.FhirUseHome
	case "B":
		address.Use = constvars.FhirUseWork
	case "C":
		address.Use = constvars.FhirUseTemp
	}

	if len(address.Line) == 0 && address.City == "" && address.District == "" && address.PostalCode == "" {
		return nil
	}
	return address
}

// ContactPoint converts an XTN into a phone contact. The unformatted number
// in XTN.1 wins, XTN.7 is the fallback.
func ContactPoint(xtn hl7v2.Field) *fhir_dto.ContactPoint {
	value := strings.TrimSpace(xtn.Component(1))
	if value == "" {
		value = strings.TrimSpace(xtn.Component(7))
	}
	if value == "" {
		return nil
	}
	return &fhir_dto.ContactPoint{
		System: constvars.FhirContactPointSystemPhone,
		Value:  value,
	}
}

// PractitionerReference converts an XCN into a logical reference. The display
// is prefix, given and family name joined by single spaces.
func PractitionerReference(xcn hl7v2.Field) *fhir_dto.Reference {
	if xcn.IsEmpty() {
		return nil
	}

	var parts []string
	for _, part := range []string{xcn.Component(6), xcn.Component(3), xcn.Sub(2, 1)} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	reference := &fhir_dto.Reference{Display: strings.Join(parts, " ")}
	if value := strings.TrimSpace(xcn.Component(1)); value != "" {
		reference.Identifier = &fhir_dto.Identifier{Value: value}
		switch xcn.Sub(9, 1) {
		case constvars.HL7AssigningAuthorityGMC:
			reference.Identifier.System = constvars.SystemGMCNumber
		case constvars.HL7AssigningAuthorityGMP:
			reference.Identifier.System = constvars.SystemGMPNumber
		}
	}
	if reference.IsEmpty() {
		return nil
	}
	return reference
}

// Identifier converts a CX, mapping well known assigning authorities to
// their URI systems.
func Identifier(cx hl7v2.Field) *fhir_dto.Identifier {
	value := strings.TrimSpace(cx.Component(1))
	if value == "" {
		return nil
	}
	identifier := &fhir_dto.Identifier{Value: value}

	authority := cx.Sub(4, 1)
	switch authority {
	case "":
	case constvars.HL7AssigningAuthorityNHS, constvars.HL7AssigningAuthorityNH:
		identifier.System = constvars.SystemNHSNumber
	case constvars.HL7AssigningAuthorityCardiff:
		identifier.System = constvars.SystemCardiffMRN
	case constvars.HL7AssigningAuthorityGMC:
		identifier.System = constvars.SystemGMCNumber
	case constvars.HL7AssigningAuthorityGMP:
		identifier.System = constvars.SystemGMPNumber
	default:
		identifier.System = strings.ReplaceAll(authority, " ", "")
	}
	return identifier
}

// codeSystem maps HL7 coding system names to FHIR system URIs.
func codeSystem(name string) string {
	switch name {
	case "SCT":
		return constvars.SystemSNOMEDCT
	case "LN":
		return constvars.SystemLOINC
	case "UCUM":
		return constvars.SystemUCUM
	}
	return ""
}

// coding builds a Coding from a CE/CWE style triplet starting at component c.
func coding(field hl7v2.Field, c int) *fhir_dto.Coding {
	code := strings.TrimSpace(field.Component(c))
	display := strings.TrimSpace(field.Component(c + 1))
	if code == "" && display == "" {
		return nil
	}
	return &fhir_dto.Coding{
		System:  codeSystem(field.Component(c + 2)),
		Code:    code,
		Display: display,
	}
}

// codeableConcept builds a CodeableConcept with the primary and alternate
// codings of a CE/CWE field.
func codeableConcept(field hl7v2.Field) *fhir_dto.CodeableConcept {
	concept := &fhir_dto.CodeableConcept{}
	for _, c := range []int{1, 4} {
		if cd := coding(field, c); cd != nil && cd.Code != "" {
			concept.Coding = append(concept.Coding, *cd)
		}
	}
	if len(concept.Coding) == 0 {
		if text := strings.TrimSpace(field.Component(2)); text != "" {
			concept.Text = text
			return concept
		}
		return nil
	}
	return concept
}
