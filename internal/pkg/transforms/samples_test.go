package transforms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/hl7v2"
)

const samplePID = `PID|1||3333333333^^^NHS||SMITH^FREDRICA^J^^MRS^^L|SCHMIDT^HELGAR^Y|196512131515|2|||29 WEST AVENUE^BURYTHORPE^MALTON^NORTH YORKSHIRE^YO32 5TT^GBR^H||+441234567890||EN|M|C22|||||A|Berlin|||GBR||DEU`

var adtA01 = strings.Join([]string{
	`MSH|^~\&|PAS|RCB|ROUTE|ROUTE|201010101418||ADT^A01^ADT_A01|1391320453338055|P|2.4|1|20101010141857|||GBR|UNICODE|EN||iTKv1.0`,
	`EVN||201010101400|||111111111^Cortana^Emily^^^Miss^^RCB55|201010101400`,
	samplePID,
	`PD1|||MALTON GP PRACTICE^^Y06601|G5612908^Townley^Gregory^^^Dr^^^GMP`,
	`NK1|1|SMITH^ALBERT^J^^MR^^L|1|29 WEST AVENUE^BURYTHORPE^MALTON^NORTH YORKSHIRE^YO32 5TT^GBR^H|+441234567890||||||||||1|196311111513||||EN`,
	`PV1|1|I|RCB^OBS1^BAY2-6^RCB55|13|||C3456789^Darwin^Samuel^^^Dr^^^GMC|G5612908^Townley^Gregory^^^Dr^^^GMP|C3456789^Darwin^Samuel^^^Dr^^^GMC|300||||19|||||2139^^^VISITID|||||||||||||||||||||||||201010201716`,
	`PV2||||||||||||||||||||||||||||||||||||||C`,
}, "\n")

var adtA03 = strings.Join([]string{
	`MSH|^~\&|MATSYSTEM|RCB|PAS|RCB|201003311730||ADT^A03^ADT_A03|13403891320453338089|P|2.4|0|20100331173057|||GBR|UNICODE|EN||iTKv1.0`,
	`EVN||201003311720|||111111111^Cortana^Emily^^Miss^^RCB55|201003311725`,
	samplePID,
	`PD1|||MALTON GP PRACTICE^^Y06601|G5612908^Townley^Gregory^^^Dr^^^GMC`,
	`PV1|61|O|RCB^MATWRD^Bed 3^RCB55|82|||C3456789^Darwin^Samuel^^^Dr^^^GMC||C3456789^Darwin^Samuel^^^Dr^^^GMC|500||||79|B6||C3456789^Darwin^Samuel^^^Dr^^^GMC|Pregnant|11554^^^VISITID|||||||||||||||||19||||||||201003301100|201003311715`,
}, "\n")

var adtA28 = strings.Join([]string{
	`MSH|^~\&|PAS|RCB|ROUTE|ROUTE|201001021215||ADT^A28^ADT_A05|13403891320453338075|P|2.4|0|20100102121557|||GBR|UNICODE|EN||iTKv1.0`,
	`EVN||201001021213|||111111111^Cortana^Emily^^^Miss^^RCB55|201001021213`,
	samplePID,
	`PD1|||MALTON GP PRACTICE^^Y06601|G5612908^Townley^Gregory^^^Dr^^^GMP`,
}, "\r")

var oruR01 = strings.Join([]string{
	`MSH|^~\&|ACMELab^2.16.840.1.113883.2.1.8.1.5.999^ISO|CAV^7A4BV^L|cymru.nhs.uk|NHSWales^RQFW3^L|20190514102527+0200||ORU^R01^ORU_R01|5051095-201905141025|T|2.5.1|||AL`,
	`PID|||403281375^^^154^PI~5189214567^^^NHS^NH||Bloggs^Joe^^^Mr||20010328|M|||A B M U Health Board^One Talbot Gateway^Baglan^Neath port talbot^SA12 7BR`,
	`PV1||O||||||||CAR`,
	`ORC|OR||||||||||||7A3C7MPAT^^^wales.nhs.uk&7A3&L,M,N^^^^^MH Pathology Dept`,
	`OBR|1||914694928301|B3051^HbA1c (IFCC traceable)|||201803091500|||^ABM: Angharad Shore||||201803091500|^^Dr Andar Gunneberg|^Gunneberg^Andar^^^Dr||||||201803091500|||C`,
	`NTE|1||For monitoring known diabetic patients, please follow NICE guidelines.`,
	`OBX|1|NM|B3553^HbA1c (IFCC traceable)||49|mmol/mol|<48|H|||C|||201803091500`,
	`OBR|2||914694928301|B0001^Full blood count|||201803091500|||^ABM: Carl Owen||||201803091500|^^Dr Andar Gunneberg|^Gunneberg^Andar^^^Dr||||||201803091500|||F`,
	`TQ1|||||||201803091400|201803091500|S^^^^^^^^Urgent`,
	`OBX|1|NM|B0300^White blood cell (WBC) count||3.5|x10\S\9/L|4.0-11.0|L|||F|||201803091500`,
	`OBX|2|NM|B0307^Haemoglobin (Hb)||200|g/L|130-180|H|||F|||201803091500`,
	`SPM|1|^9146949283||BLOO^Blood^ACME|||||||||||||201803091400|201803091500`,
}, "\r")

// segment parses a single segment behind a minimal MSH.
func segment(t *testing.T, line string) *hl7v2.Segment {
	t.Helper()
	msg, err := hl7v2.Parse(`MSH|^~\&|TEST|TEST|TEST|TEST|20240101||ADT^A01|1|P|2.4` + "\r" + line)
	require.NoError(t, err)
	require.Len(t, msg.Segments, 2)
	return msg.Segments[1]
}

func parse(t *testing.T, raw string) *hl7v2.Message {
	t.Helper()
	msg, err := hl7v2.Parse(raw)
	require.NoError(t, err)
	return msg
}
