package constvars

const (
	HL7MessageTypeADT = "ADT"
	HL7MessageTypeORU = "ORU"
	HL7MessageTypeACK = "ACK"

	HL7TriggerA01 = "A01"
	HL7TriggerA02 = "A02"
	HL7TriggerA03 = "A03"
	HL7TriggerA04 = "A04"
	HL7TriggerA05 = "A05"
	HL7TriggerA28 = "A28"
	HL7TriggerA31 = "A31"
	HL7TriggerR01 = "R01"
)

const (
	HL7AckAccept = "AA"
	HL7AckError  = "AE"
	HL7AckReject = "AR"
)

const (
	HL7AssigningAuthorityNHS     = "NHS"
	HL7AssigningAuthorityNH      = "NH"
	HL7AssigningAuthorityGMC     = "GMC"
	HL7AssigningAuthorityGMP     = "GMP"
	HL7AssigningAuthorityCardiff = "154"
)

const (
	HL7TimestampMinute = "200601021504"
	HL7TimestampSecond = "20060102150405"
)

const (
	HL7AckSendingApplication = "TIE"
	HL7AckSendingFacility    = "NHS_TRUST"
	HL7AckVersion            = "2.4"
	HL7AckProcessingID       = "P"
	HL7AckCountry            = "GBR"
	HL7AckCharset            = "UNICODE"
	HL7AckLanguage           = "EN"
	HL7AckProfile            = "iTKv1.0"
)
