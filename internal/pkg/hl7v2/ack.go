package hl7v2

import (
	"strings"
	"time"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
)

// ACK describes an acknowledgement for an inbound message.
type ACK struct {
	Code      string
	ControlID string
	Text      string
	Timestamp time.Time
}

// BuildACK renders an ACK in reply to in. in may be nil when the inbound
// message could not be parsed; the MSA then carries no control id.
func BuildACK(in *Message, ack ACK) string {
	delims := DefaultDelimiters
	receivingApp, receivingFacility, inboundControlID := "", "", ""
	if in != nil {
		receivingApp = in.SendingApplication()
		receivingFacility = in.SendingFacility()
		inboundControlID = in.ControlID()
	}

	sep := string(delims.Field)
	encoding := string([]byte{delims.Component, delims.Repetition, delims.Escape, delims.SubComponent})

	msh := strings.Join([]string{
		"MSH",
		encoding,
		constvars.HL7AckSendingApplication,
		constvars.HL7AckSendingFacility,
		Escape(receivingApp, delims),
		Escape(receivingFacility, delims),
		ack.Timestamp.Format(constvars.HL7TimestampMinute),
		"",
		constvars.HL7MessageTypeACK,
		Escape(ack.ControlID, delims),
		constvars.HL7AckProcessingID,
		constvars.HL7AckVersion,
		"0",
		ack.Timestamp.Format(constvars.HL7TimestampSecond),
		"",
		"",
		constvars.HL7AckCountry,
		constvars.HL7AckCharset,
		constvars.HL7AckLanguage,
		"",
		constvars.HL7AckProfile,
	}, sep)

	msa := strings.Join([]string{
		"MSA",
		ack.Code,
		Escape(inboundControlID, delims),
		Escape(ack.Text, delims),
		"",
	}, sep)

	return msh + "\r" + msa
}
