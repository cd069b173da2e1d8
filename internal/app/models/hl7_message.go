package models

import "time"

type HL7Message struct {
	ID          string    `bson:"_id,omitempty" json:"id,omitempty"`
	RequestID   string    `bson:"request_id" json:"request_id"`
	Endpoint    string    `bson:"endpoint" json:"endpoint"`
	ControlID   string    `bson:"control_id" json:"control_id"`
	MessageType string    `bson:"message_type" json:"message_type"`
	Trigger     string    `bson:"trigger,omitempty" json:"trigger,omitempty"`
	Sender      string    `bson:"sender,omitempty" json:"sender,omitempty"`
	Message     string    `bson:"message" json:"message"`
	Ack         string    `bson:"ack,omitempty" json:"ack,omitempty"`
	AckCode     string    `bson:"ack_code,omitempty" json:"ack_code,omitempty"`
	ResourceID  string    `bson:"resource_id,omitempty" json:"resource_id,omitempty"`
	Outcome     string    `bson:"outcome,omitempty" json:"outcome,omitempty"`
	ReceivedAt  time.Time `bson:"received_at" json:"received_at"`
}
