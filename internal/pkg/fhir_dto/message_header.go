package fhir_dto

type MessageHeader struct {
	ResourceType string                     `json:"resourceType"`
	ID           string                     `json:"id,omitempty"`
	Meta         *Meta                      `json:"meta,omitempty"`
	Extension    []Extension                `json:"extension,omitempty"`
	EventCoding  *Coding                    `json:"eventCoding,omitempty"`
	Destination  []MessageHeaderDestination `json:"destination,omitempty"`
	Sender       *Reference                 `json:"sender,omitempty"`
	Source       *MessageHeaderSource       `json:"source,omitempty"`
	Reason       *CodeableConcept           `json:"reason,omitempty"`
	Response     *MessageHeaderResponse     `json:"response,omitempty"`
	Focus        []Reference                `json:"focus,omitempty"`
}

type MessageHeaderDestination struct {
	Name     string     `json:"name,omitempty"`
	Endpoint string     `json:"endpoint,omitempty"`
	Receiver *Reference `json:"receiver,omitempty"`
}

type MessageHeaderSource struct {
	Name     string `json:"name,omitempty"`
	Software string `json:"software,omitempty"`
	Version  string `json:"version,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

type MessageHeaderResponse struct {
	Identifier string `json:"identifier,omitempty"`
	Code       string `json:"code,omitempty"`
}

// EventCode returns eventCoding.code or "".
func (m *MessageHeader) EventCode() string {
	if m == nil || m.EventCoding == nil {
		return ""
	}
	return m.EventCoding.Code
}
