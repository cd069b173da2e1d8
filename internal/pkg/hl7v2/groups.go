package hl7v2

// OrderGroup is one ORDER_OBSERVATION group of an ORU_R01 message.
type OrderGroup struct {
	ORC          *Segment
	OBR          *Segment
	Notes        []*Segment
	Timing       []*Segment
	Observations []ObservationGroup
	Specimens    []*Segment
}

// ObservationGroup is an OBX with the NTE segments that follow it.
type ObservationGroup struct {
	OBX   *Segment
	Notes []*Segment
}

// OrderGroups splits the message into order groups. A group starts at an ORC
// or at an OBR that does not directly follow an ORC.
func (m *Message) OrderGroups() []OrderGroup {
	var groups []OrderGroup
	var current *OrderGroup
	var pendingORC *Segment

	flush := func() {
		if current != nil {
			groups = append(groups, *current)
			current = nil
		}
	}

	for _, segment := range m.Segments {
		switch segment.Name {
		case "ORC":
			flush()
			pendingORC = segment
		case "OBR":
			flush()
			current = &OrderGroup{ORC: pendingORC, OBR: segment}
			pendingORC = nil
		case "NTE":
			if current == nil {
				continue
			}
			if n := len(current.Observations); n > 0 {
				current.Observations[n-1].Notes = append(current.Observations[n-1].Notes, segment)
			} else {
				current.Notes = append(current.Notes, segment)
			}
		case "TQ1":
			if current != nil {
				current.Timing = append(current.Timing, segment)
			}
		case "OBX":
			if current != nil {
				current.Observations = append(current.Observations, ObservationGroup{OBX: segment})
			}
		case "SPM":
			if current != nil {
				current.Specimens = append(current.Specimens, segment)
			}
		}
	}
	flush()
	return groups
}
