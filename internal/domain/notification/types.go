package notification

type Type string

const (
	TypeBooking      Type = "booking"
	TypeCancellation Type = "cancellation"
	TypeReminder     Type = "reminder"
	TypeViolation    Type = "violation"
	TypeEvent        Type = "event"
	TypeSystem       Type = "system"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeBooking, TypeCancellation, TypeReminder, TypeViolation, TypeEvent, TypeSystem:
		return true
	}
	return false
}
