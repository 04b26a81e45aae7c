package booking

type Status string

const (
	StatusPending    Status = "pending"
	StatusActive     Status = "active"
	StatusCheckedIn  Status = "checked-in"
	StatusCheckedOut Status = "checked-out"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusExpired    Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCheckedIn, StatusCheckedOut,
		StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// CountsAgainstCapacity reports whether a booking in this status holds a slot.
func (s Status) CountsAgainstCapacity() bool {
	return s == StatusActive || s == StatusCheckedIn
}

type ViolationKind string

const (
	// ViolationNoCheckout: checked in but never checked out before expiry.
	ViolationNoCheckout ViolationKind = "no-checkout"
	// ViolationNoShow: never checked in at all.
	ViolationNoShow ViolationKind = "unauthorized"
)

func (v ViolationKind) String() string {
	return string(v)
}
