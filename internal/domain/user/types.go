package user

type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleVisitor Role = "visitor"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleVisitor, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
