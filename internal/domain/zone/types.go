package zone

import "campus-parking/internal/domain/user"

type Type string

const (
	TypeStudent Type = "student"
	TypeStaff   Type = "staff"
	TypeVisitor Type = "visitor"
	TypeGeneral Type = "general"
	TypeEvent   Type = "event"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeStudent, TypeStaff, TypeVisitor, TypeGeneral, TypeEvent:
		return true
	}
	return false
}

// bookableZoneTypes maps each role to the zone types it may claim a slot in.
// Staff may also park in student zones; event zones are admin-managed.
var bookableZoneTypes = map[user.Role][]Type{
	user.RoleStudent: {TypeStudent, TypeGeneral},
	user.RoleStaff:   {TypeStaff, TypeGeneral, TypeStudent},
	user.RoleVisitor: {TypeVisitor, TypeGeneral},
}

func (t Type) BookableBy(role user.Role) bool {
	if role.IsAdmin() {
		return true
	}
	for _, allowed := range bookableZoneTypes[role] {
		if t == allowed {
			return true
		}
	}
	return false
}
