package readstore

import (
	"campus-parking/internal/domain/booking"
	"campus-parking/internal/domain/notification"
	"campus-parking/internal/domain/user"
	"campus-parking/internal/domain/zone"

	"github.com/Masterminds/squirrel"
)

// psql builds dollar-placeholder queries for the dynamically-filtered lists.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func zoneTypeFromString(s string) zone.Type {
	return zone.Type(s)
}

func notificationType(s string) notification.Type {
	return notification.Type(s)
}

func userRole(s string) user.Role {
	return user.Role(s)
}

func violationKinds(vs []string) []booking.ViolationKind {
	if len(vs) == 0 {
		return nil
	}
	out := make([]booking.ViolationKind, len(vs))
	for i, v := range vs {
		out[i] = booking.ViolationKind(v)
	}
	return out
}
