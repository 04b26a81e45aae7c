//go:build unit || e2e

package builder

import (
	"campus-parking/internal/domain/user"
	"campus-parking/internal/pkg/password"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID       uuid.UUID
	Email    string
	Name     string
	Password string
	Role     user.Role
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:       uuid.New(),
		Email:    "student@campus.example",
		Name:     "Test Student",
		Password: "password123",
		Role:     user.RoleStudent,
	}
}

func (b *UserBuilder) WithRole(r user.Role) *UserBuilder {
	b.Role = r
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) BuildSnapshot() *shared.UserSnapshot {
	hash, err := password.HashPassword(b.Password)
	if err != nil {
		panic(err)
	}
	return &shared.UserSnapshot{
		ID:           b.ID,
		Email:        b.Email,
		Name:         b.Name,
		PasswordHash: hash,
		Role:         b.Role,
	}
}
