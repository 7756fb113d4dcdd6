package model

import "time"

const RoleAdmin = "admin"

type User struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Role      string    `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=admin"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty" validate:"omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
