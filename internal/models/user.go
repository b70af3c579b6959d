package models

type Role string

const (
	RoleNone  Role = "none"
	RoleAdmin Role = "admin"
)

const (
	FieldEmail = "email"
	FieldRole  = "role"
)

func (r Role) Valid() bool {
	return r == RoleNone || r == RoleAdmin
}

// IsAdmin reports whether a stored user record carries the admin role.
// A record without a role field is not admin.
func IsAdmin(user Document) bool {
	return Role(StringField(user, FieldRole)) == RoleAdmin
}
