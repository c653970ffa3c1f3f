package models

// Role is the access level assigned to an account by the backend.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole normalizes a server-provided role string. Anything that is not
// recognized (including an absent role) is treated as a student.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleStudent
}

// User is the identity record returned by login and /auth/me.
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            Role   `json:"role"`
	Enrolled        bool   `json:"is_enrolled"`
	ProfileImageURL string `json:"profile_image_url"`
}

// IsAdmin reports whether the user may enter the admin back office.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
