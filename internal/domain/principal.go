package domain

// Role is the role of an authenticated caller.
type Role string

const (
	RoleStudent Role = "student"
	RoleCoach   Role = "coach"
	RoleAdmin   Role = "admin"
)

// IsValid returns true for known roles.
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleCoach || r == RoleAdmin
}

// Principal is the acting caller resolved by the identity layer.
type Principal struct {
	UserID int64
	Role   Role
}

func (p Principal) IsStudent() bool { return p.Role == RoleStudent }
func (p Principal) IsCoach() bool   { return p.Role == RoleCoach }
func (p Principal) IsAdmin() bool   { return p.Role == RoleAdmin }
