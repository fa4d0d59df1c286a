package user

import "time"

// Role mirrors the numeric role column. Anything that is not one of the
// special codes behaves as a standard employee.
type Role int

const (
	RoleStandard   Role = 1
	RoleRestricted Role = 2 // interns: two-punch day, reduced daily target
	RoleAdmin      Role = 7
)

// MaxDailyPunches is the punch quota for a single day.
func (r Role) MaxDailyPunches() int {
	if r == RoleRestricted {
		return 2
	}
	return 4
}

// DailyTargetHours is the expected worked time for one business day.
func (r Role) DailyTargetHours() float64 {
	if r == RoleRestricted {
		return 6.0
	}
	return 8.75 // 8h 45m
}

type User struct {
	ID        string
	Name      string
	Username  *string
	ImgURL    *string
	Role      Role
	Birthdate *time.Time
	CreatedAt time.Time
}

// DisplayName prefers the short username over the full name.
func (u User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Name
}
