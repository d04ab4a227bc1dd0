package models

// StaffRole is the back-office role carried in the identity provider token.
// Teachers themselves never log into the admin surface.
type StaffRole string

const (
	// RoleAdmin may read and mutate everything.
	RoleAdmin StaffRole = "admin"
	// RoleStaff may read listings but not mutate.
	RoleStaff StaffRole = "staff"
)
