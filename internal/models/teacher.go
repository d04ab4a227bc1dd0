package models

import (
	"time"
)

type TeacherStatus string

const (
	// StatusInvited marks a record provisioned by an administrator that has
	// not yet been claimed as a login-capable account.
	StatusInvited     TeacherStatus = "invited"
	StatusActive      TeacherStatus = "active"
	StatusDeactivated TeacherStatus = "deactivated"
)

// Teacher is a person record manageable by an administrator. Removal is a
// status change, never a row delete, so deactivated teachers stay in the
// store and can be reactivated later.
type Teacher struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	FirstName string        `json:"first_name" gorm:"not null;size:100"`
	LastName  string        `json:"last_name" gorm:"not null;size:100"`
	Email     string        `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Status    TeacherStatus `json:"status" gorm:"not null;size:20;default:invited"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Teacher) TableName() string {
	return "teachers"
}

// IsListed reports whether the teacher appears in the admin teacher list.
func (t *Teacher) IsListed() bool {
	return t.Status != StatusDeactivated
}
