package models

import (
	"time"

	"gorm.io/datatypes"
)

// WorkPeriod is a named date range consumed by the scheduling side of the
// host application. Periods are only ever created and edited; there is no
// delete operation.
type WorkPeriod struct {
	// Column names avoid the reserved word "end".
	ID    uint           `json:"id" gorm:"primaryKey"`
	Start datatypes.Date `json:"start" gorm:"column:start_date;not null;index"`
	End   datatypes.Date `json:"end" gorm:"column:end_date;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WorkPeriod) TableName() string {
	return "work_periods"
}
