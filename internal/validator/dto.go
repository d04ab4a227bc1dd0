package validator

// TeacherCreateRequest represents the request structure for adding a teacher
// through the admin form.
type TeacherCreateRequest struct {
	FirstName string `json:"first_name" validate:"required,person_name"`
	LastName  string `json:"last_name" validate:"required,person_name"`
	Email     string `json:"email" validate:"required,email,max=255"`
}

// TeacherUpdateRequest represents the request structure for editing a teacher.
type TeacherUpdateRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,person_name"`
	LastName  *string `json:"last_name" validate:"omitempty,person_name"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
}

// WorkPeriodCreateRequest represents the request structure for adding a work
// period. Dates use the 2006-01-02 calendar form.
type WorkPeriodCreateRequest struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}

// WorkPeriodUpdateRequest represents the request structure for editing a work
// period.
type WorkPeriodUpdateRequest struct {
	Start *string `json:"start" validate:"omitempty,datetime=2006-01-02"`
	End   *string `json:"end" validate:"omitempty,datetime=2006-01-02"`
}
