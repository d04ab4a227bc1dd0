package models

// ===== IMPORT DTOs =====

// RowRejection describes one spreadsheet row that failed validation during a
// bulk import. Row numbers are 1-based as shown in spreadsheet software.
type RowRejection struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport is the structured outcome of one bulk import request. It
// replaces the original system's flash-message queue: the caller decides how
// to surface it.
type ImportReport struct {
	Imported  []*Teacher     `json:"imported"`
	Rejected  []RowRejection `json:"rejected"`
	Processed int            `json:"processed"`
	Skipped   int            `json:"skipped"`
}
