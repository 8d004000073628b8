package models

// MarksEntry defines a row in the 'marks' table. Many entries per
// (roll_no, subject) are allowed; entries are never merged.
type MarksEntry struct {
	ID       int64  `json:"id" db:"mark_id"`
	RollNo   string `json:"rollNo" db:"roll_no"`
	Subject  string `json:"subject" db:"subject"`
	Marks    int    `json:"marks" db:"marks"`
	MaxMarks int    `json:"maxMarks" db:"max_marks"`
	ExamType string `json:"examType" db:"exam_type"`
}

// Percentage returns the entry's score as a percentage. MaxMarks >= 1 is
// guaranteed by ledger validation. Marks above MaxMarks are permitted, so
// the result can exceed 100.
func (m MarksEntry) Percentage() float64 {
	return float64(m.Marks) * 100.0 / float64(m.MaxMarks)
}
