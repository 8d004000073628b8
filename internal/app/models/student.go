package models

// Student defines a student record in the 'students' table.
// CGPA is a cached derived field: it is written only by an explicit
// recomputation request, never inline by marks changes, so it may be stale
// until the next ComputeCGPA call.
type Student struct {
	RollNo string  `json:"rollNo" db:"roll_no"`
	Name   string  `json:"name" db:"name"`
	Email  string  `json:"email" db:"email"`
	Branch string  `json:"branch" db:"branch"`
	Year   int     `json:"year" db:"year"`
	Gender string  `json:"gender" db:"gender"`
	CGPA   float64 `json:"cgpa" db:"cgpa"`
}

// StudentUpdate carries a partial update of the mutable profile fields.
// Nil fields are left unchanged; RollNo itself is immutable.
type StudentUpdate struct {
	Name   *string
	Email  *string
	Branch *string
	Year   *int
	Gender *string
}

// StudentFilter selects directory rows. Query is a case-insensitive
// substring match over roll_no, name and email; Branch and Year are exact
// matches when set. The zero filter selects everything.
type StudentFilter struct {
	Query  string
	Branch string
	Year   int
}

// Empty reports whether the filter selects all students.
func (f StudentFilter) Empty() bool {
	return f.Query == "" && f.Branch == "" && f.Year == 0
}
