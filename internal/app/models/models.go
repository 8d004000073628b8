package models

// Role defines an account role
type Role string

const (
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// AttendanceStatus is the stored per-subject attendance state.
// StatusNotMarked is never stored; it is synthesized at read time for
// students without an attendance row for the subject.
type AttendanceStatus string

const (
	StatusPresent   AttendanceStatus = "Present"
	StatusAbsent    AttendanceStatus = "Absent"
	StatusNotMarked AttendanceStatus = "Not Marked"
)

// Storable reports whether the status may be written to the ledger.
func (s AttendanceStatus) Storable() bool {
	return s == StatusPresent || s == StatusAbsent
}

// ExamTypes is the fixed label set for marks entries.
var ExamTypes = []string{"Mid-Term", "End-Term", "Assignment", "Quiz", "Project"}

// ValidExamType reports whether examType belongs to the fixed label set.
func ValidExamType(examType string) bool {
	for _, t := range ExamTypes {
		if t == examType {
			return true
		}
	}
	return false
}
