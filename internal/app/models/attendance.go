package models

// AttendanceEntry defines a row in the 'attendance' table. At most one entry
// exists per (roll_no, subject); marking again overwrites the status.
type AttendanceEntry struct {
	ID      int64            `json:"id" db:"attendance_id"`
	RollNo  string           `json:"rollNo" db:"roll_no"`
	Subject string           `json:"subject" db:"subject"`
	Status  AttendanceStatus `json:"status" db:"status"`
}

// AttendanceReportRow pairs a student with their status for one subject.
type AttendanceReportRow struct {
	RollNo string           `json:"rollNo"`
	Name   string           `json:"name"`
	Status AttendanceStatus `json:"status"`
}

// AttendanceReport is the ordered cohort report for one subject, rows sorted
// by roll number ascending. NotMarked students count in the percentage
// denominator.
type AttendanceReport struct {
	Subject        string                `json:"subject"`
	Rows           []AttendanceReportRow `json:"rows"`
	PresentCount   int                   `json:"presentCount"`
	AbsentCount    int                   `json:"absentCount"`
	NotMarkedCount int                   `json:"notMarkedCount"`
	Total          int                   `json:"total"`
	Percentage     float64               `json:"percentage"`
}
