package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/selim/srms/internal/app/auth"
	"github.com/selim/srms/internal/app/models"
)

// AggregationService derives summary metrics from ledger rows: CGPA from
// marks entries, attendance statistics from attendance entries.
type AggregationService struct {
	students   StudentStore
	marks      MarksStore
	attendance AttendanceStore
	logger     zerolog.Logger
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(students StudentStore, marks MarksStore, attendance AttendanceStore, logger zerolog.Logger) *AggregationService {
	return &AggregationService{
		students:   students,
		marks:      marks,
		attendance: attendance,
		logger:     logger,
	}
}

// CGPAFromEntries computes the CGPA over a set of marks entries: the
// unweighted mean of per-entry percentages, divided by 10. An entry out of
// 10 counts the same as one out of 100; that is deliberate, not a bug. Zero
// entries yield exactly 0. The result is not clamped, so marks above
// max_marks can push it past 10.
func CGPAFromEntries(entries []models.MarksEntry) float64 {
	if len(entries) == 0 {
		return 0.0
	}

	total := 0.0
	for _, e := range entries {
		total += e.Percentage()
	}
	return total / float64(len(entries)) / 10.0
}

// ComputeCGPA recomputes a student's CGPA from their marks entries and
// writes it back to the directory cache. This is the only mutation path for
// the cgpa column; marks changes never update it implicitly, so the cached
// value is stale until the next explicit recomputation.
func (s *AggregationService) ComputeCGPA(ctx context.Context, session models.Session, rollNo string) (float64, error) {
	if err := appauth.RequireTeacher(session); err != nil {
		return 0, err
	}

	entries, err := s.marks.ListByRoll(ctx, rollNo)
	if err != nil {
		return 0, err
	}

	cgpa := CGPAFromEntries(entries)
	if err := s.students.SetCGPA(ctx, rollNo, cgpa); err != nil {
		return 0, err
	}

	s.logger.Info().Str("rollNo", rollNo).Float64("cgpa", cgpa).Int("entries", len(entries)).Msg("CGPA recomputed")
	return cgpa, nil
}

// BuildAttendanceReport assembles the per-subject report for an ordered
// cohort. Students without a stored status get StatusNotMarked, and they
// count in the percentage denominator: unmarked students depress the
// percentage rather than being excluded.
func BuildAttendanceReport(subject string, cohort []models.Student, statuses map[string]models.AttendanceStatus) *models.AttendanceReport {
	report := &models.AttendanceReport{
		Subject: subject,
		Rows:    make([]models.AttendanceReportRow, 0, len(cohort)),
	}

	for _, student := range cohort {
		status, ok := statuses[student.RollNo]
		if !ok {
			status = models.StatusNotMarked
		}

		switch status {
		case models.StatusPresent:
			report.PresentCount++
		case models.StatusAbsent:
			report.AbsentCount++
		default:
			report.NotMarkedCount++
		}

		report.Rows = append(report.Rows, models.AttendanceReportRow{
			RollNo: student.RollNo,
			Name:   student.Name,
			Status: status,
		})
	}

	report.Total = report.PresentCount + report.AbsentCount + report.NotMarkedCount
	if report.Total > 0 {
		report.Percentage = float64(report.PresentCount) * 100.0 / float64(report.Total)
	}

	return report
}

// AttendanceReport computes attendance statistics for a subject over a
// cohort selected by the filter (branch/year or everything). Rows come back
// roll number ascending. A single-student report is just a cohort of one.
func (s *AggregationService) AttendanceReport(ctx context.Context, session models.Session, subject string, cohort models.StudentFilter) (*models.AttendanceReport, error) {
	if err := appauth.RequireTeacher(session); err != nil {
		return nil, err
	}

	students, err := s.students.Find(ctx, cohort)
	if err != nil {
		return nil, err
	}

	rollNos := make([]string, len(students))
	for i, student := range students {
		rollNos[i] = student.RollNo
	}

	statuses, err := s.attendance.StatusesForSubject(ctx, subject, rollNos)
	if err != nil {
		return nil, err
	}

	return BuildAttendanceReport(subject, students, statuses), nil
}
