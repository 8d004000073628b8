package models

// Session is the resolved identity of a verified login. It exists only
// between login and logout and is never persisted. RollNo is set only for
// student sessions.
type Session struct {
	Token   string `json:"token"`
	LoginID string `json:"loginId"`
	Role    Role   `json:"role"`
	RollNo  string `json:"rollNo,omitempty"`
}

// IsTeacher reports whether the session holds the teacher role.
func (s Session) IsTeacher() bool {
	return s.Role == RoleTeacher
}
