package models

// Account defines an account record in the 'users' table.
// IdentityID equals the student's roll number when Role is RoleStudent; for
// teachers it is an opaque stable token derived from the login name.
type Account struct {
	LoginID      string `json:"loginId" db:"login_id"`
	IdentityID   string `json:"identityId" db:"user_id"`
	PasswordHash string `json:"-" db:"password"`
	Role         Role   `json:"role" db:"role"`
	Email        string `json:"email" db:"email"`
}
