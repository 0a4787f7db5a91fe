package domain

// Role names the authorization level carried in issued tokens.
type Role string

const (
	RoleAdmin Role = "admin"
)

// User is a back-office operator account.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"` // unique
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	Timestamps
}
