package domain

// Role is the authorization capability attached to a user.
// It is passed explicitly into core operations; the core performs its own
// checks rather than relying on transport-level interception.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleBanker   Role = "BANKER"
	RoleAdmin    Role = "ADMIN"
)

// CanApprove reports whether the role may act on other customers' accounts
// (listing and resolving pending transfers, deposits, freeze toggles).
func (r Role) CanApprove() bool {
	return r == RoleBanker || r == RoleAdmin
}

// User represents an authenticated user of the bank.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	AuditFields
}
