package domain

// Caller is the verified identity and capability of the requester, supplied
// by the authentication collaborator. Core operations take it as an explicit
// parameter and perform their own ownership/role checks; nothing in the core
// depends on how the transport established it.
type Caller struct {
	UserID string
	Role   Role
}
