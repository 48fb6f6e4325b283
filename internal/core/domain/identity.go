package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Identity is the caller decoded from a verified bearer token. It lives for
// one request only and is never persisted.
type Identity struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
