package domain

// Identity is the set of claims decoded from a verified access token.
type Identity struct {
	UserID   string
	Username string
	Role     Role
}
