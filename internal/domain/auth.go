package domain

// AuthService resolves bearer tokens to authenticated users.
type AuthService interface {
	ValidateToken(token string) (*SupabaseUser, error)
}
