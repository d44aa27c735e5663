package domain

import "github.com/supabase-community/supabase-go"

// SupabaseClient wraps the Supabase SDK client used for auth and PostgREST.
type SupabaseClient interface {
	Initialize() error
	ValidateToken(token string) (*SupabaseUser, error)

	DB() *supabase.Client
	// GetClientWithToken returns a client whose requests carry the user's
	// access token so row-level security applies.
	GetClientWithToken(token string) (*supabase.Client, error)
}
