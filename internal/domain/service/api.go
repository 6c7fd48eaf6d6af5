package service

import (
	"context"

	"mindtrack/internal/domain/entity"
)

// IdentityAPI is the remote identity service a client session drives.
// A 401 from any call is reported as errs.ErrUnauthenticated.
type IdentityAPI interface {
	// VerifySession revalidates the stored bearer cookie
	VerifySession(ctx context.Context) (*entity.Identity, error)

	// Login exchanges credentials for a session cookie
	Login(ctx context.Context, creds entity.Credentials) (*entity.Identity, error)

	// Logout invalidates the session on the server
	Logout(ctx context.Context) error

	// UpdateIdentity applies a profile patch and returns the new identity
	UpdateIdentity(ctx context.Context, patch entity.IdentityPatch) (*entity.Identity, error)
}

// RecordsAPI is the remote data service feeding the report engines
type RecordsAPI interface {
	FetchCatalog(ctx context.Context) (*entity.Catalog, error)
	FetchHabitRecords(ctx context.Context, rng entity.DateRange) ([]entity.HabitRecord, error)
	FetchMoodRecords(ctx context.Context, rng entity.DateRange) ([]entity.MoodRecord, error)
}
