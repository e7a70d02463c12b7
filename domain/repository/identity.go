package repository

import "context"

// ITokenVerifier validates an opaque bearer token issued by the external
// identity provider and returns the subject it was issued to.
type ITokenVerifier interface {
	Verify(ctx context.Context, token string) (subject string, err error)
}

// IIdentityProvider is the administrative surface of the external identity
// provider. Failures are surfaced to the caller, never retried.
type IIdentityProvider interface {
	DeleteUser(ctx context.Context, username string) error
}

// ITokenCache caches subject to local-user-id resolutions so the auth
// middleware can skip a document lookup on hot paths. Implementations must
// tolerate a nil/unavailable backend by returning a miss.
type ITokenCache interface {
	GetUserID(ctx context.Context, subject string) (string, bool)
	SetUserID(ctx context.Context, subject, userID string)
	Invalidate(ctx context.Context, subject string)
}
