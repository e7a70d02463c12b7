package usecase

import "errors"

// ErrNotOwner indicates the caller tried to mutate a post owned by another
// user. Handlers map it to 401.
var ErrNotOwner = errors.New("no matching video found in the user record")
