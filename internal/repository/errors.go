// Package repository defines error types that are reused across the
// data-access layer. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error text. ErrDuplicateUser in
// particular is how a lost uniqueness race on email/user_name
// surfaces: the pre-registration existence check cannot rule out a
// concurrent insert, so the unique constraints are the source of
// truth and their violation maps to this error.
package repository

import "errors"

// ErrDuplicateUser is returned when an insert violates the unique
// email or user_name constraint. Handlers should translate this into
// a conflict response.
var ErrDuplicateUser = errors.New("user already exists")
