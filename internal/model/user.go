package model

import "time"

// User is a row in the `users` table. Passwords are stored as a salted
// PBKDF2-SHA256 hash alongside the per-user salt; the plain password never
// leaves the auth service.
//
// Fields:
//  ID           – primary key identifier.
//  FullName     – display name.
//  Email        – unique email address, stored lower case.
//  PasswordHash – 32-byte PBKDF2 derived key.
//  PasswordSalt – 16-byte random salt.
//  Role         – ADMIN, AGENT or GUEST.
type User struct {
	ID           uint64    // users.id
	FullName     string    // users.full_name
	Email        string    // users.email
	PasswordHash []byte    // users.password_hash
	PasswordSalt []byte    // users.password_salt
	Role         Role      // users.role
	CreatedAt    time.Time // users.created_at
}

// UserSession is a row in the `user_sessions` table. The token is an opaque
// hex string handed to the client as a bearer credential. A session validates
// only while IsActive is set and ExpiresAtUtc is in the future; logout flips
// IsActive off and the row is kept for audit.
type UserSession struct {
	ID           uint64    // user_sessions.id
	UserID       uint64    // user_sessions.user_id
	Token        string    // user_sessions.token (unique)
	CreatedAtUtc time.Time // user_sessions.created_at_utc
	ExpiresAtUtc time.Time // user_sessions.expires_at_utc
	IsActive     bool      // user_sessions.is_active
}
