package usercache

import "time"

// User is the account record exchanged with the external user store and
// snapshotted into the cache. The email is the identity key; a user holds
// zero or one live refresh token, replaced by overwrite on login and
// rotation.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Avatar       string    `json:"avatar,omitempty"`
	Confirmed    bool      `json:"confirmed"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Clone returns a deep copy. The cache hands out copies so callers cannot
// mutate a record that is shared with concurrent resolvers.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
