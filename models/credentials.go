package models

// Credentials maps a username to the stored digest of that user's password.
//
// A digest is either the lowercase hex encoding of a SHA-256 sum or a bcrypt
// hash. Credentials are loaded once at startup and never change afterwards.
type Credentials map[string]string

// Digest returns the stored digest for username and whether the user exists.
func (c Credentials) Digest(username string) (string, bool) {
	digest, ok := c[username]
	return digest, ok
}
