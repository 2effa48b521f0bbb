package models

// TokenResponse is returned after a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the body of every non-2xx API response.
//
// Code is a stable machine-readable identifier the remote client maps back
// to the controller's sentinel errors; Message is for humans.
type ErrorResponse struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

// UpdateResult reports whether a note update or delete found its target.
type UpdateResult struct {
	Found bool `json:"found"`
}

// BuildInfoResponse exposes build metadata over the API.
type BuildInfoResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
