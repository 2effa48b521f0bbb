package models

// LoginRequest carries operator credentials for opening a session.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CurrentPatientRequest selects the current patient by PHN.
type CurrentPatientRequest struct {
	PHN int64 `json:"phn" validate:"required"`
}

// NoteRequest carries the text of a note to create or update.
type NoteRequest struct {
	Text string `json:"text"`
}
