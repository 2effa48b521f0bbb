package models

import "time"

// Note is a free-text clinical note attached to one patient.
//
// Code is assigned by the note store and is unique within the notes of a
// single patient. Timestamp is set by the store on creation and refreshed
// on every update.
type Note struct {
	Code      int64     `json:"code"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Equal compares notes by code and text. Timestamp is not part of a
// note's identity.
func (n Note) Equal(other Note) bool {
	return n.Code == other.Code && n.Text == other.Text
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
