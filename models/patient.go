package models

// Patient is the demographic part of a patient record.
//
// PHN (public health number) is the primary key and the storage key for
// the patient's notes. The remaining attributes are opaque strings; only
// their presence matters to the stores.
type Patient struct {
	// PHN is the unique public health number of the patient.
	PHN int64 `json:"phn" validate:"required,gt=0"`

	// Name is the full name of the patient.
	Name string `json:"name" validate:"required"`

	// BirthDate is the date of birth exactly as entered by staff.
	BirthDate string `json:"birth_date"`

	// Phone is the contact phone number.
	Phone string `json:"phone"`

	// Email is the contact email address.
	Email string `json:"email"`

	// Address is the postal address.
	Address string `json:"address"`
}

// Equal reports whether p and other carry identical values in every field.
func (p Patient) Equal(other Patient) bool {
	return p == other
}

// TableName returns the name of the database table
// associated with the Patient model.
func (p Patient) TableName() string {
	return "patients"
}
