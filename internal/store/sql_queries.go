package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-clinic/models"
)

// builder is the squirrel statement builder all queries start from.
type builder = sq.StatementBuilderType

var (
	patientColumns = []string{"phn", "name", "birth_date", "phone", "email", "address"}
	noteColumns    = []string{"code", "text", "created_at"}
)

func buildSelectPatientsQuery(b builder) (string, []any, error) {
	return b.Select(patientColumns...).
		From(models.Patient{}.TableName()).
		OrderBy("phn").
		ToSql()
}

func buildDeletePatientsQuery(b builder) (string, []any, error) {
	return b.Delete(models.Patient{}.TableName()).ToSql()
}

// buildInsertPatientsQuery builds one multi-row INSERT. patients must not
// be empty.
func buildInsertPatientsQuery(b builder, patients []models.Patient) (string, []any, error) {
	insert := b.Insert(models.Patient{}.TableName()).Columns(patientColumns...)
	for _, p := range patients {
		insert = insert.Values(p.PHN, p.Name, p.BirthDate, p.Phone, p.Email, p.Address)
	}

	return insert.ToSql()
}

func buildSelectNotesQuery(b builder, phn int64) (string, []any, error) {
	return b.Select(noteColumns...).
		From(models.Note{}.TableName()).
		Where(sq.Eq{"phn": phn}).
		OrderBy("code").
		ToSql()
}

func buildDeleteNotesQuery(b builder, phn int64) (string, []any, error) {
	return b.Delete(models.Note{}.TableName()).
		Where(sq.Eq{"phn": phn}).
		ToSql()
}

// buildInsertNotesQuery builds one multi-row INSERT. notes must not be
// empty.
func buildInsertNotesQuery(b builder, phn int64, notes []models.Note) (string, []any, error) {
	insert := b.Insert(models.Note{}.TableName()).Columns(append([]string{"phn"}, noteColumns...)...)
	for _, n := range notes {
		insert = insert.Values(phn, n.Code, n.Text, n.Timestamp)
	}

	return insert.ToSql()
}
