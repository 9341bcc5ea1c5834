package database

import "database/sql"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// toNullableArg converts a pointer to an interface{} suitable for SQL args.
// Returns nil if pointer is nil, otherwise returns the dereferenced value.
func toNullableArg[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// fromNullString returns nil for SQL NULL.
func fromNullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// requireAffected maps a zero-row update or delete to notFound.
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
