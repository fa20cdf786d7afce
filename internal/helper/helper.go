package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsDuplicateSerial reports whether err is the unique violation on
// serial_codigo_mac, so the service can answer with a validation error
// instead of a bare 500.
func IsDuplicateSerial(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uidx_inventario_serial"
	}
	return false
}
