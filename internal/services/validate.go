package services

import (
	"regexp"
	"strings"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

// Folio y correo se validan en toda frontera pública de consulta
var (
	folioRegexp = regexp.MustCompile(`^BIN-\d{4}-\d{5}$`)
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateFolio verifica el formato BIN-YYYY-NNNNN
func ValidateFolio(folio string) error {
	if !folioRegexp.MatchString(folio) {
		return apperrors.ValidationField("folio", "folio must match BIN-YYYY-NNNNN")
	}
	return nil
}

// ValidateEmail verifica el formato del correo
func ValidateEmail(email string) error {
	if !emailRegexp.MatchString(strings.TrimSpace(email)) {
		return apperrors.ValidationField("email", "invalid email address")
	}
	return nil
}

// requireRole verifica el rol del actor antes de cualquier mutación
func requireRole(role models.StaffRole, want models.StaffRole) error {
	if role != want {
		return apperrors.Forbidden("operation requires role " + string(want))
	}
	return nil
}
