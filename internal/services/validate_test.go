package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

func TestValidateFolio(t *testing.T) {
	valid := []string{
		"BIN-2026-00001",
		"BIN-2027-99999",
	}
	for _, folio := range valid {
		assert.NoError(t, ValidateFolio(folio), folio)
	}

	invalid := []string{
		"",
		"BIN-2026-1",
		"BIN-26-00001",
		"bin-2026-00001",
		"BIN-2026-000001",
		"XYZ-2026-00001",
		" BIN-2026-00001",
	}
	for _, folio := range invalid {
		err := ValidateFolio(folio)
		assert.True(t, apperrors.Is(err, apperrors.CodeValidation), folio)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("candidato@example.com"))
	assert.NoError(t, ValidateEmail("maria.lopez+vacante@empresa.mx"))

	invalid := []string{"", "sin-arroba", "a@b", "a@b.", "@example.com"}
	for _, email := range invalid {
		err := ValidateEmail(email)
		assert.True(t, apperrors.Is(err, apperrors.CodeValidation), email)
	}
}

func TestRequireRole(t *testing.T) {
	assert.NoError(t, requireRole(models.RoleRH, models.RoleRH))

	err := requireRole(models.RoleManager, models.RoleRH)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}
