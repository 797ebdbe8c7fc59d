package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
)

func TestParseQuestionsCSV(t *testing.T) {
	csv := `ord,text,is_required
1,¿Cuénteme sobre su experiencia laboral?,true
3,¿Qué espera del puesto?,false
2,¿Por qué quiere trabajar con nosotros?,true
`

	questions, err := ParseQuestionsCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, questions, 3)

	// Ordenadas por ord sin importar el orden del archivo
	assert.Equal(t, 1, questions[0].Ord)
	assert.Equal(t, 2, questions[1].Ord)
	assert.Equal(t, 3, questions[2].Ord)

	assert.Equal(t, "¿Por qué quiere trabajar con nosotros?", questions[1].Text)
	assert.True(t, questions[0].IsRequired)
	assert.False(t, questions[2].IsRequired)
}

func TestParseQuestionsCSVWithoutHeader(t *testing.T) {
	csv := `1,Pregunta uno,true
2,Pregunta dos,false
`

	questions, err := ParseQuestionsCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParseQuestionsCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"empty input", ""},
		{"header only", "ord,text,is_required\n"},
		{"wrong column count", "1,solo dos columnas\n"},
		{"non numeric ord", "uno,Pregunta,true\n"},
		{"zero ord", "0,Pregunta,true\n"},
		{"negative ord", "-1,Pregunta,true\n"},
		{"duplicate ord", "1,Pregunta A,true\n1,Pregunta B,false\n"},
		{"empty text", "1,,true\n"},
		{"bad is_required", "1,Pregunta,quizas\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuestionsCSV(strings.NewReader(tt.csv))
			assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
		})
	}
}
