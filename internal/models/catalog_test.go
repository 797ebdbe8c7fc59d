package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationCriteriaCatalog(t *testing.T) {
	require.Len(t, EvaluationCriteria, CriterionCount)

	seenIDs := make(map[CriterionID]bool)
	seenOrders := make(map[int]bool)
	perGroup := make(map[CriterionGroup]int)

	for _, crit := range EvaluationCriteria {
		assert.False(t, seenIDs[crit.ID], "duplicate criterion %s", crit.ID)
		seenIDs[crit.ID] = true

		assert.False(t, seenOrders[crit.Order], "duplicate order %d", crit.Order)
		seenOrders[crit.Order] = true

		assert.GreaterOrEqual(t, crit.Order, 1)
		assert.LessOrEqual(t, crit.Order, CriterionCount)

		perGroup[crit.Group]++
	}

	assert.Equal(t, 8, perGroup[GroupFormacionYExperiencia])
	assert.Equal(t, 8, perGroup[GroupAreaSocial])
}

func TestIsValidCriterion(t *testing.T) {
	for _, crit := range EvaluationCriteria {
		assert.True(t, IsValidCriterion(crit.ID))
	}
	assert.False(t, IsValidCriterion(CriterionID("PUNTUALIDAD_EXTREMA")))
	assert.False(t, IsValidCriterion(CriterionID("")))
}

func TestIsValidDocumentType(t *testing.T) {
	for _, docType := range DocumentTypes {
		assert.True(t, IsValidDocumentType(docType))
	}
	assert.False(t, IsValidDocumentType(DocumentType("PASAPORTE")))
	assert.False(t, IsValidDocumentType(DocumentType("")))
}

func TestScoreBounds(t *testing.T) {
	// El total de la cédula vive en [16, 80] por construcción
	assert.Equal(t, 16, MinCriterionScore*CriterionCount)
	assert.Equal(t, 80, MaxCriterionScore*CriterionCount)
}

func TestRHInterviewFinished(t *testing.T) {
	var nilInterview *RHInterview
	assert.False(t, nilInterview.Finished())

	interview := &RHInterview{}
	assert.False(t, interview.Finished())

	now := time.Now()
	interview.FinishedAt = &now
	assert.True(t, interview.Finished())
}
