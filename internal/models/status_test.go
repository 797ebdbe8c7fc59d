package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{"revision to rh", StatusRevisionDeDocumentos, StatusEntrevistaConRH, true},
		{"rh to manager", StatusEntrevistaConRH, StatusEntrevistaConManager, true},
		{"manager to evaluando", StatusEntrevistaConManager, StatusEvaluando, true},
		{"evaluando to aceptado", StatusEvaluando, StatusAceptado, true},
		{"evaluando to rechazado", StatusEvaluando, StatusRechazado, true},

		{"revision cannot skip to manager", StatusRevisionDeDocumentos, StatusEntrevistaConManager, false},
		{"revision cannot skip to evaluando", StatusRevisionDeDocumentos, StatusEvaluando, false},
		{"rh cannot jump to decision", StatusEntrevistaConRH, StatusAceptado, false},
		{"no going backwards", StatusEntrevistaConManager, StatusEntrevistaConRH, false},
		{"aceptado is terminal", StatusAceptado, StatusRechazado, false},
		{"rechazado is terminal", StatusRechazado, StatusEvaluando, false},
		{"decision requires evaluando", StatusEntrevistaConManager, StatusAceptado, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusAceptado))
	assert.True(t, IsTerminal(StatusRechazado))

	for _, status := range PipelineOrder {
		assert.False(t, IsTerminal(status), string(status))
	}
}

func TestIsDecision(t *testing.T) {
	assert.True(t, IsDecision(StatusAceptado))
	assert.True(t, IsDecision(StatusRechazado))
	assert.False(t, IsDecision(StatusEvaluando))
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range PipelineOrder {
		assert.True(t, IsValidStatus(status))
	}
	assert.True(t, IsValidStatus(StatusAceptado))
	assert.True(t, IsValidStatus(StatusRechazado))
	assert.False(t, IsValidStatus(ApplicationStatus("Contratado")))
	assert.False(t, IsValidStatus(ApplicationStatus("")))
}
