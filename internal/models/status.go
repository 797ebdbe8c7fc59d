package models

// ApplicationStatus estado de la solicitud dentro del pipeline
type ApplicationStatus string

// Pipeline lineal, sin saltos
const (
	StatusRevisionDeDocumentos ApplicationStatus = "RevisionDeDocumentos"
	StatusEntrevistaConRH      ApplicationStatus = "EntrevistaConRH"
	StatusEntrevistaConManager ApplicationStatus = "EntrevistaConManager"
	StatusEvaluando            ApplicationStatus = "Evaluando"
	StatusAceptado             ApplicationStatus = "Aceptado"
	StatusRechazado            ApplicationStatus = "Rechazado"
)

// PipelineOrder orden canónico de los estados no terminales
var PipelineOrder = []ApplicationStatus{
	StatusRevisionDeDocumentos,
	StatusEntrevistaConRH,
	StatusEntrevistaConManager,
	StatusEvaluando,
}

// IsValidStatus verifica que el valor pertenezca al catálogo
func IsValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusRevisionDeDocumentos, StatusEntrevistaConRH, StatusEntrevistaConManager,
		StatusEvaluando, StatusAceptado, StatusRechazado:
		return true
	default:
		return false
	}
}

// IsTerminal indica si el estado es final e irreversible
func IsTerminal(s ApplicationStatus) bool {
	return s == StatusAceptado || s == StatusRechazado
}

// IsDecision indica si el estado es una decisión válida de finalize
func IsDecision(s ApplicationStatus) bool {
	return s == StatusAceptado || s == StatusRechazado
}

// CanTransition verifica que el salto de estado sea legal en el pipeline
func CanTransition(from, to ApplicationStatus) bool {
	switch from {
	case StatusRevisionDeDocumentos:
		return to == StatusEntrevistaConRH
	case StatusEntrevistaConRH:
		return to == StatusEntrevistaConManager
	case StatusEntrevistaConManager:
		return to == StatusEvaluando
	case StatusEvaluando:
		return to == StatusAceptado || to == StatusRechazado
	default:
		// Aceptado y Rechazado son terminales
		return false
	}
}
