package models

// DocumentType catálogo fijo de documentos
type DocumentType string

const (
	DocSolicitudEmpleo      DocumentType = "SOLICITUD_EMPLEO"
	DocCV                   DocumentType = "CV"
	DocActaNacimiento       DocumentType = "ACTA_NACIMIENTO"
	DocTituloOCertificado   DocumentType = "TITULO_O_CERTIFICADO"
	DocCedula               DocumentType = "CEDULA"
	DocLicenciaTipoC        DocumentType = "LICENCIA_TIPO_C"
	DocINE                  DocumentType = "INE"
	DocCURP                 DocumentType = "CURP"
	DocRFC                  DocumentType = "RFC"
	DocNSS                  DocumentType = "NSS"
	DocComprobanteDomicilio DocumentType = "COMPROBANTE_DOMICILIO"
	DocCertificadoMedico    DocumentType = "CERTIFICADO_MEDICO"
	DocCartasRecomendacion  DocumentType = "CARTAS_RECOMENDACION"
)

// DocumentTypes catálogo completo en orden de despliegue
var DocumentTypes = []DocumentType{
	DocSolicitudEmpleo,
	DocCV,
	DocActaNacimiento,
	DocTituloOCertificado,
	DocCedula,
	DocLicenciaTipoC,
	DocINE,
	DocCURP,
	DocRFC,
	DocNSS,
	DocComprobanteDomicilio,
	DocCertificadoMedico,
	DocCartasRecomendacion,
}

// IsValidDocumentType verifica pertenencia al catálogo
func IsValidDocumentType(t DocumentType) bool {
	for _, dt := range DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// DocumentPhase fase en la que se exige el documento
type DocumentPhase string

const (
	// PhaseNecesario requerido antes o durante la recepción
	PhaseNecesario DocumentPhase = "NECESARIO"
	// PhaseDespues requerido solo después de la aceptación
	PhaseDespues DocumentPhase = "DESPUES"
)

// CriterionGroup grupo de criterios de evaluación
type CriterionGroup string

const (
	GroupFormacionYExperiencia CriterionGroup = "FORMACION_Y_EXPERIENCIA"
	GroupAreaSocial            CriterionGroup = "AREA_SOCIAL"
)

// CriterionID identificador de un criterio fijo de evaluación
type CriterionID string

// Criterios del grupo FORMACION_Y_EXPERIENCIA
const (
	CritEscolaridad          CriterionID = "ESCOLARIDAD"
	CritExperienciaLaboral   CriterionID = "EXPERIENCIA_LABORAL"
	CritConocimientosTecnico CriterionID = "CONOCIMIENTOS_TECNICOS"
	CritCapacitacion         CriterionID = "CAPACITACION"
	CritEstabilidadLaboral   CriterionID = "ESTABILIDAD_LABORAL"
	CritDisponibilidad       CriterionID = "DISPONIBILIDAD"
	CritPresentacion         CriterionID = "PRESENTACION"
	CritComunicacion         CriterionID = "COMUNICACION"
)

// Criterios del grupo AREA_SOCIAL
const (
	CritEntornoFamiliar       CriterionID = "ENTORNO_FAMILIAR"
	CritSituacionEconomica    CriterionID = "SITUACION_ECONOMICA"
	CritVivienda              CriterionID = "VIVIENDA"
	CritSalud                 CriterionID = "SALUD"
	CritReferenciasPersonales CriterionID = "REFERENCIAS_PERSONALES"
	CritActitud               CriterionID = "ACTITUD"
	CritValores               CriterionID = "VALORES"
	CritAdaptabilidad         CriterionID = "ADAPTABILIDAD"
)

// Criterion criterio fijo con grupo y orden de despliegue
type Criterion struct {
	ID    CriterionID    `json:"id"`
	Group CriterionGroup `json:"group"`
	Order int            `json:"order"`
}

// EvaluationCriteria los 16 criterios fijos, 8 por grupo, con orden de despliegue
var EvaluationCriteria = []Criterion{
	{CritEscolaridad, GroupFormacionYExperiencia, 1},
	{CritExperienciaLaboral, GroupFormacionYExperiencia, 2},
	{CritConocimientosTecnico, GroupFormacionYExperiencia, 3},
	{CritCapacitacion, GroupFormacionYExperiencia, 4},
	{CritEstabilidadLaboral, GroupFormacionYExperiencia, 5},
	{CritDisponibilidad, GroupFormacionYExperiencia, 6},
	{CritPresentacion, GroupFormacionYExperiencia, 7},
	{CritComunicacion, GroupFormacionYExperiencia, 8},
	{CritEntornoFamiliar, GroupAreaSocial, 9},
	{CritSituacionEconomica, GroupAreaSocial, 10},
	{CritVivienda, GroupAreaSocial, 11},
	{CritSalud, GroupAreaSocial, 12},
	{CritReferenciasPersonales, GroupAreaSocial, 13},
	{CritActitud, GroupAreaSocial, 14},
	{CritValores, GroupAreaSocial, 15},
	{CritAdaptabilidad, GroupAreaSocial, 16},
}

// CriterionCount total de criterios de la cédula de evaluación
const CriterionCount = 16

// IsValidCriterion verifica pertenencia al catálogo de criterios
func IsValidCriterion(id CriterionID) bool {
	for _, c := range EvaluationCriteria {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Score bounds
const (
	MinCriterionScore = 1
	MaxCriterionScore = 5
	MinManagerScore   = 0
	MaxManagerScore   = 100
)
