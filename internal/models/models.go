package models

import (
	"time"

	"github.com/google/uuid"
)

// Candidate candidato identificado por correo (único)
type Candidate struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// VacancyKind tipo de vacante
type VacancyKind string

const (
	VacancyAdministrativo VacancyKind = "ADMINISTRATIVO"
	VacancyOperativo      VacancyKind = "OPERATIVO"
)

// Vacancy puesto publicado por RH
type Vacancy struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Title     string      `json:"title" db:"title"`
	Kind      VacancyKind `json:"kind" db:"kind"`
	ManagerID uuid.UUID   `json:"manager_id" db:"manager_id"`
	IsActive  bool        `json:"is_active" db:"is_active"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// RequiredDocumentSpec documento requerido por la vacante en una fase
type RequiredDocumentSpec struct {
	VacancyID uuid.UUID     `json:"vacancy_id" db:"vacancy_id"`
	DocType   DocumentType  `json:"doc_type" db:"doc_type"`
	Phase     DocumentPhase `json:"phase" db:"phase"`
}

// Application solicitud de empleo, entidad central del pipeline
type Application struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	Folio       string            `json:"folio" db:"folio"`
	FolioYear   int               `json:"-" db:"folio_year"`
	FolioSeq    int               `json:"-" db:"folio_seq"`
	CandidateID uuid.UUID         `json:"candidate_id" db:"candidate_id"`
	VacancyID   uuid.UUID         `json:"vacancy_id" db:"vacancy_id"`
	Status      ApplicationStatus `json:"status" db:"status"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`

	// Citas de entrevista, se agendan por separado
	RHInterviewAt     *time.Time `json:"rh_interview_at,omitempty" db:"rh_interview_at"`
	RHInterviewPlace  *string    `json:"rh_interview_place,omitempty" db:"rh_interview_place"`
	MgrInterviewAt    *time.Time `json:"manager_interview_at,omitempty" db:"manager_interview_at"`
	MgrInterviewPlace *string    `json:"manager_interview_place,omitempty" db:"manager_interview_place"`
}

// ApplicationDocument versión de un documento entregado
type ApplicationDocument struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	ApplicationID uuid.UUID     `json:"application_id" db:"application_id"`
	DocType       DocumentType  `json:"doc_type" db:"doc_type"`
	Phase         DocumentPhase `json:"phase" db:"phase"`
	Version       int           `json:"version" db:"version"`
	FileName      string        `json:"file_name" db:"file_name"`
	FilePath      string        `json:"file_path" db:"file_path"`
	MimeType      string        `json:"mime_type" db:"mime_type"`
	FileSize      int64         `json:"file_size" db:"file_size"`
	UploadedAt    time.Time     `json:"uploaded_at" db:"uploaded_at"`
}

// QuestionBankVersion versión inmutable del banco de preguntas por tipo de vacante
type QuestionBankVersion struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Kind      VacancyKind `json:"kind" db:"kind"`
	Version   int         `json:"version" db:"version"`
	IsActive  bool        `json:"is_active" db:"is_active"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// BankQuestion pregunta ordenada dentro de una versión del banco
type BankQuestion struct {
	ID         uuid.UUID `json:"id" db:"id"`
	VersionID  uuid.UUID `json:"version_id" db:"version_id"`
	Ord        int       `json:"ord" db:"ord"`
	Text       string    `json:"text" db:"text"`
	IsRequired bool      `json:"is_required" db:"is_required"`
}

// RHInterview entrevista con RH, congela la versión del banco al iniciar
type RHInterview struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	ApplicationID uuid.UUID  `json:"application_id" db:"application_id"`
	BankVersionID uuid.UUID  `json:"bank_version_id" db:"bank_version_id"`
	StartedAt     time.Time  `json:"started_at" db:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty" db:"finished_at"`
}

// Finished indica si la entrevista ya fue cerrada (solo lectura)
func (i *RHInterview) Finished() bool {
	return i != nil && i.FinishedAt != nil
}

// InterviewAnswer respuesta a una pregunta del banco congelado
type InterviewAnswer struct {
	InterviewID uuid.UUID `json:"interview_id" db:"interview_id"`
	QuestionID  uuid.UUID `json:"question_id" db:"question_id"`
	Answer      string    `json:"answer" db:"answer"`
}

// ExtraQuestion pregunta libre agregada durante la entrevista
type ExtraQuestion struct {
	ID          uuid.UUID `json:"id" db:"id"`
	InterviewID uuid.UUID `json:"interview_id" db:"interview_id"`
	Ord         int       `json:"ord" db:"ord"`
	Question    string    `json:"question" db:"question"`
	Answer      string    `json:"answer" db:"answer"`
}

// ManagerInterview resultado de la entrevista con el manager
type ManagerInterview struct {
	ApplicationID uuid.UUID `json:"application_id" db:"application_id"`
	Score         int       `json:"score" db:"score"`
	Notes         string    `json:"notes" db:"notes"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// EvaluationScore calificación 1-5 de un criterio fijo
type EvaluationScore struct {
	ApplicationID uuid.UUID   `json:"application_id" db:"application_id"`
	Criterion     CriterionID `json:"criterion" db:"criterion"`
	Score         int         `json:"score" db:"score"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// EvaluationSummary resumen final de la evaluación
type EvaluationSummary struct {
	ApplicationID        uuid.UUID `json:"application_id" db:"application_id"`
	FactorsFor           string    `json:"factors_for" db:"factors_for"`
	FactorsAgainst       string    `json:"factors_against" db:"factors_against"`
	Conclusion           string    `json:"conclusion" db:"conclusion"`
	ReferenciasLaborales *string   `json:"references_laborales,omitempty" db:"references_laborales"`
	Total                *int      `json:"total,omitempty" db:"total"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// StaffRole rol del personal interno
type StaffRole string

const (
	RoleRH      StaffRole = "RH"
	RoleManager StaffRole = "MANAGER"
)

// Staff usuario interno (solo lectura desde este núcleo)
type Staff struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	Role         StaffRole `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
}

// AuditLogEntry registro inmutable de cada cambio de estado
type AuditLogEntry struct {
	ID            uuid.UUID          `json:"id" db:"id"`
	ApplicationID uuid.UUID          `json:"application_id" db:"application_id"`
	Action        string             `json:"action" db:"action"`
	FromStatus    *ApplicationStatus `json:"from_status,omitempty" db:"from_status"`
	ToStatus      ApplicationStatus  `json:"to_status" db:"to_status"`
	ActorID       *uuid.UUID         `json:"actor_id,omitempty" db:"actor_id"`
	Note          string             `json:"note" db:"note"`
	CreatedAt     time.Time          `json:"created_at" db:"created_at"`
}

// Audit actions
const (
	ActionApplicationCreate = "APPLICATION_CREATE"
	ActionScheduleRH        = "SCHEDULE_RH_INTERVIEW"
	ActionScheduleManager   = "SCHEDULE_MANAGER_INTERVIEW"
	ActionStartEvaluation   = "START_EVALUATION"
	ActionFinalize          = "FINALIZE"
)
