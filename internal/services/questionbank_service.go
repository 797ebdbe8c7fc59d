package services

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
)

// QuestionBankService importación y consulta de bancos de preguntas versionados
type QuestionBankService struct {
	db     *storage.Database
	logger *zap.Logger
}

// NewQuestionBankService crea el servicio del banco de preguntas
func NewQuestionBankService(db *storage.Database, logger *zap.Logger) *QuestionBankService {
	return &QuestionBankService{
		db:     db,
		logger: logger,
	}
}

// BankView versión del banco con sus preguntas
type BankView struct {
	Version   *models.QuestionBankVersion `json:"version"`
	Questions []models.BankQuestion       `json:"questions"`
}

// ParseQuestionsCSV lee el formato tabular ord,text,is_required.
// Acepta encabezado opcional; las preguntas se regresan ordenadas por ord.
func ParseQuestionsCSV(r io.Reader) ([]models.BankQuestion, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Validation("malformed CSV: " + err.Error())
	}
	if len(records) == 0 {
		return nil, apperrors.Validation("question bank import is empty")
	}

	// Encabezado opcional
	if strings.EqualFold(strings.TrimSpace(records[0][0]), "ord") {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, apperrors.Validation("question bank import has no questions")
	}

	seen := make(map[int]bool, len(records))
	questions := make([]models.BankQuestion, 0, len(records))
	for i, record := range records {
		if len(record) != 3 {
			return nil, apperrors.Validation("row " + strconv.Itoa(i+1) + ": expected 3 columns ord,text,is_required")
		}

		ord, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil || ord < 1 {
			return nil, apperrors.Validation("row " + strconv.Itoa(i+1) + ": ord must be a positive integer")
		}
		if seen[ord] {
			return nil, apperrors.Validation("row " + strconv.Itoa(i+1) + ": duplicate ord " + strconv.Itoa(ord))
		}
		seen[ord] = true

		text := strings.TrimSpace(record[1])
		if text == "" {
			return nil, apperrors.Validation("row " + strconv.Itoa(i+1) + ": text is required")
		}

		required, err := strconv.ParseBool(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, apperrors.Validation("row " + strconv.Itoa(i+1) + ": is_required must be a boolean")
		}

		questions = append(questions, models.BankQuestion{
			Ord:        ord,
			Text:       text,
			IsRequired: required,
		})
	}

	sort.Slice(questions, func(a, b int) bool { return questions[a].Ord < questions[b].Ord })
	return questions, nil
}

// Import crea una versión nueva e inmutable del banco a partir del CSV.
// Si activate es verdadero la deja activa, desactivando la anterior del tipo.
func (s *QuestionBankService) Import(ctx context.Context, kind models.VacancyKind, src io.Reader, activate bool, actorID uuid.UUID, actorRole models.StaffRole) (*models.QuestionBankVersion, error) {
	if err := requireRole(actorRole, models.RoleRH); err != nil {
		return nil, err
	}
	if kind != models.VacancyAdministrativo && kind != models.VacancyOperativo {
		return nil, apperrors.ValidationField("kind", "unknown vacancy kind "+string(kind))
	}

	questions, err := ParseQuestionsCSV(src)
	if err != nil {
		return nil, err
	}

	var version *models.QuestionBankVersion
	err = s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		version, err = s.db.CreateBankVersionTx(ctx, tx, kind, questions, activate)
		return err
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.logger.Info("Question bank version imported",
		zap.String("kind", string(kind)),
		zap.Int("version", version.Version),
		zap.Int("questions", len(questions)),
		zap.Bool("active", activate))

	return version, nil
}

// ListVersions regresa las versiones del banco de un tipo de vacante
func (s *QuestionBankService) ListVersions(ctx context.Context, kind models.VacancyKind) ([]models.QuestionBankVersion, error) {
	versions, err := s.db.ListBankVersions(ctx, kind)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return versions, nil
}

// GetVersion regresa una versión con sus preguntas en orden
func (s *QuestionBankService) GetVersion(ctx context.Context, versionID uuid.UUID) (*BankView, error) {
	version, err := s.db.GetBankVersionByID(ctx, versionID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if version == nil {
		return nil, apperrors.NotFound("question bank version")
	}

	questions, err := s.db.GetBankQuestions(ctx, versionID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &BankView{Version: version, Questions: questions}, nil
}
