package services

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
)

func newDocumentService(t *testing.T) (*DocumentService, sqlmock.Sqlmock, *storage.FileStore, *storage.RedisClient) {
	t.Helper()

	db, mock := newMockDB(t)
	fs, err := storage.NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	rc := storage.NewRedisClientFromClient(client, zap.NewNop())

	return NewDocumentService(db, rc, fs, 30*time.Minute, zap.NewNop()), mock, fs, rc
}

func TestFinalizeUploadVersionConflictKeepsCommittedBytes(t *testing.T) {
	svc, mock, fs, rc := newDocumentService(t)
	ctx := context.Background()
	appID := uuid.New()

	// Otra sesión ya confirmó la versión 1 de este documento
	committedPath, _, err := fs.Write(appID, string(models.DocNSS), 1, strings.NewReader("primer archivo"))
	require.NoError(t, err)

	uploadID := uuid.NewString()
	session := &storage.UploadSession{
		UploadID:      uploadID,
		ApplicationID: appID,
		Folio:         "BIN-2026-00001",
		DocType:       models.DocNSS,
		Version:       1,
		FileName:      "nss.pdf",
		MimeType:      "application/pdf",
		CreatedAt:     time.Now(),
	}
	require.NoError(t, rc.SaveUploadSession(ctx, session, 30*time.Minute))
	_, err = fs.WritePending(uploadID, strings.NewReader("segundo archivo"))
	require.NoError(t, err)

	// Primer intento: la versión de la sesión ya está ocupada
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO application_documents`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	// Recálculo de versión bajo el candado de la solicitud
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs(appID).
		WillReturnRows(applicationRows(appID, "BIN-2026-00001", models.StatusAceptado))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) \+ 1`).
		WithArgs(appID, string(models.DocNSS)).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(2))
	mock.ExpectCommit()

	// Segundo intento con la versión recalculada
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO application_documents`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	doc, err := svc.FinalizeUpload(ctx, uploadID)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Version)
	assert.Equal(t, fs.DocPath(appID, string(models.DocNSS), 2), doc.FilePath)

	// La versión confirmada por la otra sesión queda intacta
	data, err := os.ReadFile(committedPath)
	require.NoError(t, err)
	assert.Equal(t, "primer archivo", string(data))

	data, err = os.ReadFile(doc.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "segundo archivo", string(data))

	// Los bytes pendientes se consumieron al promover
	_, err = fs.StatPending(uploadID)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalizeUploadWithoutBytes(t *testing.T) {
	svc, _, _, rc := newDocumentService(t)
	ctx := context.Background()

	uploadID := uuid.NewString()
	session := &storage.UploadSession{
		UploadID:      uploadID,
		ApplicationID: uuid.New(),
		Folio:         "BIN-2026-00002",
		DocType:       models.DocCURP,
		Version:       1,
		FileName:      "curp.pdf",
		CreatedAt:     time.Now(),
	}
	require.NoError(t, rc.SaveUploadSession(ctx, session, 30*time.Minute))

	_, err := svc.FinalizeUpload(ctx, uploadID)
	assert.True(t, apperrors.Is(err, apperrors.CodeUploadNotAllowed))
}
