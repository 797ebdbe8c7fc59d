package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStore almacén de bytes de documentos en disco local.
// Los documentos de recepción se escriben directo en el área confirmada;
// las subidas DESPUES pasan primero por pending/ y se mueven al finalizar.
type FileStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewFileStore prepara los directorios del almacén
func NewFileStore(baseDir string, logger *zap.Logger) (*FileStore, error) {
	for _, dir := range []string{baseDir, filepath.Join(baseDir, "pending"), filepath.Join(baseDir, "docs")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
		}
	}

	return &FileStore{baseDir: baseDir, logger: logger}, nil
}

// DocPath ruta confirmada de una versión de documento
func (f *FileStore) DocPath(applicationID uuid.UUID, docType string, version int) string {
	return filepath.Join(f.baseDir, "docs", applicationID.String(), fmt.Sprintf("%s_v%d", docType, version))
}

// PendingPath ruta temporal donde el cliente escribe los bytes de una sesión
func (f *FileStore) PendingPath(uploadID string) string {
	return filepath.Join(f.baseDir, "pending", uploadID)
}

// Write escribe los bytes en la ruta confirmada de la versión
func (f *FileStore) Write(applicationID uuid.UUID, docType string, version int, src io.Reader) (string, int64, error) {
	path := f.DocPath(applicationID, docType, version)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", 0, fmt.Errorf("create doc dir: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create doc file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return "", 0, fmt.Errorf("write doc file: %w", err)
	}
	return path, size, nil
}

// WritePending escribe los bytes de una sesión en el área temporal
func (f *FileStore) WritePending(uploadID string, src io.Reader) (int64, error) {
	dst, err := os.Create(f.PendingPath(uploadID))
	if err != nil {
		return 0, fmt.Errorf("create pending file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return 0, fmt.Errorf("write pending file: %w", err)
	}
	return size, nil
}

// StatPending verifica que los bytes de la sesión ya fueron escritos
func (f *FileStore) StatPending(uploadID string) (int64, error) {
	info, err := os.Stat(f.PendingPath(uploadID))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Promote mueve los bytes de pending/ a la ruta confirmada de la versión
func (f *FileStore) Promote(uploadID string, applicationID uuid.UUID, docType string, version int) (string, error) {
	dst := f.DocPath(applicationID, docType, version)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create doc dir: %w", err)
	}

	if err := os.Rename(f.PendingPath(uploadID), dst); err != nil {
		return "", fmt.Errorf("promote pending file: %w", err)
	}
	return dst, nil
}

// RemoveDocs elimina el directorio de documentos de una solicitud.
// Lo usa la recepción para no dejar bytes huérfanos cuando su transacción aborta.
func (f *FileStore) RemoveDocs(applicationID uuid.UUID) error {
	return os.RemoveAll(filepath.Join(f.baseDir, "docs", applicationID.String()))
}

// RemovePending elimina los bytes temporales de una sesión
func (f *FileStore) RemovePending(uploadID string) error {
	err := os.Remove(f.PendingPath(uploadID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// SweepPending elimina archivos pendientes más viejos que maxAge cuya
// sesión ya no puede finalizarse. Regresa cuántos se eliminaron.
func (f *FileStore) SweepPending(maxAge time.Duration, isLive func(uploadID string) bool) (int, error) {
	entries, err := os.ReadDir(filepath.Join(f.baseDir, "pending"))
	if err != nil {
		return 0, err
	}

	removed := 0
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if isLive != nil && isLive(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(f.baseDir, "pending", entry.Name())); err != nil {
			f.logger.Warn("Failed to remove stale pending upload",
				zap.String("upload_id", entry.Name()),
				zap.Error(err))
			continue
		}
		removed++
	}

	return removed, nil
}
