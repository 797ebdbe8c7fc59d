package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Database envoltura sobre sqlx.DB
type Database struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewDatabase crea la conexión a la base de datos
func NewDatabase(dsn string, logger *zap.Logger) (*Database, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configuración del pool de conexiones
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Database connection established")

	return &Database{
		db:     db,
		logger: logger,
	}, nil
}

// NewDatabaseFromDB envuelve una conexión existente (pruebas)
func NewDatabaseFromDB(db *sqlx.DB, logger *zap.Logger) *Database {
	return &Database{db: db, logger: logger}
}

// Close cierra la conexión
func (d *Database) Close() error {
	return d.db.Close()
}

// HealthCheck verifica la conexión
func (d *Database) HealthCheck(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// BeginTx abre una transacción
func (d *Database) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return d.db.BeginTxx(ctx, nil)
}

// InTx ejecuta fn dentro de una transacción corta con commit o rollback
func (d *Database) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			d.logger.Error("Transaction rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// IsUniqueViolation detecta violación de constraint único de Postgres
func IsUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

// IsSerializationFailure detecta conflicto transitorio de serialización
func IsSerializationFailure(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
