package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

// RedisClient envoltura sobre redis.Client
type RedisClient struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisClient crea el cliente de Redis
func NewRedisClient(addr, password string, db int, logger *zap.Logger) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		// Configuración del pool
		PoolSize:     10,
		MinIdleConns: 2,
		PoolTimeout:  30 * time.Second,
		IdleTimeout:  5 * time.Minute,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established",
		zap.String("addr", addr),
		zap.Int("db", db))

	return &RedisClient{
		client: client,
		logger: logger,
	}, nil
}

// NewRedisClientFromClient envuelve un cliente existente (pruebas)
func NewRedisClientFromClient(client *redis.Client, logger *zap.Logger) *RedisClient {
	return &RedisClient{client: client, logger: logger}
}

// Close cierra la conexión con Redis
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// HealthCheck verifica la conexión con Redis
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// UploadSession sesión pendiente de subida de documento DESPUES.
// Vive solo en Redis con TTL: si nunca se finaliza simplemente expira
// y no deja registro de cumplimiento.
type UploadSession struct {
	UploadID      string              `json:"upload_id"`
	ApplicationID uuid.UUID           `json:"application_id"`
	Folio         string              `json:"folio"`
	DocType       models.DocumentType `json:"doc_type"`
	Version       int                 `json:"version"`
	FileName      string              `json:"file_name"`
	MimeType      string              `json:"mime_type"`
	FileSize      int64               `json:"file_size"`
	PendingPath   string              `json:"pending_path"`
	CreatedAt     time.Time           `json:"created_at"`
}

func uploadKey(uploadID string) string {
	return "upload:" + uploadID
}

// SaveUploadSession guarda la sesión con TTL
func (r *RedisClient) SaveUploadSession(ctx context.Context, session *UploadSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal upload session: %w", err)
	}

	return r.client.Set(ctx, uploadKey(session.UploadID), payload, ttl).Err()
}

// GetUploadSession regresa la sesión, o nil si no existe o ya expiró
func (r *RedisClient) GetUploadSession(ctx context.Context, uploadID string) (*UploadSession, error) {
	raw, err := r.client.Get(ctx, uploadKey(uploadID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session UploadSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("unmarshal upload session: %w", err)
	}
	return &session, nil
}

// DeleteUploadSession elimina la sesión una vez finalizada
func (r *RedisClient) DeleteUploadSession(ctx context.Context, uploadID string) error {
	return r.client.Del(ctx, uploadKey(uploadID)).Err()
}

// HasUploadSession verifica si la sesión sigue viva
func (r *RedisClient) HasUploadSession(ctx context.Context, uploadID string) (bool, error) {
	n, err := r.client.Exists(ctx, uploadKey(uploadID)).Result()
	return n > 0, err
}
