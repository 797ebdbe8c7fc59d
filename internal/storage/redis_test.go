package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

func newTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisClientFromClient(client, zap.NewNop()), mr
}

func TestUploadSessionRoundtrip(t *testing.T) {
	rc, _ := newTestRedis(t)
	ctx := context.Background()

	session := &UploadSession{
		UploadID:      uuid.NewString(),
		ApplicationID: uuid.New(),
		Folio:         "BIN-2026-00001",
		DocType:       models.DocCURP,
		Version:       2,
		FileName:      "curp.pdf",
		MimeType:      "application/pdf",
		FileSize:      1024,
		PendingPath:   "/tmp/pending/x",
		CreatedAt:     time.Now().Truncate(time.Second),
	}

	require.NoError(t, rc.SaveUploadSession(ctx, session, time.Minute))

	got, err := rc.GetUploadSession(ctx, session.UploadID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.Folio, got.Folio)
	assert.Equal(t, session.DocType, got.DocType)
	assert.Equal(t, session.Version, got.Version)

	alive, err := rc.HasUploadSession(ctx, session.UploadID)
	require.NoError(t, err)
	assert.True(t, alive)
}

func TestUploadSessionExpires(t *testing.T) {
	rc, mr := newTestRedis(t)
	ctx := context.Background()

	session := &UploadSession{
		UploadID:      uuid.NewString(),
		ApplicationID: uuid.New(),
		Folio:         "BIN-2026-00002",
		DocType:       models.DocNSS,
		Version:       1,
	}

	require.NoError(t, rc.SaveUploadSession(ctx, session, 30*time.Second))

	mr.FastForward(time.Minute)

	got, err := rc.GetUploadSession(ctx, session.UploadID)
	require.NoError(t, err)
	assert.Nil(t, got)

	alive, err := rc.HasUploadSession(ctx, session.UploadID)
	require.NoError(t, err)
	assert.False(t, alive)
}

func TestGetUploadSessionMissing(t *testing.T) {
	rc, _ := newTestRedis(t)

	got, err := rc.GetUploadSession(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteUploadSession(t *testing.T) {
	rc, _ := newTestRedis(t)
	ctx := context.Background()

	session := &UploadSession{UploadID: uuid.NewString(), Version: 1}
	require.NoError(t, rc.SaveUploadSession(ctx, session, time.Minute))
	require.NoError(t, rc.DeleteUploadSession(ctx, session.UploadID))

	got, err := rc.GetUploadSession(ctx, session.UploadID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
