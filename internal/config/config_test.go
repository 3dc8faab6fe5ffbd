package config

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("IMPORT_STORAGE_ROOT", filepath.Join(t.TempDir(), "imports"))

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 100, cfg.ImportChunkSize)
	assert.Equal(t, int64(10<<20), cfg.ImportMaxBytes)
	assert.Equal(t, uuid.MustParse("00000000-0000-0000-0000-000000000001"), cfg.SystemActorID)
	assert.DirExists(t, cfg.StorageRoot)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("IMPORT_STORAGE_ROOT", filepath.Join(t.TempDir(), "imports"))
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("IMPORT_CHUNK_SIZE", "250")
	actor := uuid.New()
	t.Setenv("SYSTEM_ACTOR_ID", actor.String())

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 250, cfg.ImportChunkSize)
	assert.Equal(t, actor, cfg.SystemActorID)
}

func TestLoadRejectsInvalidActorID(t *testing.T) {
	t.Setenv("IMPORT_STORAGE_ROOT", filepath.Join(t.TempDir(), "imports"))
	t.Setenv("SYSTEM_ACTOR_ID", "not-a-uuid")

	_, err := Load()
	assert.Error(t, err)
}
