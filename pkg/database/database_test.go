package database

import (
	"feelio_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(&config.DatabaseConfig{Driver: driver, Host: "localhost", Port: 1, Path: ":memory:"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestInitDBAndMigrate(t *testing.T) {
	db, err := InitDB(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, "release")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, Migrate(db))
	for _, table := range []string{"users", "narratives", "responses", "badges", "user_badges"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("user_badges", "idx_user_badge"))
}

func TestInitRedis_Disabled(t *testing.T) {
	rdb, err := InitRedis(&config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}
