package db

import (
	"os"
	"path/filepath"
	"testing"

	"liyu1981.xyz/cct-cloud-service/pkg/common"
)

func TestWithFilePath(t *testing.T) {
	common.SetTestLoggerNop()

	if os.Getenv(common.EnvKeyRunIntegrationTests) != "true" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS environment variable not set")
	}

	testPath := filepath.Join(t.TempDir(), "test.db")

	instance, err := Open(UseSqliteDialector(testPath))
	if err != nil || instance == nil || instance.Conn == nil {
		t.Fatalf("Expected non-nil DB connection, err: %v", err)
	}

	if _, err := os.Stat(testPath); os.IsNotExist(err) {
		t.Errorf("Expected database file to be created at %s", testPath)
	}
}

func TestWithPostgres(t *testing.T) {
	common.SetTestLoggerNop()

	dsn := os.Getenv(common.EnvKeyCCTDbDSN)
	if os.Getenv(common.EnvKeyRunIntegrationTests) != "true" || dsn == "" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS or CCT_DB_DSN not set")
	}

	instance, err := Open(UsePostgresDialector(dsn))
	if err != nil {
		t.Fatalf("Failed to open postgres: %v", err)
	}
	if !instance.Conn.Migrator().HasTable("temperature_readings") {
		t.Error("Expected temperature_readings table after migration")
	}
}
