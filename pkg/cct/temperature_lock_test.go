package cct

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"liyu1981.xyz/cct-cloud-service/pkg/db"
	_ "liyu1981.xyz/cct-cloud-service/pkg/testing"
)

func TestLockDeviceSQL(t *testing.T) {
	pg, err := gorm.Open(db.UsePostgresDialector("host=127.0.0.1 user=cct dbname=cct sslmode=disable"),
		&gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	sql := pg.ToSQL(func(tx *gorm.DB) *gorm.DB { return lockDevice(tx, 42) })
	assert.Contains(t, sql, `FROM "devices"`)
	assert.Contains(t, sql, "FOR UPDATE")

	lite, err := db.Open(db.UseNamedMemorySqliteDialector(uuid.NewString()))
	require.NoError(t, err)

	sql = lite.Conn.ToSQL(func(tx *gorm.DB) *gorm.DB { return lockDevice(tx, 42) })
	assert.Contains(t, sql, "`devices`")
	assert.NotContains(t, sql, "FOR UPDATE")
}
