package mysql

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vetstore/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:            "db.local",
		Port:            3307,
		User:            "vet",
		Password:        "pw",
		Name:            "store",
		ConnMaxLifetime: time.Minute,
	})

	assert.True(t, strings.HasPrefix(dsn, "vet:pw@tcp(db.local:3307)/store?"))
	assert.Contains(t, dsn, "parseTime=true")
}

func TestSchemaStatements(t *testing.T) {
	statements := SchemaStatements()

	assert.Len(t, statements, len(Tables))
	for i, table := range Tables {
		assert.Contains(t, statements[i], "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
}
