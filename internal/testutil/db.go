// Package testutil reúne helpers compartilhados pelos testes de integração.
package testutil

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/votex-backend/internal/infrastructure/persistence/postgres"
)

// TB é o subconjunto de testing.TB usado pelos helpers.
// GinkgoT() também satisfaz esta interface.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
	Cleanup(func())
}

// NewTestDB abre um SQLite em memória isolado por teste, com o schema migrado
func NewTestDB(t TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), postgres.NewGormConfig(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Uma conexão só: o banco em memória vive enquanto ela estiver aberta
	// e o SQLite serializa escritas de qualquer forma.
	sqlDB.SetMaxOpenConns(1)

	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
