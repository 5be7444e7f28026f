package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/models"
)

var testDBCounter atomic.Int64

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// openTestDB opens a fresh in-memory database with the full schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Tenant{},
		&models.TenantDomain{},
		&models.User{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Special{},
		&models.SpecialDay{},
		&models.Event{},
		&models.EventType{},
		&models.AuditEntry{},
		&models.DomainPing{},
		&models.UploadRecord{},
	))
	return db
}

func testActor() Actor {
	return Actor{ID: 1, TenantID: 1, Role: "owner", Email: "owner@example.com", Name: "Owner"}
}

func ptrUint(v uint) *uint {
	return &v
}

// memoryAuditRecorder captures audit events for assertions.
type memoryAuditRecorder struct {
	events   []AuditEvent
	failures []AuditEvent
}

func (m *memoryAuditRecorder) Record(ctx context.Context, actor Actor, event AuditEvent) error {
	m.events = append(m.events, event)
	return nil
}

func (m *memoryAuditRecorder) RecordFailure(ctx context.Context, actor Actor, event AuditEvent) error {
	m.failures = append(m.failures, event)
	return nil
}
