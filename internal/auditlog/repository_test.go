package auditlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds SQL against the postgres dialect without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=campus dbname=campus sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func listingSQL(t *testing.T, eventsTable bool) string {
	t.Helper()
	r := &repository{db: dryRunDB(t), eventsTable: eventsTable}
	var logs []AuditLogResponse
	stmt := r.baseQuery(context.Background()).Where("al.id = ?", 1).Find(&logs).Statement
	require.NoError(t, stmt.Error)
	return stmt.SQL.String()
}

func TestBaseQuery_EventsJoinFollowsBackend(t *testing.T) {
	t.Run("postgres events", func(t *testing.T) {
		sql := listingSQL(t, true)
		assert.Contains(t, sql, "LEFT JOIN events e")
		assert.Contains(t, sql, "e.name as event_name")
		assert.Contains(t, sql, "LEFT JOIN admins a")
	})

	t.Run("events stored in firebase", func(t *testing.T) {
		sql := listingSQL(t, false)
		assert.NotContains(t, sql, "events e")
		assert.NotContains(t, sql, "e.name")
		assert.Contains(t, sql, "LEFT JOIN admins a")
	})
}
