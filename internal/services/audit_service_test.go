package services

import (
	"math"
	"testing"

	"gastos/internal/models"
	"gastos/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("records_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db)

		svc.Log(user.ID, AuditActionCreateExpense, "expense", "exp-1", "127.0.0.1", map[string]interface{}{"amount": "12.50"})

		var entry models.AuditLog
		if err := db.Where("user_id = ?", user.ID).First(&entry).Error; err != nil {
			t.Fatalf("expected audit entry: %v", err)
		}
		if entry.Action != AuditActionCreateExpense || entry.ResourceID != "exp-1" {
			t.Errorf("unexpected entry %+v", entry)
		}
		if entry.Changes != `{"amount":"12.50"}` {
			t.Errorf("unexpected changes %s", entry.Changes)
		}
	})

	t.Run("unmarshalable_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db)

		svc.Log(user.ID, AuditActionDeleteExpense, "expense", "exp-2", "", map[string]interface{}{"bad": math.Inf(1)})

		var entry models.AuditLog
		if err := db.Where("user_id = ?", user.ID).First(&entry).Error; err != nil {
			t.Fatalf("expected audit entry: %v", err)
		}
		if entry.Changes != "{}" {
			t.Errorf("expected fallback changes, got %s", entry.Changes)
		}
	})
}
