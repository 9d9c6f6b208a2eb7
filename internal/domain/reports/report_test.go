package reports

import (
	"bytes"
	"context"
	"strconv"
	"testing"
	"time"

	"ocena/internal/apperr"
	"ocena/internal/domain/employees"
	"ocena/internal/domain/identity"
	"ocena/internal/domain/identity/fake"
	"ocena/internal/domain/repository"
)

func newEmployeeStore() *repository.Memory[employees.Employee, string] {
	return repository.NewMemory(repository.MemoryConfig[employees.Employee, string]{
		Key:     func(e employees.Employee) string { return e.ID },
		WithKey: func(e employees.Employee, id string) employees.Employee { e.ID = id; return e },
		NextKey: func(n int) string { return "emp-" + strconv.Itoa(n) },
		Touch: func(e employees.Employee, now time.Time, created bool) employees.Employee {
			if created {
				e.CreatedAt = now
			}
			e.UpdatedAt = now
			return e
		},
		UserID: func(e employees.Employee) string { return e.UserID },
	})
}

func TestBuildReviewPDF(t *testing.T) {
	view := &employees.View{
		FirstName:           "Anna",
		LastName:            "Kowalska",
		Email:               "anna@example.com",
		Position:            "Analityk",
		EvaluationPeriod:    "2026 H1",
		FinalScore:          "4/5",
		AchievementsSummary: "Wdrożenie nowego procesu raportowania.",
	}

	data, err := BuildReviewPDF(view, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF magic, got %q", data[:8])
	}
	if len(data) < 500 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestReviewPDFFollowsEmployeeReadRule(t *testing.T) {
	gw := fake.NewGateway(
		fake.WithIdentity(identity.Identity{ID: "user-emp", Username: "pracownik", Email: "pracownik@example.com"}, "secret", identity.RoleEmployee),
	)
	store := newEmployeeStore()
	store.Seed(employees.Employee{ID: "emp-1", UserID: "user-emp", FirstName: "Jan", LastName: "Nowak"})
	svc := NewService(employees.NewService(store, gw))
	ctx := context.Background()

	if _, err := svc.ReviewPDF(ctx, identity.Actor{ID: "user-other", Roles: []string{identity.RoleEmployee}}, "emp-1"); apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected Forbidden for another employee, got %v", err)
	}

	data, err := svc.ReviewPDF(ctx, identity.Actor{ID: "user-mgr", Roles: []string{identity.RoleManager}}, "emp-1")
	if err != nil {
		t.Fatalf("manager download error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected PDF output")
	}

	if _, err := svc.ReviewPDF(ctx, identity.Actor{Roles: []string{identity.RoleAdmin}}, "missing"); apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound for unknown employee, got %v", err)
	}
}
