package services

import (
	"errors"
	"testing"

	"github.com/wicaksana/reportportal/internal/models"
)

func newIssueFixture(t *testing.T) *IssueService {
	t.Helper()
	db := setupSeededDB(t)
	return NewIssueService(db, NewProjectService(db))
}

func TestAddIssue(t *testing.T) {
	svc := newIssueFixture(t)

	issue, err := svc.Add("user", 1, &CreateIssueRequest{
		Date:           "2025-08-20",
		CaseNumber:     "TC-300",
		TestCase:       "Payment Flow",
		Description:    "Payment confirmation page blank",
		ActualResult:   "White screen after submit",
		ExpectedResult: "Confirmation with order number",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if issue.Status != models.IssueStatusOpen {
		t.Errorf("default status = %q, expected OPEN", issue.Status)
	}
	if issue.Date != "2025-08-20" {
		t.Errorf("date = %q", issue.Date)
	}
	if issue.Correction != nil || issue.DateClosed != nil {
		t.Error("new issue should have no correction or close date")
	}
}

func TestAddIssue_AllFieldsRequired(t *testing.T) {
	svc := newIssueFixture(t)

	complete := CreateIssueRequest{
		Date:           "2025-08-20",
		CaseNumber:     "TC-310",
		TestCase:       "Search",
		Description:    "No results for valid query",
		ActualResult:   "Empty list",
		ExpectedResult: "Matching rows",
	}

	blank := func(mutate func(*CreateIssueRequest)) *CreateIssueRequest {
		req := complete
		mutate(&req)
		return &req
	}

	tests := []struct {
		field string
		req   *CreateIssueRequest
	}{
		{"date", blank(func(r *CreateIssueRequest) { r.Date = "" })},
		{"caseNumber", blank(func(r *CreateIssueRequest) { r.CaseNumber = "" })},
		{"testCase", blank(func(r *CreateIssueRequest) { r.TestCase = "" })},
		{"description", blank(func(r *CreateIssueRequest) { r.Description = "   " })},
		{"actualResult", blank(func(r *CreateIssueRequest) { r.ActualResult = "" })},
		{"expectedResult", blank(func(r *CreateIssueRequest) { r.ExpectedResult = "" })},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if _, err := svc.Add("user", 1, tt.req); !errors.Is(err, ErrValidation) {
				t.Errorf("empty %s: expected ErrValidation, got %v", tt.field, err)
			}
		})
	}

	// nothing was persisted by the rejected requests
	issues, _ := svc.Search("user", 1, "")
	if len(issues) != 3 {
		t.Errorf("expected the 3 seed issues only, got %d", len(issues))
	}
}

func TestAddIssue_CannotStartClosed(t *testing.T) {
	svc := newIssueFixture(t)

	_, err := svc.Add("user", 1, &CreateIssueRequest{
		Date:           "2025-08-20",
		CaseNumber:     "TC-301",
		TestCase:       "X",
		Description:    "X",
		ActualResult:   "X",
		ExpectedResult: "X",
		Status:         models.IssueStatusClosed,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestAddIssue_ProjectOwnership(t *testing.T) {
	svc := newIssueFixture(t)

	_, err := svc.Add("intruder", 1, &CreateIssueRequest{
		CaseNumber: "TC-1", TestCase: "X", Description: "X",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveIssue_Idempotent(t *testing.T) {
	svc := newIssueFixture(t)

	if err := svc.Remove("user", 1, 3); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	// deleting again is a no-op
	if err := svc.Remove("user", 1, 3); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}

	issues, _ := svc.Search("user", 1, "")
	if len(issues) != 2 {
		t.Errorf("expected 2 issues left, got %d", len(issues))
	}
}

func TestResolveIssue(t *testing.T) {
	svc := newIssueFixture(t)

	// seed issue 3 (TC-088) is OPEN
	issue, err := svc.Resolve("user", 1, 3, &ResolveIssueRequest{
		Correction: "Increased gateway timeout and added caching",
		DateClosed: "2023-10-30",
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if issue.Status != models.IssueStatusClosed {
		t.Errorf("status = %q, expected CLOSED", issue.Status)
	}
	if issue.Correction == nil || *issue.Correction != "Increased gateway timeout and added caching" {
		t.Error("correction not recorded")
	}
	if issue.DateClosed == nil || *issue.DateClosed != "2023-10-30" {
		t.Error("close date not recorded")
	}
}

func TestResolveIssue_DefaultsCloseDate(t *testing.T) {
	svc := newIssueFixture(t)

	issue, err := svc.Resolve("user", 1, 3, &ResolveIssueRequest{Correction: "fixed"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if issue.DateClosed == nil || len(*issue.DateClosed) != 10 {
		t.Error("close date should default to today")
	}
}

func TestResolveIssue_CorrectionRequired(t *testing.T) {
	svc := newIssueFixture(t)

	if _, err := svc.Resolve("user", 1, 3, &ResolveIssueRequest{}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestResolveIssue_ClosedIsTerminal(t *testing.T) {
	svc := newIssueFixture(t)

	first, err := svc.Resolve("user", 1, 3, &ResolveIssueRequest{
		Correction: "Raised the gateway timeout",
		DateClosed: "2023-10-30",
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	_, err = svc.Resolve("user", 1, 3, &ResolveIssueRequest{
		Correction: "second fix",
		DateClosed: "2023-12-31",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("resolving a closed issue: expected ErrValidation, got %v", err)
	}

	// the original correction and close date survive the rejected attempt
	after, err := svc.get("user", 1, 3)
	if err != nil {
		t.Fatalf("get() error = %v", err)
	}
	if after.Correction == nil || *after.Correction != *first.Correction {
		t.Errorf("correction = %v, expected %q", after.Correction, *first.Correction)
	}
	if after.DateClosed == nil || *after.DateClosed != "2023-10-30" {
		t.Errorf("dateClosed = %v, expected 2023-10-30", after.DateClosed)
	}
}

func TestResolveIssue_SeedClosedIssueRejected(t *testing.T) {
	svc := newIssueFixture(t)

	// seed issue 1 (TC-001) shipped CLOSED
	if _, err := svc.Resolve("user", 1, 1, &ResolveIssueRequest{Correction: "again"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateIssueStatus(t *testing.T) {
	svc := newIssueFixture(t)

	issue, err := svc.UpdateStatus("user", 1, 3, &UpdateIssueStatusRequest{
		Status: models.IssueStatusInProgress,
	})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if issue.Status != models.IssueStatusInProgress {
		t.Errorf("status = %q", issue.Status)
	}

	// and back to OPEN
	issue, err = svc.UpdateStatus("user", 1, 3, &UpdateIssueStatusRequest{
		Status: models.IssueStatusOpen,
	})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if issue.Status != models.IssueStatusOpen {
		t.Errorf("status = %q", issue.Status)
	}
}

func TestUpdateIssueStatus_ClosedStaysClosed(t *testing.T) {
	svc := newIssueFixture(t)

	// seed issue 1 (TC-001) is CLOSED
	_, err := svc.UpdateStatus("user", 1, 1, &UpdateIssueStatusRequest{
		Status: models.IssueStatusOpen,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation when reopening, got %v", err)
	}

	// CLOSED is not a valid target either, it requires Resolve
	_, err = svc.UpdateStatus("user", 1, 3, &UpdateIssueStatusRequest{
		Status: models.IssueStatusClosed,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for CLOSED target, got %v", err)
	}
}

func TestSearchIssues(t *testing.T) {
	svc := newIssueFixture(t)

	tests := []struct {
		name string
		term string
		want int
	}{
		{"empty term returns all", "", 3},
		{"case number", "tc-001", 1},
		{"test case", "checkout", 1},
		{"description", "TIMEOUT", 1},
		{"actual result", "gateway", 1},
		{"expected result", "dashboard", 1},
		{"no match", "zzzzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := svc.Search("user", 1, tt.term)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(issues) != tt.want {
				t.Errorf("Search(%q) returned %d issues, expected %d", tt.term, len(issues), tt.want)
			}
		})
	}
}

func TestSearchIssues_OtherProjectInvisible(t *testing.T) {
	svc := newIssueFixture(t)

	// project 2 issues must never leak into project 1 searches
	issues, err := svc.Search("user", 1, "employee")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no cross-project matches, got %d", len(issues))
	}
}
