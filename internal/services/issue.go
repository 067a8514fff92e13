package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/wicaksana/reportportal/internal/models"
	"gorm.io/gorm"
)

type IssueService struct {
	db       *gorm.DB
	projects *ProjectService
}

func NewIssueService(db *gorm.DB, projects *ProjectService) *IssueService {
	return &IssueService{db: db, projects: projects}
}

type CreateIssueRequest struct {
	Date           string `json:"date" binding:"required"`
	CaseNumber     string `json:"caseNumber" binding:"required"`
	TestCase       string `json:"testCase" binding:"required"`
	Description    string `json:"description" binding:"required"`
	ActualResult   string `json:"actualResult" binding:"required"`
	ExpectedResult string `json:"expectedResult" binding:"required"`
	Status         string `json:"status"`
}

type ResolveIssueRequest struct {
	Correction string `json:"correction" binding:"required"`
	DateClosed string `json:"dateClosed"`
}

type UpdateIssueStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Add records a new issue against a project the user owns. All six
// descriptive fields are mandatory; status defaults to OPEN.
func (s *IssueService) Add(username string, projectID uint, req *CreateIssueRequest) (*models.Issue, error) {
	if _, err := s.projects.GetByID(username, projectID); err != nil {
		return nil, err
	}

	required := []struct {
		name, value string
	}{
		{"date", req.Date},
		{"caseNumber", req.CaseNumber},
		{"testCase", req.TestCase},
		{"description", req.Description},
		{"actualResult", req.ActualResult},
		{"expectedResult", req.ExpectedResult},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrValidation, field.name)
		}
	}

	status := req.Status
	if status == "" {
		status = models.IssueStatusOpen
	}
	if !models.IsValidIssueStatus(status) {
		return nil, fmt.Errorf("%w: invalid issue status %q", ErrValidation, status)
	}
	if status == models.IssueStatusClosed {
		return nil, fmt.Errorf("%w: new issues cannot start closed", ErrValidation)
	}

	issue := models.Issue{
		ProjectID:      projectID,
		Date:           req.Date,
		CaseNumber:     req.CaseNumber,
		TestCase:       req.TestCase,
		Description:    req.Description,
		ActualResult:   req.ActualResult,
		ExpectedResult: req.ExpectedResult,
		Status:         status,
	}
	if err := s.db.Create(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// Remove deletes an issue. Removing an issue that is already gone is not
// an error, repeated deletes land in the same state.
func (s *IssueService) Remove(username string, projectID, issueID uint) error {
	if _, err := s.projects.GetByID(username, projectID); err != nil {
		return err
	}
	return s.db.Where("project_id = ?", projectID).Delete(&models.Issue{}, issueID).Error
}

// Resolve closes an issue, recording the correction and close date.
// DateClosed defaults to today. CLOSED is terminal: resolving an already
// closed issue fails and leaves it untouched.
func (s *IssueService) Resolve(username string, projectID, issueID uint, req *ResolveIssueRequest) (*models.Issue, error) {
	issue, err := s.get(username, projectID, issueID)
	if err != nil {
		return nil, err
	}
	if issue.Status == models.IssueStatusClosed {
		return nil, fmt.Errorf("%w: issue is already closed", ErrValidation)
	}
	if req.Correction == "" {
		return nil, fmt.Errorf("%w: correction is required to close an issue", ErrValidation)
	}

	dateClosed := req.DateClosed
	if dateClosed == "" {
		dateClosed = time.Now().Format("2006-01-02")
	}

	updates := map[string]interface{}{
		"status":      models.IssueStatusClosed,
		"correction":  req.Correction,
		"date_closed": dateClosed,
	}
	if err := s.db.Model(issue).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.get(username, projectID, issueID)
}

// UpdateStatus moves an issue between OPEN and IN_PROGRESS. Closing goes
// through Resolve so a correction is always captured, and closed issues
// stay closed.
func (s *IssueService) UpdateStatus(username string, projectID, issueID uint, req *UpdateIssueStatusRequest) (*models.Issue, error) {
	issue, err := s.get(username, projectID, issueID)
	if err != nil {
		return nil, err
	}

	if req.Status != models.IssueStatusOpen && req.Status != models.IssueStatusInProgress {
		return nil, fmt.Errorf("%w: status must be OPEN or IN_PROGRESS", ErrValidation)
	}
	if issue.Status == models.IssueStatusClosed {
		return nil, fmt.Errorf("%w: closed issues cannot be reopened", ErrValidation)
	}

	if err := s.db.Model(issue).Update("status", req.Status).Error; err != nil {
		return nil, err
	}
	return s.get(username, projectID, issueID)
}

// Search filters a project's issues by a case-insensitive substring over
// case number, test case, description, actual result and expected result.
// An empty term returns every issue.
func (s *IssueService) Search(username string, projectID uint, term string) ([]models.Issue, error) {
	project, err := s.projects.GetByID(username, projectID)
	if err != nil {
		return nil, err
	}

	if term == "" {
		return project.Issues, nil
	}

	needle := strings.ToLower(term)
	matched := make([]models.Issue, 0, len(project.Issues))
	for _, issue := range project.Issues {
		if strings.Contains(strings.ToLower(issue.Description), needle) ||
			strings.Contains(strings.ToLower(issue.CaseNumber), needle) ||
			strings.Contains(strings.ToLower(issue.TestCase), needle) ||
			strings.Contains(strings.ToLower(issue.ActualResult), needle) ||
			strings.Contains(strings.ToLower(issue.ExpectedResult), needle) {
			matched = append(matched, issue)
		}
	}
	return matched, nil
}

func (s *IssueService) get(username string, projectID, issueID uint) (*models.Issue, error) {
	if _, err := s.projects.GetByID(username, projectID); err != nil {
		return nil, err
	}

	var issue models.Issue
	err := s.db.Where("id = ? AND project_id = ?", issueID, projectID).First(&issue).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: issue %d", ErrNotFound, issueID)
		}
		return nil, err
	}
	return &issue, nil
}
