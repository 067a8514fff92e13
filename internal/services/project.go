package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/wicaksana/reportportal/internal/models"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB

	mu     sync.Mutex
	active map[string]uint // username -> selected project ID
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{
		db:     db,
		active: make(map[string]uint),
	}
}

type CreateProjectRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required,oneof=PMO SDA"`
	Status    string `json:"projectStatus"`
	Progress  *int   `json:"progress"`
	StartDate string `json:"startDate"`
}

type UpdateProjectRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category" binding:"omitempty,oneof=PMO SDA"`
	Status    string `json:"projectStatus"`
	Progress  *int   `json:"progress"`
	StartDate string `json:"startDate"`
}

// ListVisible returns the projects owned by the given user, with issues
// preloaded in insertion order.
func (s *ProjectService) ListVisible(username string) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.
		Preload("Issues", func(db *gorm.DB) *gorm.DB { return db.Order("issues.id") }).
		Where("owner = ?", username).
		Order("id").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID returns a project owned by the user, or ErrNotFound. Ownership
// failures are reported identically to missing rows.
func (s *ProjectService) GetByID(username string, id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.
		Preload("Issues", func(db *gorm.DB) *gorm.DB { return db.Order("issues.id") }).
		Where("id = ? AND owner = ?", id, username).
		First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: project %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &project, nil
}

// Create adds a project owned by the user. Missing status defaults to
// Progress, missing start date defaults to today, progress clamps to 0-100.
func (s *ProjectService) Create(username string, req *CreateProjectRequest) (*models.Project, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if !models.IsValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: invalid category %q", ErrValidation, req.Category)
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusProgress
	}
	if !models.IsValidProjectStatus(status) {
		return nil, fmt.Errorf("%w: invalid project status %q", ErrValidation, status)
	}

	progress := 0
	if req.Progress != nil {
		progress = clampProgress(*req.Progress)
	}

	startDate := req.StartDate
	if startDate == "" {
		startDate = time.Now().Format("2006-01-02")
	}

	project := models.Project{
		Name:      req.Name,
		Owner:     username,
		Category:  req.Category,
		Status:    status,
		Progress:  progress,
		StartDate: startDate,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	project.Issues = []models.Issue{}
	return &project, nil
}

// Update applies a partial update to a project the user owns.
func (s *ProjectService) Update(username string, id uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.GetByID(username, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Category != "" {
		if !models.IsValidCategory(req.Category) {
			return nil, fmt.Errorf("%w: invalid category %q", ErrValidation, req.Category)
		}
		updates["category"] = req.Category
	}
	if req.Status != "" {
		if !models.IsValidProjectStatus(req.Status) {
			return nil, fmt.Errorf("%w: invalid project status %q", ErrValidation, req.Status)
		}
		updates["status"] = req.Status
	}
	if req.Progress != nil {
		updates["progress"] = clampProgress(*req.Progress)
	}
	if req.StartDate != "" {
		updates["start_date"] = req.StartDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(username, id)
}

// SetActive records the user's selected project after checking ownership.
func (s *ProjectService) SetActive(username string, id uint) (*models.Project, error) {
	project, err := s.GetByID(username, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active[username] = id
	s.mu.Unlock()

	return project, nil
}

// GetActive resolves the user's current selection. A stale or missing
// selection falls back to the first visible project; with no projects at
// all it returns ErrNotFound.
func (s *ProjectService) GetActive(username string) (*models.Project, error) {
	s.mu.Lock()
	id, ok := s.active[username]
	s.mu.Unlock()

	if ok {
		if project, err := s.GetByID(username, id); err == nil {
			return project, nil
		}
		// stale selection, fall through to the default
		s.mu.Lock()
		delete(s.active, username)
		s.mu.Unlock()
	}

	projects, err := s.ListVisible(username)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("%w: no projects", ErrNotFound)
	}

	first := projects[0]
	s.mu.Lock()
	s.active[username] = first.ID
	s.mu.Unlock()
	return &first, nil
}

// ClearActive drops the user's selection, called on logout.
func (s *ProjectService) ClearActive(username string) {
	s.mu.Lock()
	delete(s.active, username)
	s.mu.Unlock()
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
