package services

import (
	"sort"

	"github.com/wicaksana/reportportal/internal/models"
	"gorm.io/gorm"
)

const recentIssueLimit = 10

type DashboardService struct {
	db       *gorm.DB
	projects *ProjectService
}

func NewDashboardService(db *gorm.DB, projects *ProjectService) *DashboardService {
	return &DashboardService{db: db, projects: projects}
}

type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type RecentIssue struct {
	models.Issue
	ProjectName string `json:"projectName"`
}

type DashboardStats struct {
	PMOTotal      int           `json:"pmoTotal"`
	SDATotal      int           `json:"sdaTotal"`
	PMOStatusData []StatusCount `json:"pmoStatusData"`
	SDAStatusData []StatusCount `json:"sdaStatusData"`
	RecentIssues  []RecentIssue `json:"recentIssues"`
}

// Stats aggregates the user's projects into category totals, per-status
// breakdowns and the most recent issues across every project.
func (s *DashboardService) Stats(username string) (*DashboardStats, error) {
	projects, err := s.projects.ListVisible(username)
	if err != nil {
		return nil, err
	}

	var pmo, sda []models.Project
	for _, p := range projects {
		switch p.Category {
		case models.CategoryPMO:
			pmo = append(pmo, p)
		case models.CategorySDA:
			sda = append(sda, p)
		}
	}

	return &DashboardStats{
		PMOTotal:      len(pmo),
		SDATotal:      len(sda),
		PMOStatusData: statusBreakdown(pmo),
		SDAStatusData: statusBreakdown(sda),
		RecentIssues:  recentIssues(projects, recentIssueLimit),
	}, nil
}

// statusBreakdown counts projects per status. Every status appears in
// the result, zero-filled, in the fixed presentation order.
func statusBreakdown(projects []models.Project) []StatusCount {
	counts := make(map[string]int, len(models.ProjectStatuses))
	for _, p := range projects {
		counts[p.Status]++
	}

	out := make([]StatusCount, 0, len(models.ProjectStatuses))
	for _, status := range models.ProjectStatuses {
		out = append(out, StatusCount{Name: status, Value: counts[status]})
	}
	return out
}

// recentIssues flattens issues across projects and keeps the newest by
// report date. The sort is stable so issues sharing a date stay in
// project then insertion order.
func recentIssues(projects []models.Project, limit int) []RecentIssue {
	all := []RecentIssue{}
	for _, p := range projects {
		for _, i := range p.Issues {
			all = append(all, RecentIssue{Issue: i, ProjectName: p.Name})
		}
	}

	sort.SliceStable(all, func(a, b int) bool {
		return all[a].Date > all[b].Date
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all
}
