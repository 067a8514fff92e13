package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
)

// Report channels
const (
	ReportChannelWA    = "WA"
	ReportChannelEmail = "EMAIL"
)

// indonesianMonths maps time.Month to the id-ID long month names used in
// report templates.
var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

type ReportService struct {
	projects *ProjectService
	workdays *cal.BusinessCalendar
}

func NewReportService(projects *ProjectService) *ReportService {
	return &ReportService{
		projects: projects,
		workdays: cal.NewBusinessCalendar(),
	}
}

type ReportRequest struct {
	Channel         string `json:"channel" binding:"required,oneof=WA EMAIL"`
	ReportDate      string `json:"reportDate"`
	TestingDuration int    `json:"testingDuration"`
	Activity        string `json:"activity"`
	DelayDays       int    `json:"delayDays"`
}

type ReportPreview struct {
	Channel  string `json:"channel"`
	Message  string `json:"message"`
	DeepLink string `json:"deepLink"`
}

// Preview renders the daily report for a project and channel, returning
// the message body plus a ready-to-open wa.me or mailto link.
func (s *ReportService) Preview(username string, projectID uint, req *ReportRequest) (*ReportPreview, error) {
	project, err := s.projects.GetByID(username, projectID)
	if err != nil {
		return nil, err
	}

	reportDate := req.ReportDate
	if reportDate == "" {
		reportDate = time.Now().Format("2006-01-02")
	}

	duration := req.TestingDuration
	if duration <= 0 {
		duration = s.SuggestedDuration(project.StartDate, reportDate)
	}

	inputDate := FormatIndonesianDate(reportDate)
	startDate := FormatIndonesianDate(project.StartDate)
	activity := orDash(req.Activity)

	var message string
	switch req.Channel {
	case ReportChannelWA:
		message = fmt.Sprintf(`Berikut Update Status Pengujian "%s" mulai pengujian tanggal "%s"

- Nama Project : %s
- Tanggal Pengujian : %s
- Jumlah Hari Pengujian : %d Hari
- Jadwal Pengujian : -
- Kegiatan Hari ini : %s
- Jumlah Hari Keterlambatan : %d Hari
- Progress Pengujian : %d%%

Detail temuan selama pengujian dilampirkan pada email laporan harian.
Terimakasih.`,
			project.Name, startDate,
			project.Name, inputDate, duration, activity, req.DelayDays, project.Progress)
	case ReportChannelEmail:
		message = fmt.Sprintf(`Dear Team,

Berikut adalah update status harian untuk project:

Nama Project: %s
Tanggal Pengujian: %s
Mulai Pengujian: %s
Progress Saat Ini: %d%%
Jumlah Hari Pengujian: %d
Kegiatan Hari Ini: %s
Keterlambatan: %d Hari

Detail temuan issues terlampir dalam laporan ini.

Terimakasih.`,
			project.Name, inputDate, startDate, project.Progress, duration, activity, req.DelayDays)
	default:
		return nil, fmt.Errorf("%w: unknown report channel %q", ErrValidation, req.Channel)
	}

	var deepLink string
	if req.Channel == ReportChannelWA {
		deepLink = "https://wa.me/?text=" + escapeQuery(message)
	} else {
		subject := "Daily Report: " + project.Name
		deepLink = "mailto:?subject=" + escapeQuery(subject) + "&body=" + escapeQuery(message)
	}

	return &ReportPreview{
		Channel:  req.Channel,
		Message:  message,
		DeepLink: deepLink,
	}, nil
}

// SuggestedDuration counts workdays from the project start date through
// the report date inclusive. Unparseable dates yield zero.
func (s *ReportService) SuggestedDuration(startDate, reportDate string) int {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse("2006-01-02", reportDate)
	if err != nil || end.Before(start) {
		return 0
	}
	return s.workdays.WorkdaysInRange(start, end)
}

// FormatIndonesianDate renders YYYY-MM-DD as an id-ID long date, for
// example "28 Juli 2025". Empty or malformed input renders as a dash.
func FormatIndonesianDate(dateStr string) string {
	if dateStr == "" {
		return "-"
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// escapeQuery percent-encodes a string for use in a query component,
// with spaces as %20 rather than +.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
