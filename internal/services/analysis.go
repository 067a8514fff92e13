package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"github.com/wicaksana/reportportal/internal/config"
	"github.com/wicaksana/reportportal/internal/models"
	"github.com/wicaksana/reportportal/pkg/logger"
	"google.golang.org/genai"
)

const analysisIssueWindow = 10

// Fallback texts returned when the model yields nothing or errors out.
// Analysis is best effort, a broken provider never fails the request.
const (
	analysisEmptyFallback = "Analysis could not be generated at this time."
	analysisErrorFallback = "Error generating AI analysis. Please check your API key configuration."
)

type AnalysisState struct {
	Running     bool       `json:"running"`
	Content     string     `json:"content,omitempty"`
	Fallback    bool       `json:"fallback"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}

type AnalysisService struct {
	projects *ProjectService
	config   *config.AIConfig

	mu     sync.Mutex
	states map[uint]*AnalysisState // project ID -> latest state
}

func NewAnalysisService(projects *ProjectService, cfg *config.AIConfig) *AnalysisService {
	return &AnalysisService{
		projects: projects,
		config:   cfg,
		states:   make(map[uint]*AnalysisState),
	}
}

// Begin marks an analysis as running for the project. It fails with
// ErrAnalysisRunning while a previous run is still in flight.
func (s *AnalysisService) Begin(username string, projectID uint) error {
	if _, err := s.projects.GetByID(username, projectID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.states[projectID]
	if state != nil && state.Running {
		return fmt.Errorf("%w: project %d", ErrAnalysisRunning, projectID)
	}
	s.states[projectID] = &AnalysisState{Running: true}
	return nil
}

// Abort clears a running flag that never made it to a worker, so the
// project is not stuck busy after a failed dispatch. Finished results
// are left alone.
func (s *AnalysisService) Abort(projectID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state := s.states[projectID]; state != nil && state.Running {
		delete(s.states, projectID)
	}
}

// State returns the latest analysis state for the project.
func (s *AnalysisService) State(username string, projectID uint) (*AnalysisState, error) {
	if _, err := s.projects.GetByID(username, projectID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.states[projectID]
	if state == nil {
		return &AnalysisState{}, nil
	}
	copied := *state
	return &copied, nil
}

// Analyze runs the summarization and stores the result. It never returns
// an error: provider failures surface as fallback text.
func (s *AnalysisService) Analyze(ctx context.Context, username string, projectID uint) string {
	project, err := s.projects.GetByID(username, projectID)
	if err != nil {
		logger.Warn().Err(err).Uint("project_id", projectID).Msg("analysis target vanished")
		s.finish(projectID, analysisErrorFallback, true)
		return analysisErrorFallback
	}

	prompt, err := s.buildPrompt(project)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build analysis prompt")
		s.finish(projectID, analysisErrorFallback, true)
		return analysisErrorFallback
	}

	content, err := s.callLLM(ctx, prompt)
	if err != nil {
		logger.Warn().Err(err).Str("provider", s.config.Provider).Msg("analysis provider failed")
		s.finish(projectID, analysisErrorFallback, true)
		return analysisErrorFallback
	}
	if strings.TrimSpace(content) == "" {
		s.finish(projectID, analysisEmptyFallback, true)
		return analysisEmptyFallback
	}

	s.finish(projectID, content, false)
	return content
}

func (s *AnalysisService) finish(projectID uint, content string, fallback bool) {
	now := time.Now()
	s.mu.Lock()
	s.states[projectID] = &AnalysisState{
		Content:     content,
		Fallback:    fallback,
		GeneratedAt: &now,
	}
	s.mu.Unlock()
}

// buildPrompt renders the QA summary prompt with the project's most
// recent issues attached as JSON.
func (s *AnalysisService) buildPrompt(project *models.Project) (string, error) {
	issues := project.Issues
	if len(issues) > analysisIssueWindow {
		issues = issues[len(issues)-analysisIssueWindow:]
	}

	issuesJSON, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are a Senior QA Engineer. Analyze the following project testing report data.

Project Name: %s
Project Completion: %d%%

Issues List:
%s

Please provide a concise executive summary formatted in Markdown:
1. Overall Risk Assessment (Low/Medium/High).
2. Key patterns in the defects/issues.
3. One specific recommendation for the "Corrective Actions" to prevent future recurrence.
4. A brief encouraging remark for the team.`,
		project.Name, project.Progress, string(issuesJSON)), nil
}

// callLLM dispatches to the configured provider. openai also covers
// OpenAI-compatible endpoints via BaseURL.
func (s *AnalysisService) callLLM(ctx context.Context, prompt string) (string, error) {
	logger.Info().Str("provider", s.config.Provider).Str("model", s.config.Model).Msg("running analysis")

	switch s.config.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, prompt)
	case "ollama":
		return s.callOllama(ctx, prompt)
	case "gemini":
		return s.callGemini(ctx, prompt)
	default:
		return s.callOpenAI(ctx, prompt)
	}
}

func (s *AnalysisService) callOpenAI(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(s.config.APIKey)
	if s.config.BaseURL != "" {
		clientConfig.BaseURL = s.config.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	model := s.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *AnalysisService) callAnthropic(ctx context.Context, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(s.config.APIKey),
	)

	model := s.config.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	return content.String(), nil
}

func (s *AnalysisService) callOllama(ctx context.Context, prompt string) (string, error) {
	baseURL := s.config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := s.config.Model
	if model == "" {
		model = "llama3"
	}

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama API error: %w", err)
	}
	return content.String(), nil
}

func (s *AnalysisService) callGemini(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.config.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := s.config.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return resp.Text(), nil
}
