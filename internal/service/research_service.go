package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"market-research-be/internal/config"
	"market-research-be/internal/constant"
	"market-research-be/internal/dto"
	"market-research-be/internal/pkg/logger"
	"market-research-be/internal/repository/contract"
	"market-research-be/pkg/events"
	"market-research-be/pkg/llm"
	"market-research-be/pkg/llm/factory"
	"market-research-be/pkg/prompt"
	"market-research-be/pkg/retrieval"
	"market-research-be/pkg/store"

	"github.com/google/uuid"
)

// IResearchService defines the research report service interface
type IResearchService interface {
	CreateSession(ctx context.Context) (*dto.CreateResearchSessionResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.GetSessionResponse, error)
	Generate(ctx context.Context, request *dto.GenerateReportRequest) (*dto.GenerateReportResponse, error)
	ListModels(ctx context.Context) []*dto.ModelOptionResponse
}

// ProviderFactory builds a generation provider for one request. The
// default uses pkg/llm/factory; tests swap in fakes.
type ProviderFactory func(model, apiKey string) (llm.LLMProvider, error)

// researchService is the step controller: it owns the session state
// machine (input -> retrieval -> report) and drives the retrieval and
// generation adapters, one external call each per Generate press.
type researchService struct {
	sessionRepo     contract.SessionRepository
	retriever       retrieval.Provider
	providerFactory ProviderFactory
	publisher       IPublisherService
	sysLog          logger.ILogger

	providerType  string
	defaultModel  string
	allowedModels []string
	topK          int
}

func NewResearchService(
	cfg *config.Config,
	sessionRepo contract.SessionRepository,
	retriever retrieval.Provider,
	publisher IPublisherService,
	sysLog logger.ILogger,
) IResearchService {
	providerType := cfg.Ai.LLMProvider
	ollamaURL := cfg.Ai.OllamaBaseURL

	return &researchService{
		sessionRepo: sessionRepo,
		retriever:   retriever,
		providerFactory: func(model, apiKey string) (llm.LLMProvider, error) {
			return factory.NewLLMProvider(providerType, model, ollamaURL, apiKey)
		},
		publisher:     publisher,
		sysLog:        sysLog,
		providerType:  providerType,
		defaultModel:  cfg.Ai.LLMModel,
		allowedModels: cfg.Ai.AllowedModels,
		topK:          cfg.Ai.TopKResults,
	}
}

// CreateSession opens a fresh workflow at the input step.
func (rs *researchService) CreateSession(ctx context.Context) (*dto.CreateResearchSessionResponse, error) {
	now := time.Now()
	session := &store.ResearchSession{
		ID:        uuid.New().String(),
		Step:      store.StepInput,
		Model:     rs.defaultModel,
		CreatedAt: now,
		UpdatedAt: now,
	}
	rs.sessionRepo.Save(session)

	return &dto.CreateResearchSessionResponse{Id: session.ID}, nil
}

// GetSession returns the current state without touching any external
// service, so re-rendering the surface is free.
func (rs *researchService) GetSession(ctx context.Context, sessionId string) (*dto.GetSessionResponse, error) {
	session, found := rs.sessionRepo.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	return &dto.GetSessionResponse{
		SessionId: session.ID,
		Step:      session.Step,
		Industry:  session.Industry,
		Model:     session.Model,
		Warning:   session.Warning,
		Sources:   sourcesOf(session),
		Report:    session.Report,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}, nil
}

// Generate runs the full pipeline for one button press: validate,
// reset, retrieve, build context, generate. Each stage persists its
// output before the next runs.
func (rs *researchService) Generate(ctx context.Context, request *dto.GenerateReportRequest) (*dto.GenerateReportResponse, error) {
	session, found := rs.sessionRepo.Get(request.SessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	// Validation: no state change on failure.
	if factory.RequiresCredential(rs.providerType) && strings.TrimSpace(request.ApiKey) == "" {
		return nil, ErrMissingCredential
	}
	industry := strings.TrimSpace(request.Industry)
	if industry == "" {
		return nil, ErrMissingIndustry
	}
	model := request.Model
	if model == "" {
		model = rs.defaultModel
	}
	if !slices.Contains(rs.allowedModels, model) {
		return nil, ErrModelNotAllowed
	}

	// Valid submission: clear prior results and enter the retrieval step.
	session.Industry = industry
	session.Model = model
	session.Documents = nil
	session.Context = ""
	session.Report = ""
	session.Warning = ""
	session.Step = store.StepRetrieval
	session.UpdatedAt = time.Now()
	rs.sessionRepo.Save(session)

	docs, err := rs.retriever.Search(ctx, industry, rs.topK)
	if err != nil {
		rs.sysLog.Error("research", "Retrieval failed", map[string]interface{}{
			"session_id": session.ID,
			"industry":   industry,
			"error":      err.Error(),
		})
		return nil, &RetrievalError{Err: err}
	}
	if len(docs) == 0 {
		// Halt before the report step; a fresh Generate retries.
		return nil, &NoResultsError{Query: industry}
	}
	if len(docs) > rs.topK {
		docs = docs[:rs.topK]
	}

	if len(docs) < rs.topK {
		session.Warning = fmt.Sprintf(
			"Only %d relevant Wikipedia pages were found. The report will be generated based on the available pages.",
			len(docs),
		)
	}
	if allContentBlank(docs) {
		session.Warning = "The retrieved pages contain no readable text. The report may be unreliable."
	}

	session.Documents = docs
	session.Context = prompt.BuildContext(docs)
	session.Step = store.StepReport
	session.UpdatedAt = time.Now()
	rs.sessionRepo.Save(session)

	rs.publishEvent(ctx, events.NewRetrievalCompleted(session.ID, industry, len(docs)))

	provider, err := rs.providerFactory(model, request.ApiKey)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	history := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: prompt.SystemPrompt()},
		{Role: constant.ChatMessageRoleUser, Content: prompt.UserPrompt(industry, session.Context)},
	}

	report, err := provider.Chat(ctx, history,
		llm.WithModel(model),
		llm.WithTemperature(constant.ReportTemperature),
		llm.WithMaxTokens(constant.ReportMaxOutputTokens),
	)
	if err != nil {
		rs.sysLog.Error("research", "Generation failed", map[string]interface{}{
			"session_id": session.ID,
			"industry":   industry,
			"model":      model,
			"error":      err.Error(),
		})
		// Report stays empty; the sources remain visible to the caller.
		return nil, &GenerationError{Err: err}
	}

	session.Report = report
	session.UpdatedAt = time.Now()
	rs.sessionRepo.Save(session)

	rs.publishEvent(ctx, events.NewReportGenerated(session.ID, industry, model, len(report)))

	return &dto.GenerateReportResponse{
		SessionId: session.ID,
		Step:      session.Step,
		Industry:  session.Industry,
		Model:     session.Model,
		Warning:   session.Warning,
		Sources:   sourcesOf(session),
		Report:    session.Report,
	}, nil
}

// ListModels returns the configured allow-list for the model selector.
func (rs *researchService) ListModels(ctx context.Context) []*dto.ModelOptionResponse {
	models := make([]*dto.ModelOptionResponse, 0, len(rs.allowedModels))
	for _, m := range rs.allowedModels {
		models = append(models, &dto.ModelOptionResponse{Id: m})
	}
	return models
}

func (rs *researchService) publishEvent(ctx context.Context, event events.Event) {
	if rs.publisher == nil {
		return
	}
	if err := rs.publisher.Publish(ctx, event); err != nil {
		rs.sysLog.Warn("research", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func sourcesOf(session *store.ResearchSession) []dto.SourceDTO {
	sources := make([]dto.SourceDTO, 0, len(session.Documents))
	for _, doc := range session.Documents {
		sources = append(sources, dto.SourceDTO{
			Title:     doc.Title,
			SourceUrl: doc.SourceURL,
		})
	}
	return sources
}

func allContentBlank(docs []store.Document) bool {
	for _, doc := range docs {
		if strings.TrimSpace(doc.Content) != "" {
			return false
		}
	}
	return true
}
