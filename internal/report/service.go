package report

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/antigravity-hq/antigravity/backend/internal/apperr"
	"github.com/antigravity-hq/antigravity/backend/internal/models"
)

// DefaultTitle is used when the client omits a report title.
const DefaultTitle = "Untitled Report"

// ReportStore defines the interface for report persistence.
type ReportStore interface {
	Insert(ctx context.Context, report *models.Report) (*models.Report, error)
	ListByUser(ctx context.Context, userID string) ([]models.Report, error)
	GetByIDForUser(ctx context.Context, id, userID string) (*models.Report, error)
}

// AnalysisService is the gateway to the four external scoring endpoints.
type AnalysisService interface {
	Match(ctx context.Context, resumeText, jobDescription string) (*MatchResult, error)
	SkillGap(ctx context.Context, resumeSkills, jobSkills []string) (*SkillGapResult, error)
	Salary(ctx context.Context, yearsExperience float64, skillCount, educationLevel int) (*SalaryResult, error)
	ATSScore(ctx context.Context, resumeText, jobDescription string) (*ATSResult, error)
}

// CreateInput is the JSON body for POST /api/reports.
type CreateInput struct {
	Title          string   `json:"title"`
	ResumeText     string   `json:"resumeText"`
	JobDescription string   `json:"jobDescription"`
	ResumeSkills   []string `json:"resumeSkills"`
	JobSkills      []string `json:"jobSkills"`
	Experience     float64  `json:"experience"`
	SkillCount     int      `json:"skillCount"`
	EducationLevel int      `json:"educationLevel"`
}

// Details carries the raw per-call response bodies back to the client for
// transparency alongside the persisted report.
type Details struct {
	Match  *MatchResult    `json:"match"`
	Skills *SkillGapResult `json:"skills"`
	Salary *SalaryResult   `json:"salary"`
	ATS    *ATSResult      `json:"ats"`
}

// Service orchestrates the four analysis calls and owns report persistence.
type Service struct {
	store    ReportStore
	analysis AnalysisService
	logger   zerolog.Logger
}

func NewService(store ReportStore, analysis AnalysisService, logger zerolog.Logger) *Service {
	return &Service{store: store, analysis: analysis, logger: logger}
}

// Create fans out the four analysis calls, merges the responses into one
// report and persists it. The calls are independent of each other's
// results, so they run concurrently and join before anything is written.
// If any call fails nothing is persisted and the caller gets a single
// service-unavailable error regardless of which call broke.
func (s *Service) Create(ctx context.Context, ownerID string, input CreateInput) (*models.Report, *Details, error) {
	if input.ResumeText == "" || input.JobDescription == "" {
		return nil, nil, apperr.Validation("resumeText and jobDescription are required")
	}
	if input.Title == "" {
		input.Title = DefaultTitle
	}
	if input.ResumeSkills == nil {
		input.ResumeSkills = []string{}
	}
	if input.JobSkills == nil {
		input.JobSkills = []string{}
	}

	var details Details
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.analysis.Match(gctx, input.ResumeText, input.JobDescription)
		details.Match = res
		return err
	})
	g.Go(func() error {
		res, err := s.analysis.SkillGap(gctx, input.ResumeSkills, input.JobSkills)
		details.Skills = res
		return err
	})
	g.Go(func() error {
		res, err := s.analysis.Salary(gctx, input.Experience, input.SkillCount, input.EducationLevel)
		details.Salary = res
		return err
	})
	g.Go(func() error {
		res, err := s.analysis.ATSScore(gctx, input.ResumeText, input.JobDescription)
		details.ATS = res
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("analysis call failed")
		return nil, nil, apperr.Unavailable("failed to generate report; ensure analysis service is running", err)
	}

	report := &models.Report{
		UserID:                ownerID,
		Title:                 input.Title,
		MatchScore:            details.Match.MatchPercentage,
		ATSScore:              details.ATS.ATSScore,
		PredictedSalary:       details.Salary.PredictedSalary,
		MatchedSkills:         details.Skills.MatchedSkills,
		MissingSkills:         details.Skills.MissingSkills,
		SimilarityExplanation: details.Match.SimilarityExplanation,
	}
	saved, err := s.store.Insert(ctx, report)
	if err != nil {
		return nil, nil, err
	}
	return saved, &details, nil
}

// List returns the owner's reports, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]models.Report, error) {
	reports, err := s.store.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return reports, nil
}

// Get returns a report only when it exists and belongs to ownerID. An
// ownership mismatch looks exactly like a missing report.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*models.Report, error) {
	return s.store.GetByIDForUser(ctx, id, ownerID)
}
