package report_test

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/antigravity-hq/antigravity/backend/internal/apperr"
	"github.com/antigravity-hq/antigravity/backend/internal/models"
	"github.com/antigravity-hq/antigravity/backend/internal/report"
)

// memReportStore is an in-memory ReportStore with deterministic,
// strictly increasing creation timestamps.
type memReportStore struct {
	reports []models.Report
	clock   time.Time
}

func newMemReportStore() *memReportStore {
	return &memReportStore{clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *memReportStore) Insert(ctx context.Context, r *models.Report) (*models.Report, error) {
	s.clock = s.clock.Add(time.Second)
	r.ID = primitive.NewObjectID()
	r.CreatedAt = s.clock
	s.reports = append(s.reports, *r)
	return r, nil
}

func (s *memReportStore) ListByUser(ctx context.Context, userID string) ([]models.Report, error) {
	var out []models.Report
	for _, r := range s.reports {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memReportStore) GetByIDForUser(ctx context.Context, id, userID string) (*models.Report, error) {
	for _, r := range s.reports {
		if r.ID.Hex() == id && r.UserID == userID {
			found := r
			return &found, nil
		}
	}
	return nil, apperr.NotFound("report not found")
}

// stubAnalysis returns fixed responses, with per-endpoint failure switches.
type stubAnalysis struct {
	failMatch, failSkills, failSalary, failATS bool
}

var errDown = errors.New("connection refused")

func (s *stubAnalysis) Match(ctx context.Context, resumeText, jobDescription string) (*report.MatchResult, error) {
	if s.failMatch {
		return nil, errDown
	}
	return &report.MatchResult{MatchPercentage: 70, SimilarityExplanation: "Found 1 common relevant keywords."}, nil
}

func (s *stubAnalysis) SkillGap(ctx context.Context, resumeSkills, jobSkills []string) (*report.SkillGapResult, error) {
	if s.failSkills {
		return nil, errDown
	}
	return &report.SkillGapResult{MatchedSkills: []string{"python"}, MissingSkills: []string{"docker"}}, nil
}

func (s *stubAnalysis) Salary(ctx context.Context, yearsExperience float64, skillCount, educationLevel int) (*report.SalaryResult, error) {
	if s.failSalary {
		return nil, errDown
	}
	return &report.SalaryResult{PredictedSalary: 90000, Currency: "USD", Period: "yearly"}, nil
}

func (s *stubAnalysis) ATSScore(ctx context.Context, resumeText, jobDescription string) (*report.ATSResult, error) {
	if s.failATS {
		return nil, errDown
	}
	return &report.ATSResult{ATSScore: 60}, nil
}

func validInput() report.CreateInput {
	return report.CreateInput{
		ResumeText:     "python react",
		JobDescription: "python docker",
		ResumeSkills:   []string{"python", "react"},
		JobSkills:      []string{"python", "docker"},
	}
}

func TestCreateMergesAllResponses(t *testing.T) {
	store := newMemReportStore()
	service := report.NewService(store, &stubAnalysis{}, zerolog.Nop())

	saved, details, err := service.Create(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	assert.Equal(t, "user-1", saved.UserID)
	assert.Equal(t, report.DefaultTitle, saved.Title)
	assert.Equal(t, 70.0, saved.MatchScore)
	assert.Equal(t, 60.0, saved.ATSScore)
	assert.Equal(t, 90000.0, saved.PredictedSalary)
	assert.Equal(t, []string{"python"}, saved.MatchedSkills)
	assert.Equal(t, []string{"docker"}, saved.MissingSkills)
	assert.Equal(t, "Found 1 common relevant keywords.", saved.SimilarityExplanation)
	assert.False(t, saved.ID.IsZero())

	require.NotNil(t, details)
	assert.Equal(t, 70.0, details.Match.MatchPercentage)
	assert.Equal(t, 90000.0, details.Salary.PredictedSalary)
}

func TestCreateKeepsProvidedTitle(t *testing.T) {
	store := newMemReportStore()
	service := report.NewService(store, &stubAnalysis{}, zerolog.Nop())

	input := validInput()
	input.Title = "Backend role at Acme"
	saved, _, err := service.Create(context.Background(), "user-1", input)
	require.NoError(t, err)
	assert.Equal(t, "Backend role at Acme", saved.Title)
}

func TestCreateRequiresTexts(t *testing.T) {
	service := report.NewService(newMemReportStore(), &stubAnalysis{}, zerolog.Nop())

	_, _, err := service.Create(context.Background(), "user-1", report.CreateInput{ResumeText: "python"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.FromError(err).Status)
}

func TestCreateAnyFailurePersistsNothing(t *testing.T) {
	cases := map[string]*stubAnalysis{
		"match down":  {failMatch: true},
		"skills down": {failSkills: true},
		"salary down": {failSalary: true},
		"ats down":    {failATS: true},
	}
	for name, analysis := range cases {
		t.Run(name, func(t *testing.T) {
			store := newMemReportStore()
			service := report.NewService(store, analysis, zerolog.Nop())

			_, _, err := service.Create(context.Background(), "user-1", validInput())
			require.Error(t, err)
			appErr := apperr.FromError(err)
			assert.Equal(t, http.StatusInternalServerError, appErr.Status)
			assert.Equal(t, "failed to generate report; ensure analysis service is running", appErr.Message)
			assert.Empty(t, store.reports, "no partial report may be persisted")
		})
	}
}

func TestListNewestFirst(t *testing.T) {
	store := newMemReportStore()
	service := report.NewService(store, &stubAnalysis{}, zerolog.Nop())

	for i := 0; i < 3; i++ {
		_, _, err := service.Create(context.Background(), "user-1", validInput())
		require.NoError(t, err)
	}
	_, _, err := service.Create(context.Background(), "user-2", validInput())
	require.NoError(t, err)

	reports, err := service.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, reports, 3)
	for i := 1; i < len(reports); i++ {
		assert.True(t, reports[i-1].CreatedAt.After(reports[i].CreatedAt),
			"reports must be in strictly descending creation order")
	}
}

func TestListEmptyIsNotNil(t *testing.T) {
	service := report.NewService(newMemReportStore(), &stubAnalysis{}, zerolog.Nop())

	reports, err := service.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, reports)
	assert.Empty(t, reports)
}

func TestGetOwnershipIndistinguishable(t *testing.T) {
	store := newMemReportStore()
	service := report.NewService(store, &stubAnalysis{}, zerolog.Nop())

	saved, _, err := service.Create(context.Background(), "user-a", validInput())
	require.NoError(t, err)

	// Owned: found.
	got, err := service.Get(context.Background(), "user-a", saved.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	// Someone else's report and a nonexistent id give the same error.
	_, notOwned := service.Get(context.Background(), "user-b", saved.ID.Hex())
	_, missing := service.Get(context.Background(), "user-b", primitive.NewObjectID().Hex())
	require.Error(t, notOwned)
	require.Error(t, missing)
	assert.Equal(t, apperr.FromError(missing).Status, apperr.FromError(notOwned).Status)
	assert.Equal(t, apperr.FromError(missing).Message, apperr.FromError(notOwned).Message)
	assert.Equal(t, http.StatusNotFound, apperr.FromError(notOwned).Status)
}
