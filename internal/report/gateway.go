package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// checkResp reads the response body and returns an error if the status is not 2xx.
// On error it includes the upstream body for debugging.
func checkResp(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("ml-service %s returned %d: %s", path, resp.StatusCode, string(body))
}

// MatchResult is the response body of POST /match.
type MatchResult struct {
	MatchPercentage       float64  `json:"match_percentage"`
	MatchedKeywords       []string `json:"matched_keywords,omitempty"`
	SimilarityExplanation string   `json:"similarity_explanation,omitempty"`
}

// SkillGapResult is the response body of POST /skill-gap.
type SkillGapResult struct {
	MatchedSkills        []string `json:"matched_skills"`
	MissingSkills        []string `json:"missing_skills"`
	SkillCoveragePercent float64  `json:"skill_coverage_percent,omitempty"`
}

// SalaryResult is the response body of POST /salary.
type SalaryResult struct {
	PredictedSalary float64 `json:"predicted_salary"`
	Currency        string  `json:"currency,omitempty"`
	Period          string  `json:"period,omitempty"`
}

// ATSResult is the response body of POST /ats-score.
type ATSResult struct {
	ATSScore  float64           `json:"ats_score"`
	Breakdown map[string]string `json:"breakdown,omitempty"`
}

// AnalysisClient calls the Python ML service over HTTP. It is stateless:
// the four endpoints share nothing beyond the base URL. There is no retry
// and no circuit breaking; any failure fails the whole request.
type AnalysisClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAnalysisClient(baseURL string) *AnalysisClient {
	return &AnalysisClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: &http.Client{}}
}

// Match calls POST /match.
func (c *AnalysisClient) Match(ctx context.Context, resumeText, jobDescription string) (*MatchResult, error) {
	payload := map[string]string{
		"resume_text":     resumeText,
		"job_description": jobDescription,
	}
	var result MatchResult
	if err := c.post(ctx, "/match", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SkillGap calls POST /skill-gap.
func (c *AnalysisClient) SkillGap(ctx context.Context, resumeSkills, jobSkills []string) (*SkillGapResult, error) {
	payload := map[string]interface{}{
		"resume_skills": resumeSkills,
		"job_skills":    jobSkills,
	}
	var result SkillGapResult
	if err := c.post(ctx, "/skill-gap", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Salary calls POST /salary.
func (c *AnalysisClient) Salary(ctx context.Context, yearsExperience float64, skillCount, educationLevel int) (*SalaryResult, error) {
	payload := map[string]interface{}{
		"years_experience": yearsExperience,
		"skill_count":      skillCount,
		"education_level":  educationLevel,
	}
	var result SalaryResult
	if err := c.post(ctx, "/salary", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ATSScore calls POST /ats-score.
func (c *AnalysisClient) ATSScore(ctx context.Context, resumeText, jobDescription string) (*ATSResult, error) {
	payload := map[string]string{
		"resume_text":     resumeText,
		"job_description": jobDescription,
	}
	var result ATSResult
	if err := c.post(ctx, "/ats-score", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *AnalysisClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ml-service %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ml-service %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := checkResp(resp, path); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ml-service %s: decode: %w", path, err)
	}
	return nil
}
