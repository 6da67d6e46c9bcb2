package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"reviewhub/internal/app/server"
	"reviewhub/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		Environment:        "test",
		SeedOrgName:        "Test Organization",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		EmailFrom:          "no-reply@test.local",
		RunMigrations:      true,
		MigrationsDir:      "../../../../migrations",
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     true,
	}
}

func TestReviewCycleJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	orgID := seedOrgID(t, app, cfg.SeedOrgName)
	reviewee := createEmployee(t, app, orgID, "Riya Sharma", "Engineering")
	reviewerOne := createEmployee(t, app, orgID, "Mohan Kumar", "Engineering")
	reviewerTwo := createEmployee(t, app, orgID, "Leela Nair", "Engineering")

	questionnaireID := createQuestionnaire(t, client, ts.URL, token)

	cycleID := createCycle(t, client, ts.URL, token, questionnaireID)

	// Draft cycles only transition to open.
	status, env := postStatus(t, client, ts.URL, token, cycleID, "closed")
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for draft to closed, got %d", status)
	}
	if env.Error == nil || env.Error.Message != "Draft cycle can only be opened" {
		t.Fatalf("unexpected transition error: %+v", env.Error)
	}

	status, _ = postStatus(t, client, ts.URL, token, cycleID, "open")
	if status != http.StatusOK {
		t.Fatalf("expected 200 opening cycle, got %d", status)
	}

	addReceivers(t, client, ts.URL, token, cycleID, questionnaireID, []map[string]string{
		{"employeeId": reviewee, "fullName": "Riya Sharma", "department": "Engineering"},
	})

	assignReviewers(t, client, ts.URL, token, reviewee, cycleID, questionnaireID, []string{reviewerOne, reviewerTwo})

	provider := getProvider(t, client, ts.URL, token, reviewee, cycleID)
	employee, _ := provider["employee"].(map[string]any)
	if employee == nil || employee["fullName"] != "Riya Sharma" {
		t.Fatalf("expected provider view to carry the reviewee record, got %v", provider["employee"])
	}

	views := listReceivers(t, client, ts.URL, token, cycleID)
	if len(views) != 1 {
		t.Fatalf("expected 1 receiver view, got %d", len(views))
	}
	if views[0]["status"] != "in_progress" {
		t.Fatalf("expected receiver status in_progress after assignment, got %v", views[0]["status"])
	}

	submitResponse(t, client, ts.URL, token, reviewee, cycleID, reviewerOne)
	submitResponse(t, client, ts.URL, token, reviewee, cycleID, reviewerTwo)

	views = listReceivers(t, client, ts.URL, token, cycleID)
	if views[0]["status"] != "completed" {
		t.Fatalf("expected receiver status completed after all responses, got %v", views[0]["status"])
	}

	ratingID := computeRating(t, client, ts.URL, token, reviewee, cycleID)

	status, env = publishRating(t, client, ts.URL, token, ratingID)
	if status != http.StatusOK {
		t.Fatalf("expected 200 publishing rating, got %d", status)
	}
	status, env = publishRating(t, client, ts.URL, token, ratingID)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 republishing rating, got %d: %+v", status, env.Error)
	}

	summary := cycleSummary(t, client, ts.URL, token, cycleID)
	byStatus, _ := summary["byStatus"].(map[string]any)
	if byStatus["completed"].(float64) != 1 {
		t.Fatalf("expected 1 completed receiver in summary, got %v", summary["byStatus"])
	}

	events := listAuditEvents(t, client, ts.URL, token)
	if len(events) == 0 {
		t.Fatalf("expected audit trail entries after the review journey")
	}
	seen := map[string]bool{}
	for _, event := range events {
		if action, ok := event["action"].(string); ok {
			seen[action] = true
		}
	}
	if !seen["review.reviewers.assign"] || !seen["review.rating.publish"] {
		t.Fatalf("expected assign and publish actions in audit trail, got %v", seen)
	}
}

func TestCurrentCycleAndImmutability(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	now := time.Now().UTC()
	cycleID := createCycleWithDates(t, client, ts.URL, token,
		now.AddDate(0, 0, -5), now.AddDate(0, 0, 25))

	status, _ := postStatus(t, client, ts.URL, token, cycleID, "open")
	if status != http.StatusOK {
		t.Fatalf("expected 200 opening cycle, got %d", status)
	}

	resp := authedGet(t, client, ts.URL+"/api/v1/cycles/current", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected current cycle to resolve, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	if status, _ = postStatus(t, client, ts.URL, token, cycleID, "closed"); status != http.StatusOK {
		t.Fatalf("expected 200 closing cycle, got %d", status)
	}
	if status, _ = postStatus(t, client, ts.URL, token, cycleID, "published"); status != http.StatusOK {
		t.Fatalf("expected 200 publishing cycle, got %d", status)
	}

	// Published cycles reject both edits and further transitions.
	body := map[string]any{
		"name": "renamed", "type": "annual",
		"startDate": now.AddDate(0, 0, -5).Format("2006-01-02"),
		"endDate":   now.AddDate(0, 0, 25).Format("2006-01-02"),
		"selfEvalDeadline": now.Format("2006-01-02"),
		"feedbackDeadline": now.AddDate(0, 0, 10).Format("2006-01-02"),
	}
	status, env := doJSON(t, client, http.MethodPut, ts.URL+"/api/v1/cycles/"+cycleID, token, body)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 editing published cycle, got %d: %+v", status, env.Error)
	}
	if status, env = postStatus(t, client, ts.URL, token, cycleID, "open"); status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 transitioning published cycle, got %d: %+v", status, env.Error)
	}
}

func seedOrgID(t *testing.T, app *server.App, name string) string {
	t.Helper()
	var id string
	if err := app.Pool.QueryRow(context.Background(), "SELECT id FROM organizations WHERE name = $1", name).Scan(&id); err != nil {
		t.Fatalf("seed org lookup failed: %v", err)
	}
	return id
}

func createEmployee(t *testing.T, app *server.App, orgID, fullName, department string) string {
	t.Helper()
	var id string
	err := app.Pool.QueryRow(context.Background(), `
    INSERT INTO employees (organization_id, full_name, department, email)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, orgID, fullName, department, fmt.Sprintf("emp-%d@test.local", time.Now().UnixNano())).Scan(&id)
	if err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	return id
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "",
		map[string]string{"email": email, "password": password})
	if status != http.StatusOK {
		t.Fatalf("login failed with status %d", status)
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return payload.Token
}

func createQuestionnaire(t *testing.T, client *http.Client, baseURL, token string) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/questionnaires", token, map[string]any{
		"name":       fmt.Sprintf("Engineering Review %d", time.Now().UnixNano()),
		"department": "Engineering",
		"questions": []map[string]string{
			{"id": "q1", "text": fmt.Sprintf("How well does this person collaborate? %d", time.Now().UnixNano())},
			{"id": "q2", "text": "What should they improve?"},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create questionnaire failed with status %d: %+v", status, env.Error)
	}
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode questionnaire response: %v", err)
	}
	return payload.ID
}

func createCycle(t *testing.T, client *http.Client, baseURL, token, questionnaireID string) string {
	t.Helper()
	now := time.Now().UTC()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/cycles", token, map[string]any{
		"name":             fmt.Sprintf("Annual Review %d", time.Now().UnixNano()),
		"type":             "annual",
		"department":       "Engineering",
		"questionnaireId":  questionnaireID,
		"startDate":        now.Format("2006-01-02"),
		"endDate":          now.AddDate(0, 1, 0).Format("2006-01-02"),
		"selfEvalDeadline": now.AddDate(0, 0, 10).Format("2006-01-02"),
		"feedbackDeadline": now.AddDate(0, 0, 20).Format("2006-01-02"),
	})
	if status != http.StatusCreated {
		t.Fatalf("create cycle failed with status %d: %+v", status, env.Error)
	}
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode cycle response: %v", err)
	}
	return payload.ID
}

func createCycleWithDates(t *testing.T, client *http.Client, baseURL, token string, start, end time.Time) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/cycles", token, map[string]any{
		"name":             fmt.Sprintf("Window Review %d", time.Now().UnixNano()),
		"type":             "quarterly",
		"startDate":        start.Format("2006-01-02"),
		"endDate":          end.Format("2006-01-02"),
		"selfEvalDeadline": start.AddDate(0, 0, 7).Format("2006-01-02"),
		"feedbackDeadline": start.AddDate(0, 0, 14).Format("2006-01-02"),
	})
	if status != http.StatusCreated {
		t.Fatalf("create cycle failed with status %d: %+v", status, env.Error)
	}
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode cycle response: %v", err)
	}
	return payload.ID
}

func postStatus(t *testing.T, client *http.Client, baseURL, token, cycleID, next string) (int, envelope) {
	t.Helper()
	return doJSON(t, client, http.MethodPost, baseURL+"/api/v1/cycles/"+cycleID+"/status", token,
		map[string]string{"status": next})
}

func addReceivers(t *testing.T, client *http.Client, baseURL, token, cycleID, questionnaireID string, receivers []map[string]string) {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/cycles/"+cycleID+"/receivers", token, map[string]any{
		"questionnaireId": questionnaireID,
		"receivers":       receivers,
	})
	if status != http.StatusCreated {
		t.Fatalf("add receivers failed with status %d: %+v", status, env.Error)
	}
}

func assignReviewers(t *testing.T, client *http.Client, baseURL, token, employeeID, cycleID, questionnaireID string, reviewerIDs []string) {
	t.Helper()
	reviewers := make([]map[string]string, 0, len(reviewerIDs))
	for _, id := range reviewerIDs {
		reviewers = append(reviewers, map[string]string{"reviewerId": id, "role": "peer"})
	}
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/employees/"+employeeID+"/reviewers", token, map[string]any{
		"cycleId":         cycleID,
		"questionnaireId": questionnaireID,
		"reviewers":       reviewers,
	})
	if status != http.StatusCreated {
		t.Fatalf("assign reviewers failed with status %d: %+v", status, env.Error)
	}
}

func listReceivers(t *testing.T, client *http.Client, baseURL, token, cycleID string) []map[string]any {
	t.Helper()
	resp := authedGet(t, client, baseURL+"/api/v1/cycles/"+cycleID+"/receivers", token)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list receivers failed with status %d", resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode receivers response: %v", err)
	}
	var views []map[string]any
	if err := json.Unmarshal(env.Data, &views); err != nil {
		t.Fatalf("decode receiver views: %v", err)
	}
	return views
}

func getProvider(t *testing.T, client *http.Client, baseURL, token, employeeID, cycleID string) map[string]any {
	t.Helper()
	resp := authedGet(t, client, baseURL+"/api/v1/employees/"+employeeID+"/reviewers?cycleId="+cycleID, token)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get provider failed with status %d", resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode provider response: %v", err)
	}
	var provider map[string]any
	if err := json.Unmarshal(env.Data, &provider); err != nil {
		t.Fatalf("decode provider data: %v", err)
	}
	return provider
}

func listAuditEvents(t *testing.T, client *http.Client, baseURL, token string) []map[string]any {
	t.Helper()
	resp := authedGet(t, client, baseURL+"/api/v1/audit/events", token)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list audit events failed with status %d", resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode audit response: %v", err)
	}
	var events []map[string]any
	if err := json.Unmarshal(env.Data, &events); err != nil {
		t.Fatalf("decode audit events: %v", err)
	}
	return events
}

func submitResponse(t *testing.T, client *http.Client, baseURL, token, employeeID, cycleID, reviewerID string) {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/responses", token, map[string]any{
		"employeeId": employeeID,
		"cycleId":    cycleID,
		"reviewerId": reviewerID,
		"answers": []map[string]string{
			{"questionId": "q1", "answer": "Works well with the team."},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("submit response failed with status %d: %+v", status, env.Error)
	}
}

func computeRating(t *testing.T, client *http.Client, baseURL, token, employeeID, cycleID string) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/ratings/compute", token, map[string]string{
		"employeeId": employeeID,
		"cycleId":    cycleID,
	})
	if status != http.StatusCreated {
		t.Fatalf("compute rating failed with status %d: %+v", status, env.Error)
	}
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode rating response: %v", err)
	}
	return payload.ID
}

func publishRating(t *testing.T, client *http.Client, baseURL, token, ratingID string) (int, envelope) {
	t.Helper()
	return doJSON(t, client, http.MethodPost, baseURL+"/api/v1/ratings/"+ratingID+"/publish", token, nil)
}

func cycleSummary(t *testing.T, client *http.Client, baseURL, token, cycleID string) map[string]any {
	t.Helper()
	resp := authedGet(t, client, baseURL+"/api/v1/reports/cycles/"+cycleID+"/summary", token)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cycle summary failed with status %d", resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode summary response: %v", err)
	}
	var summary map[string]any
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("decode summary data: %v", err)
	}
	return summary
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response from %s %s: %v", method, url, err)
	}
	return resp.StatusCode, env
}

func authedGet(t *testing.T, client *http.Client, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}
