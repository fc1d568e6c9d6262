// ABOUTME: Tests for the HTTP admin API
// ABOUTME: Exercises the JSON endpoints, list filters, and the CSV export download
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database, err := db.OpenMemoryDatabase()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	srv := NewServer(database, nil, t.TempDir())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func createCompanyViaAPI(t *testing.T, ts *httptest.Server, name string) models.Company {
	t.Helper()
	resp := postJSON(t, ts.URL+"/api/companies", map[string]string{"name": name})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var company models.Company
	decodeJSON(t, resp, &company)
	return company
}

func TestCompanyRoundTrip(t *testing.T) {
	ts := setupTestServer(t)

	created := createCompanyViaAPI(t, ts, "Acme Corp")
	if created.Status != models.StatusActive {
		t.Errorf("Expected default status active, got %s", created.Status)
	}

	resp, err := http.Get(ts.URL + "/api/companies/" + created.ID.String())
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var fetched models.Company
	decodeJSON(t, resp, &fetched)
	if fetched.Name != "Acme Corp" {
		t.Errorf("Name lost: %q", fetched.Name)
	}
}

func TestCreateCompanyRequiresName(t *testing.T) {
	ts := setupTestServer(t)

	resp := postJSON(t, ts.URL+"/api/companies", map[string]string{"country": "US"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestGetCompanyNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/companies/3f0b8f62-0000-4000-8000-000000000000")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestListCompaniesWithFilters(t *testing.T) {
	ts := setupTestServer(t)

	for _, name := range []string{"Acme Corp", "Acme Labs", "Globex"} {
		createCompanyViaAPI(t, ts, name)
	}

	resp, err := http.Get(ts.URL + "/api/companies?q=acme&page_size=1")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	var list struct {
		Data  []models.Company `json:"data"`
		Total int              `json:"total"`
	}
	decodeJSON(t, resp, &list)

	if len(list.Data) != 1 {
		t.Errorf("Expected 1 result with page_size=1, got %d", len(list.Data))
	}
	if list.Total != 3 {
		t.Errorf("Expected total 3, got %d", list.Total)
	}
}

func TestUpdateCompanyPreservesIdentity(t *testing.T) {
	ts := setupTestServer(t)

	created := createCompanyViaAPI(t, ts, "Before")

	data, _ := json.Marshal(map[string]string{"name": "After", "status": models.StatusInactive})
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/companies/"+created.ID.String(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT failed: %v", err)
	}
	var updated models.Company
	decodeJSON(t, resp, &updated)

	if updated.ID != created.ID {
		t.Errorf("ID changed on update")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on update")
	}
	if updated.Name != "After" {
		t.Errorf("Name not updated: %q", updated.Name)
	}
}

func TestMemberEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	company := createCompanyViaAPI(t, ts, "Staffed")

	resp := postJSON(t, ts.URL+"/api/companies/"+company.ID.String()+"/members",
		map[string]string{"name": "Jo", "role": "signer"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var member models.Member
	decodeJSON(t, resp, &member)
	if member.CompanyID != company.ID {
		t.Errorf("Member not scoped to the company: %v", member.CompanyID)
	}

	listResp, err := http.Get(ts.URL + "/api/companies/" + company.ID.String() + "/members")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	var list struct {
		Data  []models.Member `json:"data"`
		Total int             `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	if list.Total != 1 || len(list.Data) != 1 {
		t.Errorf("Expected 1 member, got %d", list.Total)
	}
}

func TestDocumentSummaryEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	company := createCompanyViaAPI(t, ts, "Paper Co")
	for _, status := range []string{models.DocumentStatusPending, models.DocumentStatusPending, models.DocumentStatusCompleted} {
		resp := postJSON(t, ts.URL+"/api/documents", map[string]interface{}{
			"company_id":    company.ID,
			"document_type": models.DocumentTypeOther,
			"status":        status,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/api/documents/summary")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	var summary struct {
		Counts map[string]int `json:"counts"`
		Total  int            `json:"total"`
	}
	decodeJSON(t, resp, &summary)
	if summary.Total != 3 {
		t.Errorf("Expected total 3, got %d", summary.Total)
	}
	if summary.Counts[models.DocumentStatusPending] != 2 {
		t.Errorf("Expected 2 pending, got %d", summary.Counts[models.DocumentStatusPending])
	}
}

func TestExportEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	createCompanyViaAPI(t, ts, "Exported Co")

	url := ts.URL + "/api/export/companies?reason=" + strings.ReplaceAll("Quarterly compliance export", " ", "+")
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected a CSV content type, got %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "companies_export_") {
		t.Errorf("Expected the export filename in %q", cd)
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if !bytes.HasPrefix(body.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("Export is missing the UTF-8 BOM")
	}
	if !strings.Contains(body.String(), "Exported Co") {
		t.Error("Export is missing the company row")
	}
}

func TestExportEndpointRejectsShortReason(t *testing.T) {
	ts := setupTestServer(t)

	createCompanyViaAPI(t, ts, "Present Co")

	resp, err := http.Get(ts.URL + "/api/export/companies?reason=nope")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestExportEndpointEmpty(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/export/employees?reason=" + strings.ReplaceAll("Routine empty check run", " ", "+"))
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["message"] != "nothing to export" {
		t.Errorf("Expected the nothing-to-export message, got %v", body)
	}
}

func TestDeleteCompanyWithDocumentsConflicts(t *testing.T) {
	ts := setupTestServer(t)

	company := createCompanyViaAPI(t, ts, "Anchored")
	resp := postJSON(t, ts.URL+"/api/documents", map[string]interface{}{
		"company_id":    company.ID,
		"document_type": models.DocumentTypeContract,
	})
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/companies/"+company.ID.String(), nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	defer delResp.Body.Close()
	if delResp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 while documents exist, got %d", delResp.StatusCode)
	}
}

func TestFormEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	form := map[string]interface{}{
		"form_name":      "Vendor Intake",
		"form_title":     "Vendor Intake",
		"department_ids": []int64{1},
		"category_ids":   []int64{2},
		"sections": []map[string]interface{}{
			{
				"section_title": "Basics",
				"questions": []map[string]interface{}{
					{"question_text": "Full name", "question_type": "Text", "is_required": true},
				},
			},
		},
	}

	resp := postJSON(t, ts.URL+"/api/forms", form)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		ID       string `json:"id"`
		Document struct {
			Name   string `json:"form_name"`
			Status string `json:"status"`
		} `json:"document"`
	}
	decodeJSON(t, resp, &created)
	if created.Document.Name != "Vendor Intake" {
		t.Errorf("Name lost: %q", created.Document.Name)
	}
	if created.Document.Status != models.StatusDraft {
		t.Errorf("Expected default status draft, got %s", created.Document.Status)
	}

	cloneResp := postJSON(t, ts.URL+"/api/forms/"+created.ID+"/clone", nil)
	if cloneResp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201 for clone, got %d", cloneResp.StatusCode)
	}
	var clone struct {
		ID       string `json:"id"`
		Document struct {
			Name string `json:"form_name"`
		} `json:"document"`
	}
	decodeJSON(t, cloneResp, &clone)
	if clone.ID == created.ID {
		t.Error("Clone should get its own id")
	}
	if clone.Document.Name != "Vendor Intake (Copy)" {
		t.Errorf("Expected the copy marker, got %q", clone.Document.Name)
	}

	invalid := map[string]interface{}{"form_name": "Broken"}
	invalidResp := postJSON(t, ts.URL+"/api/forms", invalid)
	defer invalidResp.Body.Close()
	if invalidResp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for an invalid form, got %d", invalidResp.StatusCode)
	}
}

func createFormViaAPI(t *testing.T, ts *httptest.Server, name string) string {
	t.Helper()
	form := map[string]interface{}{
		"form_name":      name,
		"form_title":     name,
		"department_ids": []int64{1},
		"category_ids":   []int64{2},
		"sections": []map[string]interface{}{
			{
				"section_title": "Basics",
				"questions": []map[string]interface{}{
					{"question_text": "Full name", "question_type": "Text", "is_required": true},
					{"question_text": "Notes", "question_type": "Paragraph"},
				},
			},
		},
	}
	resp := postJSON(t, ts.URL+"/api/forms", form)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &created)
	return created.ID
}

func TestFormModeResolution(t *testing.T) {
	ts := setupTestServer(t)
	id := createFormViaAPI(t, ts, "Onboarding")

	newResp, err := http.Get(ts.URL + "/api/forms/new")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	var seed struct {
		Mode string `json:"mode"`
	}
	decodeJSON(t, newResp, &seed)
	if seed.Mode != "create" {
		t.Errorf("Expected create mode for the seed, got %q", seed.Mode)
	}

	editResp, err := http.Get(ts.URL + "/api/forms/" + id)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	var edit struct {
		Mode string `json:"mode"`
	}
	decodeJSON(t, editResp, &edit)
	if edit.Mode != "edit" {
		t.Errorf("Expected edit mode, got %q", edit.Mode)
	}

	previewResp, err := http.Get(ts.URL + "/api/forms/" + id + "?preview=1")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	var preview struct {
		Mode string `json:"mode"`
	}
	decodeJSON(t, previewResp, &preview)
	if preview.Mode != "preview" {
		t.Errorf("Expected preview mode, got %q", preview.Mode)
	}

	cloneResp := postJSON(t, ts.URL+"/api/forms/"+id+"/clone", nil)
	var clone struct {
		Mode string `json:"mode"`
	}
	decodeJSON(t, cloneResp, &clone)
	if clone.Mode != "clone" {
		t.Errorf("Expected clone mode, got %q", clone.Mode)
	}
}

func TestCloneQuestionEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	id := createFormViaAPI(t, ts, "Onboarding")

	resp := postJSON(t, ts.URL+"/api/forms/"+id+"/questions/clone",
		map[string]int{"section": 0, "question": 0})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var updated struct {
		Document struct {
			Sections []struct {
				Questions []struct {
					Text string `json:"question_text"`
				} `json:"questions"`
			} `json:"sections"`
		} `json:"document"`
	}
	decodeJSON(t, resp, &updated)
	questions := updated.Document.Sections[0].Questions
	if len(questions) != 3 {
		t.Fatalf("Expected 3 questions after the clone, got %d", len(questions))
	}
	if questions[0].Text != "Full name" || questions[1].Text != "Full name" {
		t.Errorf("Copy should sit right after the original: %q then %q", questions[0].Text, questions[1].Text)
	}
	if questions[2].Text != "Notes" {
		t.Errorf("Trailing question displaced: %q", questions[2].Text)
	}

	badResp := postJSON(t, ts.URL+"/api/forms/"+id+"/questions/clone",
		map[string]int{"section": 5, "question": 0})
	defer badResp.Body.Close()
	if badResp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for an out-of-range section, got %d", badResp.StatusCode)
	}
}

func TestNotificationsEndpointWithoutOutbox(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/notifications")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	var list struct {
		Total int `json:"total"`
	}
	decodeJSON(t, resp, &list)
	if list.Total != 0 {
		t.Errorf("Expected no notifications, got %d", list.Total)
	}
}

func TestUnknownExportModule(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(fmt.Sprintf("%s/api/export/widgets?reason=%s", ts.URL, "A+perfectly+good+justification"))
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}
