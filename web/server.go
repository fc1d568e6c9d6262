// ABOUTME: HTTP admin API server
// ABOUTME: JSON list/CRUD endpoints, status summaries, CSV export download, file uploads
package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/export"
	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/outbox"
	"github.com/opsdeck/opsdeck/table"
)

type Server struct {
	db        *sql.DB
	box       *outbox.Store
	uploadDir string
}

func NewServer(database *sql.DB, box *outbox.Store, uploadDir string) *Server {
	return &Server{db: database, box: box, uploadDir: uploadDir}
}

// Handler builds the route table. Kept separate from Start so tests can mount
// it on httptest servers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/companies", s.handleListCompanies)
	mux.HandleFunc("POST /api/companies", s.handleCreateCompany)
	mux.HandleFunc("GET /api/companies/{id}", s.handleGetCompany)
	mux.HandleFunc("PUT /api/companies/{id}", s.handleUpdateCompany)
	mux.HandleFunc("DELETE /api/companies/{id}", s.handleDeleteCompany)
	mux.HandleFunc("GET /api/companies/{id}/members", s.handleListMembers)
	mux.HandleFunc("POST /api/companies/{id}/members", s.handleCreateMember)

	mux.HandleFunc("GET /api/documents", s.handleListDocuments)
	mux.HandleFunc("GET /api/documents/summary", s.handleDocumentSummary)
	mux.HandleFunc("POST /api/documents", s.handleCreateDocument)
	mux.HandleFunc("GET /api/documents/{id}", s.handleGetDocument)
	mux.HandleFunc("PUT /api/documents/{id}", s.handleUpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", s.handleDeleteDocument)
	mux.HandleFunc("POST /api/documents/{id}/file", s.handleUploadDocumentFile)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("PUT /api/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("POST /api/templates", s.handleCreateTemplate)
	mux.HandleFunc("PUT /api/templates/{id}", s.handleUpdateTemplate)
	mux.HandleFunc("DELETE /api/templates/{id}", s.handleDeleteTemplate)

	mux.HandleFunc("GET /api/employees", s.handleListEmployees)
	mux.HandleFunc("POST /api/employees", s.handleCreateEmployee)
	mux.HandleFunc("PUT /api/employees/{id}", s.handleUpdateEmployee)
	mux.HandleFunc("DELETE /api/employees/{id}", s.handleDeleteEmployee)

	s.registerFormRoutes(mux)

	mux.HandleFunc("GET /api/export/{module}", s.handleExport)
	mux.HandleFunc("GET /api/notifications", s.handleListNotifications)

	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting admin API at http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// parseTableQuery reads page/page_size/sort/order/q from the URL.
func parseTableQuery(r *http.Request) table.Query {
	q := table.Query{Search: r.URL.Query().Get("q")}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		q.Page = page
	}
	if size, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil {
		q.PageSize = size
	}
	q.Sort = table.Sort{
		Key:   r.URL.Query().Get("sort"),
		Order: r.URL.Query().Get("order"),
	}
	return q
}

// parseCriteria collects repeated filter params (e.g. ?status=pending&status=completed)
// for the given dimensions, plus an optional from/to date range.
func parseCriteria(r *http.Request, dims ...string) table.Criteria {
	criteria := table.Criteria{Fields: map[string][]string{}}
	for _, dim := range dims {
		if values := r.URL.Query()[dim]; len(values) > 0 {
			criteria.Fields[dim] = values
		}
	}
	if from, err := time.Parse("2006-01-02", r.URL.Query().Get("from")); err == nil {
		criteria.From = &from
	}
	if to, err := time.Parse("2006-01-02", r.URL.Query().Get("to")); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		criteria.To = &end
	}
	return criteria
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

type listResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}

func (s *Server) notify(subject, body string) {
	if s.box == nil {
		return
	}
	if err := s.box.Put(outbox.NewNotification(subject, body)); err != nil {
		log.Printf("failed to enqueue notification: %v", err)
	}
}

func (s *Server) schedule(title, module string, eventAt time.Time) {
	if s.box == nil {
		return
	}
	if err := s.box.Put(outbox.NewSchedule(title, module, eventAt)); err != nil {
		log.Printf("failed to enqueue schedule: %v", err)
	}
}

// Companies

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := db.ListCompanies(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := table.Derive(companies, parseTableQuery(r), parseCriteria(r, models.DimStatus, models.DimCountry))
	writeJSON(w, http.StatusOK, listResponse{Data: result.Page, Total: result.Total})
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var company models.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if company.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	if err := db.CreateCompany(s.db, &company); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Company created", company.Name)
	writeJSON(w, http.StatusCreated, company)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	company, err := db.GetCompany(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if company == nil {
		writeError(w, http.StatusNotFound, errors.New("company not found"))
		return
	}

	writeJSON(w, http.StatusOK, company)
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	existing, err := db.GetCompany(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, errors.New("company not found"))
		return
	}

	var updates models.Company
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updates.ID = id
	updates.CreatedAt = existing.CreatedAt

	if err := db.UpdateCompany(s.db, id, &updates); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Company updated", updates.Name)
	writeJSON(w, http.StatusOK, updates)
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := db.DeleteCompany(s.db, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusConflict, err)
		return
	}

	s.notify("Company deleted", id.String())
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	members, err := db.ListCompanyMembers(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Data: members, Total: len(members)})
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var member models.Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if member.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}
	member.CompanyID = id

	if err := db.CreateMember(s.db, &member); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

// Account documents

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := db.ListAccountDocuments(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := table.Derive(docs, parseTableQuery(r), parseCriteria(r, models.DimStatus, models.DimType, models.DimCompany))
	writeJSON(w, http.StatusOK, listResponse{Data: result.Page, Total: result.Total})
}

func (s *Server) handleDocumentSummary(w http.ResponseWriter, r *http.Request) {
	counts, err := db.CountDocumentsByStatus(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"counts": counts, "total": total})
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var doc models.AccountDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := db.CreateAccountDocument(s.db, &doc); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.notify("Document created", doc.ID.String())
	if doc.IssuedAt != nil {
		label := doc.DocumentNo
		if label == "" {
			label = doc.ID.String()
		}
		s.schedule("Document issued: "+label, "account_documents", *doc.IssuedAt)
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := db.GetAccountDocument(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, errors.New("document not found"))
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	existing, err := db.GetAccountDocument(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, errors.New("document not found"))
		return
	}

	var updates models.AccountDocument
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updates.ID = id
	updates.CreatedAt = existing.CreatedAt
	if updates.FilePath == "" {
		// No new file means keep the existing one.
		updates.FilePath = existing.FilePath
	}

	if err := db.UpdateAccountDocument(s.db, id, &updates); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.notify("Document updated", id.String())
	writeJSON(w, http.StatusOK, updates)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := db.DeleteAccountDocument(s.db, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Document deleted", id.String())
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// handleUploadDocumentFile accepts a multipart upload for a document's file
// part. A request without the file part keeps the existing file.
func (s *Server) handleUploadDocumentFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := db.GetAccountDocument(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, errors.New("document not found"))
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	file, header, err := r.FormFile("document")
	if err == http.ErrMissingFile {
		writeJSON(w, http.StatusOK, doc)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	destPath := filepath.Join(s.uploadDir, id.String()+"_"+filepath.Base(header.Filename))
	dest, err := os.Create(destPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	doc.FilePath = destPath
	if err := db.UpdateAccountDocument(s.db, id, doc); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// Categories

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := db.ListCategories(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := table.Derive(categories, parseTableQuery(r), parseCriteria(r, models.DimStatus, models.DimParent))
	writeJSON(w, http.StatusOK, listResponse{Data: result.Page, Total: result.Total})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.ProductCategory
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if category.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	if err := db.CreateCategory(s.db, &category); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Category created", category.Name)
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	existing, err := db.GetCategory(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, errors.New("category not found"))
		return
	}

	var updates models.ProductCategory
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updates.ID = id
	updates.CreatedAt = existing.CreatedAt

	if err := db.UpdateCategory(s.db, id, &updates); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.notify("Category updated", updates.Name)
	writeJSON(w, http.StatusOK, updates)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := db.DeleteCategory(s.db, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Category deleted", id.String())
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// Email templates

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := db.ListEmailTemplates(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := table.Derive(templates, parseTableQuery(r), parseCriteria(r, models.DimStatus, models.DimCategory))
	writeJSON(w, http.StatusOK, listResponse{Data: result.Page, Total: result.Total})
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl models.EmailTemplate
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if tpl.Name == "" || tpl.Subject == "" {
		writeError(w, http.StatusBadRequest, errors.New("name and subject are required"))
		return
	}

	if err := db.CreateEmailTemplate(s.db, &tpl); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Email template created", tpl.Name)
	writeJSON(w, http.StatusCreated, tpl)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	existing, err := db.GetEmailTemplate(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, errors.New("template not found"))
		return
	}

	var updates models.EmailTemplate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updates.ID = id
	updates.CreatedAt = existing.CreatedAt

	if err := db.UpdateEmailTemplate(s.db, id, &updates); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Email template updated", updates.Name)
	writeJSON(w, http.StatusOK, updates)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := db.DeleteEmailTemplate(s.db, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Email template deleted", id.String())
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// Employees

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := db.ListEmployees(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := table.Derive(employees, parseTableQuery(r), parseCriteria(r, models.DimStatus, models.DimDepartment))
	writeJSON(w, http.StatusOK, listResponse{Data: result.Page, Total: result.Total})
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var emp models.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if emp.Name == "" || emp.Email == "" {
		writeError(w, http.StatusBadRequest, errors.New("name and email are required"))
		return
	}

	if err := db.CreateEmployee(s.db, &emp); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Employee added", emp.Name)
	if emp.JoinedAt != nil {
		s.schedule("Employee joins: "+emp.Name, "employees", *emp.JoinedAt)
	}
	writeJSON(w, http.StatusCreated, emp)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	existing, err := db.GetEmployee(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, errors.New("employee not found"))
		return
	}

	var updates models.Employee
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updates.ID = id
	updates.CreatedAt = existing.CreatedAt

	if err := db.UpdateEmployee(s.db, id, &updates); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Employee updated", updates.Name)
	writeJSON(w, http.StatusOK, updates)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := db.DeleteEmployee(s.db, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Employee deleted", id.String())
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// Export

// handleExport streams a CSV attachment of the module's currently filtered
// and sorted dataset. The reason query param is mandatory and audited before
// a single byte of CSV is written.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	module := r.PathValue("module")
	reason := r.URL.Query().Get("reason")

	header, rows, err := s.collectExport(module, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var buf bytes.Buffer
	fileName, err := export.NewExporter(s.db).Export(module, reason, header, rows, &buf)
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			writeJSON(w, http.StatusOK, map[string]string{"message": "nothing to export"})
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("failed to stream export: %v", err)
	}
}

func (s *Server) collectExport(module string, r *http.Request) ([]string, [][]string, error) {
	q := parseTableQuery(r)
	q.Page = 1
	q.PageSize = 1 << 30

	switch module {
	case export.ModuleCompanies:
		companies, err := db.ListCompanies(s.db)
		if err != nil {
			return nil, nil, err
		}
		result := table.Derive(companies, q, parseCriteria(r, models.DimStatus, models.DimCountry))
		header, rows := export.CompanyRows(result.Filtered)
		return header, rows, nil

	case export.ModuleAccountDocuments:
		docs, err := db.ListAccountDocuments(s.db)
		if err != nil {
			return nil, nil, err
		}
		companies, err := db.ListCompanies(s.db)
		if err != nil {
			return nil, nil, err
		}
		members, err := db.ListMembers(s.db)
		if err != nil {
			return nil, nil, err
		}
		result := table.Derive(docs, q, parseCriteria(r, models.DimStatus, models.DimType, models.DimCompany))
		header, rows := export.AccountDocumentRows(result.Filtered,
			export.CompanyNameIndex(companies), export.MemberNameIndex(members))
		return header, rows, nil

	case export.ModuleCategories:
		categories, err := db.ListCategories(s.db)
		if err != nil {
			return nil, nil, err
		}
		result := table.Derive(categories, q, parseCriteria(r, models.DimStatus, models.DimParent))
		header, rows := export.CategoryRows(result.Filtered, export.CategoryNameIndex(categories))
		return header, rows, nil

	case export.ModuleEmailTemplates:
		templates, err := db.ListEmailTemplates(s.db)
		if err != nil {
			return nil, nil, err
		}
		result := table.Derive(templates, q, parseCriteria(r, models.DimStatus, models.DimCategory))
		header, rows := export.EmailTemplateRows(result.Filtered)
		return header, rows, nil

	case export.ModuleEmployees:
		employees, err := db.ListEmployees(s.db)
		if err != nil {
			return nil, nil, err
		}
		departments, err := db.ListDepartments(s.db)
		if err != nil {
			return nil, nil, err
		}
		result := table.Derive(employees, q, parseCriteria(r, models.DimStatus, models.DimDepartment))
		header, rows := export.EmployeeRows(result.Filtered, export.DepartmentNameIndex(departments))
		return header, rows, nil

	case export.ModuleForms:
		forms, err := db.ListForms(s.db)
		if err != nil {
			return nil, nil, err
		}
		result := table.Derive(forms, q, parseCriteria(r, models.DimStatus))
		header, rows := export.FormRows(result.Filtered)
		return header, rows, nil
	}

	return nil, nil, fmt.Errorf("invalid module: %s", module)
}

// Notifications

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	if s.box == nil {
		writeJSON(w, http.StatusOK, listResponse{Data: []interface{}{}, Total: 0})
		return
	}

	notifications, err := s.box.List(outbox.KindNotification)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Data: notifications, Total: len(notifications)})
}
