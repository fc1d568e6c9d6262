// ABOUTME: Form builder HTTP endpoints
// ABOUTME: Nested documents in and out, flattened wire records at rest
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/formdoc"
	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/table"
)

func (s *Server) registerFormRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/forms", s.handleListForms)
	mux.HandleFunc("POST /api/forms", s.handleCreateForm)
	mux.HandleFunc("GET /api/forms/new", s.handleNewForm)
	mux.HandleFunc("GET /api/forms/{id}", s.handleGetForm)
	mux.HandleFunc("PUT /api/forms/{id}", s.handleUpdateForm)
	mux.HandleFunc("DELETE /api/forms/{id}", s.handleDeleteForm)
	mux.HandleFunc("POST /api/forms/{id}/clone", s.handleCloneForm)
	mux.HandleFunc("POST /api/forms/{id}/questions/clone", s.handleCloneQuestion)
}

type formResponse struct {
	ID        string            `json:"id"`
	Mode      string            `json:"mode"`
	Document  *formdoc.Document `json:"document"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

func toFormResponse(rec *models.FormRecord, mode formdoc.Mode) formResponse {
	doc, err := formdoc.FromRecord(rec)
	if err != nil {
		// A corrupt section column still gets an editable seed.
		doc = formdoc.New()
		doc.Name = rec.Name
		doc.Title = rec.Title
		doc.Status = rec.Status
	}
	return formResponse{
		ID:        rec.ID.String(),
		Mode:      mode.String(),
		Document:  doc,
		CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: rec.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	forms, err := db.ListForms(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := table.Derive(forms, parseTableQuery(r), parseCriteria(r, models.DimStatus))
	writeJSON(w, http.StatusOK, listResponse{Data: result.Page, Total: result.Total})
}

// handleNewForm hands the client the create-mode seed: one empty section
// holding one empty text question.
func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request) {
	mode := formdoc.ResolveMode("", false, "")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mode":     mode.String(),
		"document": formdoc.New(),
	})
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	var doc formdoc.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := formdoc.Validate(&doc); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := formdoc.ToRecord(&doc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := db.CreateForm(s.db, rec); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Form created", doc.Name)
	writeJSON(w, http.StatusCreated, toFormResponse(rec, formdoc.ResolveMode(rec.ID.String(), false, "")))
}

func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := db.GetForm(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, errors.New("form not found"))
		return
	}

	preview := r.URL.Query().Get("preview") == "true" || r.URL.Query().Get("preview") == "1"
	writeJSON(w, http.StatusOK, toFormResponse(rec, formdoc.ResolveMode(rec.ID.String(), preview, "")))
}

func (s *Server) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	existing, err := db.GetForm(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, errors.New("form not found"))
		return
	}

	var doc formdoc.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := formdoc.Validate(&doc); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := formdoc.ToRecord(&doc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rec.ID = id
	rec.CreatedAt = existing.CreatedAt

	if err := db.UpdateForm(s.db, id, rec); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Form updated", doc.Name)
	writeJSON(w, http.StatusOK, toFormResponse(rec, formdoc.ResolveMode(id.String(), false, "")))
}

// handleCloneForm seeds a new form from an existing one. The copy always
// creates a fresh record, even when the source was loaded for editing.
func (s *Server) handleCloneForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	src, err := db.GetForm(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if src == nil {
		writeError(w, http.StatusNotFound, errors.New("form not found"))
		return
	}

	doc, err := formdoc.FromRecord(src)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	rec, err := formdoc.ToRecord(formdoc.CloneSeed(doc))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := db.CreateForm(s.db, rec); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Form cloned", rec.Name)
	writeJSON(w, http.StatusCreated, toFormResponse(rec, formdoc.ResolveMode(rec.ID.String(), false, id.String())))
}

// handleCloneQuestion duplicates one question inside a section, inserting the
// copy right after the original, and persists the reshaped document.
func (s *Server) handleCloneQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Section  int `json:"section"`
		Question int `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := db.GetForm(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, errors.New("form not found"))
		return
	}

	doc, err := formdoc.FromRecord(rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if req.Section < 0 || req.Section >= len(doc.Sections) {
		writeError(w, http.StatusBadRequest, errors.New("section index out of range"))
		return
	}
	sec := &doc.Sections[req.Section]
	if req.Question < 0 || req.Question >= len(sec.Questions) {
		writeError(w, http.StatusBadRequest, errors.New("question index out of range"))
		return
	}

	formdoc.CloneQuestion(sec, req.Question)

	updated, err := formdoc.ToRecord(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	updated.ID = id
	updated.CreatedAt = rec.CreatedAt

	if err := db.UpdateForm(s.db, id, updated); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Question cloned", rec.Name)
	writeJSON(w, http.StatusOK, toFormResponse(updated, formdoc.ResolveMode(id.String(), false, "")))
}

func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := db.DeleteForm(s.db, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.notify("Form deleted", id.String())
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
