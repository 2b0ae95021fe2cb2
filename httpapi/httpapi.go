// Package httpapi is the thinnest possible rebuild of the original system's
// api/handlers.rs: a net/http surface over the compiler. The teacher's own
// go.mod carries no HTTP framework, so this stays on the standard library,
// the same choice the teacher makes everywhere it needs a server (see
// enginetest's harnesses). spec.md §1 explicitly scopes HTTP handling out
// of the core; this package exists only because a deployed reportsql needs
// one, and it stays deliberately thin.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sqldef/reportsql/catalog"
	"github.com/sqldef/reportsql/planner"
	"github.com/sqldef/reportsql/report"
	"github.com/sqldef/reportsql/sqlgen"
	"github.com/sqldef/reportsql/store"
)

// Server wires a Catalog and optional execution/persistence collaborators
// into HTTP handlers. Engine and Repository may be the zero value; the
// /reports/run and save/run-by-name routes then answer with an error
// response.
type Server struct {
	Catalog    catalog.Catalog
	Engine     store.Engine
	Repository store.Repository
}

// Routes returns the mux this server answers on. /reports/save and
// /reports/run-by-name/{name} are the original system's save and
// run-by-name commands (original_source/src/domain/service.rs), rebuilt as
// HTTP routes over store.Repository.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/reports/compile", s.handleCompile)
	mux.HandleFunc("/reports/run", s.handleRun)
	mux.HandleFunc("/reports/save", s.handleSave)
	mux.HandleFunc("/reports/run-by-name/{name}", s.handleRunByName)
	return mux
}

type compileResponse struct {
	SQL string `json:"sql"`
}

type saveResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SQL  string `json:"sql"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	sql, err := s.compile(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, compileResponse{SQL: sql})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	sqlText, err := s.compile(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.executeAndRespond(w, r.Context(), sqlText)
}

// handleSave compiles the request body the same way handleCompile does,
// then persists it under the ?name= query parameter via Repository.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "save requires a ?name= query parameter"})
		return
	}
	if s.Repository.DB == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no report store configured"})
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := report.ParseJSON(body)
	if err != nil {
		writeError(w, err)
		return
	}

	tree, err := planner.New(s.Catalog).Plan(req)
	if err != nil {
		writeError(w, err)
		return
	}
	sqlText := sqlgen.Generate(tree)

	record, err := s.Repository.Save(r.Context(), name, req, sqlText)
	if err != nil {
		slog.Error("saving report failed", "error", err, "name", name)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, saveResponse{ID: record.ID.String(), Name: record.Name, SQL: record.SQL})
}

// handleRunByName looks up the most recently saved report under {name} and
// executes its stored SQL, the original system's run-by-name command.
func (s *Server) handleRunByName(w http.ResponseWriter, r *http.Request) {
	if s.Repository.DB == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no report store configured"})
		return
	}

	record, err := s.Repository.FindByName(r.Context(), r.PathValue("name"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	s.executeAndRespond(w, r.Context(), record.SQL)
}

func (s *Server) executeAndRespond(w http.ResponseWriter, ctx context.Context, sqlText string) {
	rows, err := s.Engine.Execute(ctx, sqlText)
	if err != nil {
		slog.Error("running compiled report failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		SQL     string   `json:"sql"`
		Columns []string `json:"columns"`
	}{SQL: sqlText, Columns: columns})
}

func (s *Server) compile(r *http.Request) (string, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}

	req, err := report.ParseJSON(body)
	if err != nil {
		return "", err
	}

	tree, err := planner.New(s.Catalog).Plan(req)
	if err != nil {
		return "", err
	}
	return sqlgen.Generate(tree), nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	var (
		cnf planner.ColumnNotFoundError
		mf  planner.MissingFilterError
	)
	status := http.StatusBadRequest
	if !errors.As(err, &cnf) && !errors.As(err, &mf) {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
