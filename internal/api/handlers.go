package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/consts"
	"github.com/codefionn/xl/internal/formula"
)

var errBadRef = errors.New("invalid cell reference")

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("failed to write response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorJSON{Error: err.Error()})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, consts.MaxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSheet(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	out := SheetJSON{Rows: s.sheet.Rows(), Cols: s.sheet.Cols(), Cells: []CellJSON{}}
	for _, ref := range s.sheet.Refs() {
		out.Cells = append(out.Cells, CellJSON{
			Ref:   ref.String(),
			Raw:   s.sheet.Cell(ref.Row, ref.Col),
			Value: s.engine.EvaluateCell(ref.Row, ref.Col),
		})
	}
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCell(label string) (CellJSON, error) {
	ref, ok := cellref.ParseRef(label)
	if !ok {
		return CellJSON{}, fmt.Errorf("%w: %q", errBadRef, label)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return CellJSON{
		Ref:   ref.String(),
		Raw:   s.sheet.Cell(ref.Row, ref.Col),
		Value: s.engine.EvaluateCell(ref.Row, ref.Col),
	}, nil
}

func (s *Server) handleGetCell(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	cell, err := s.getCell(ps.ByName("ref"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cell)
}

// setCell stores raw and evaluates it. SHELL formulas run only when the
// server has a runner; their output may rewrite other cells, in which case
// a sheet message follows the cell message.
func (s *Server) setCell(ctx context.Context, label, raw string) (CellJSON, error) {
	ref, ok := cellref.ParseRef(label)
	if !ok {
		return CellJSON{}, fmt.Errorf("%w: %q", errBadRef, label)
	}

	s.mu.Lock()
	s.sheet.SetCell(ref.Row, ref.Col, raw)
	s.sheet.Grow(ref.Row+1, ref.Col+1)
	before := s.sheet.Generation()

	var value string
	if s.opts.Runner != nil && formula.IsFormula(raw) {
		value = formula.New(s.sheet, formula.WithShell(s.opts.Runner, s.sheet)).EvaluateCellContext(ctx, ref.Row, ref.Col)
	} else {
		value = s.engine.EvaluateCell(ref.Row, ref.Col)
	}
	cell := CellJSON{Ref: ref.String(), Raw: s.sheet.Cell(ref.Row, ref.Col), Value: value}
	mutated := s.sheet.Generation() != before
	s.mu.Unlock()

	s.log.Info("set %s = %q -> %q", cell.Ref, raw, value)
	s.hub.Broadcast(&Message{Type: MessageTypeCell, Ref: cell.Ref, Raw: cell.Raw, Value: cell.Value})
	if mutated {
		s.hub.Broadcast(&Message{Type: MessageTypeSheet})
	}
	return cell, nil
}

func (s *Server) handlePutCell(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req SetCellRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Raw == nil {
		s.writeError(w, http.StatusBadRequest, errors.New(`missing "raw"`))
		return
	}
	cell, err := s.setCell(r.Context(), ps.ByName("ref"), *req.Raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cell)
}

// handleEval is a what-if evaluation; it never runs SHELL or writes cells.
func (s *Server) handleEval(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req EvalRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Formula == "" {
		s.writeError(w, http.StatusBadRequest, errors.New(`missing "formula"`))
		return
	}
	row, col := req.Row, req.Col
	if req.At != "" {
		ref, ok := cellref.ParseRef(req.At)
		if !ok {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", errBadRef, req.At))
			return
		}
		row, col = ref.Row, ref.Col
	}
	if row < 0 || col < 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("row and col must not be negative"))
		return
	}

	s.mu.Lock()
	value := s.engine.EvaluateFormulaContext(r.Context(), req.Formula, row, col)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, EvalResponse{Value: value})
}
