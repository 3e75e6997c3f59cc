// Package api exposes the stored seasons and the analysis pipeline as a
// read-only JSON API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/nmoreland/gridiron/internal/features"
	"github.com/nmoreland/gridiron/internal/logger"
	"github.com/nmoreland/gridiron/internal/predict"
	"github.com/nmoreland/gridiron/internal/stats"
	"github.com/nmoreland/gridiron/internal/store"
)

// errNoData is returned when an analysis endpoint is hit before any scrape
// has populated the store.
var errNoData = errors.New("no stored seasons; run a scrape first")

// Server serves the read-only API over a season store.
type Server struct {
	store          *store.Store
	profileWeights features.ProfileWeights
	rankWeights    predict.RankWeights
	log            *logger.Logger
}

// NewServer creates a server over the given store. A nil logger falls back
// to the package default.
func NewServer(st *store.Store, pw features.ProfileWeights, rw predict.RankWeights, log *logger.Logger) *Server {
	return &Server{
		store:          st,
		profileWeights: pw,
		rankWeights:    rw,
		log:            log,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/years", s.handleYears).Methods(http.MethodGet)
	api.HandleFunc("/seasons/{year:[0-9]+}", s.handleSeason).Methods(http.MethodGet)
	api.HandleFunc("/correlations", s.handleCorrelations).Methods(http.MethodGet)
	api.HandleFunc("/rankings", s.handleRankings).Methods(http.MethodGet)
	r.Use(s.logRequests)
	return r
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	s.info("api listening", logger.Fields{"addr": addr})
	return srv.ListenAndServe()
}

func (s *Server) info(msg string, fields logger.Fields) {
	if s.log != nil {
		s.log.Info(msg, fields)
		return
	}
	logger.Info(msg, fields)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.info("request", logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.store.Years()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if years == nil {
		years = []int{}
	}
	writeJSON(w, http.StatusOK, map[string][]int{"years": years})
}

func (s *Server) handleSeason(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid year: %w", err))
		return
	}

	records, err := s.store.LoadSeasons(year, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, fmt.Errorf("no records for season %d", year))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":    year,
		"records": records,
	})
}

func (s *Server) handleCorrelations(w http.ResponseWriter, r *http.Request) {
	rows, err := s.historicalRows()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	_, correlations, err := predict.OutcomeCorrelations(rows)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	matrix, err := stats.CorrelationMatrix(predict.FeatureColumns(rows))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":                 len(rows),
		"outcome_correlations": correlations,
		"matrix":               matrix,
	})
}

// handleRankings fits on every stored season before the most recent one and
// ranks the most recent season's teams.
func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	years, err := s.store.Years()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(years) < 2 {
		writeError(w, http.StatusConflict,
			errors.New("need at least two stored seasons to rank: one to predict, the rest to train on"))
		return
	}
	target := years[len(years)-1]

	historical, err := s.store.LoadSeasons(0, target-1)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	candidates, err := s.store.LoadSeasons(target, target)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	histRows, err := features.Derive(historical, s.profileWeights)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	candRows, err := features.Derive(candidates, s.profileWeights)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	pipeline := predict.NewPipeline(s.profileWeights, s.rankWeights, s.log)
	rankings, diag, err := pipeline.Project(histRows, candRows)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"target_year": target,
		"diagnostics": diag,
		"rankings":    rankings,
	})
}

// historicalRows loads every stored record and derives features.
func (s *Server) historicalRows() ([]features.Row, error) {
	records, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errNoData
	}
	return features.Derive(records, s.profileWeights)
}

// statusFor maps pipeline errors onto HTTP statuses: bad stored data is the
// client's problem to fix (conflict), everything else is a server error.
func statusFor(err error) int {
	var inputErr *predict.InputError
	if errors.As(err, &inputErr) || errors.Is(err, errNoData) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
