package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	awardservice "github.com/Fifty-Move-Club/podium/app/modules/award/application"
	institutionservice "github.com/Fifty-Move-Club/podium/app/modules/institution/application"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ResultsHandlers handles HTTP requests for computed prize results. All
// reads go through the allocation services, so responses come from the
// result cache when it is warm and from a fresh computation otherwise.
type ResultsHandlers struct {
	awardService       awardservice.Service
	institutionService institutionservice.Service
	health             HealthChecker
	logger             *slog.Logger
}

// NewResultsHandlers creates a new ResultsHandlers instance.
func NewResultsHandlers(
	awardService awardservice.Service,
	institutionService institutionservice.Service,
	health HealthChecker,
	logger *slog.Logger,
) *ResultsHandlers {
	return &ResultsHandlers{
		awardService:       awardService,
		institutionService: institutionService,
		health:             health,
		logger:             logger,
	}
}

func parseTournamentID(r *http.Request) (sharedtypes.TournamentID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "tournamentID"))
	if err != nil {
		return sharedtypes.TournamentID(uuid.Nil), err
	}
	return sharedtypes.TournamentID(id), nil
}

// GetIndividualAwards returns the individual allocation report.
func (h *ResultsHandlers) GetIndividualAwards(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := parseTournamentID(r)
	if err != nil {
		http.Error(w, "Invalid tournament ID", http.StatusBadRequest)
		return
	}

	result, err := h.awardService.AllocateIndividual(r.Context(), tournamentID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Individual award read failed",
			attr.TournamentID("tournament_id", tournamentID),
			attr.Error(err),
		)
		http.Error(w, fmt.Sprintf("Failed to compute awards: %v", err), http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		http.Error(w, result.Failure.Reason, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result.Success.Report); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
		return
	}
}

// GetIndividualAwardsChart returns the prize fund chart as a PNG.
func (h *ResultsHandlers) GetIndividualAwardsChart(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := parseTournamentID(r)
	if err != nil {
		http.Error(w, "Invalid tournament ID", http.StatusBadRequest)
		return
	}

	result, err := h.awardService.AllocateIndividual(r.Context(), tournamentID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Individual award chart read failed",
			attr.TournamentID("tournament_id", tournamentID),
			attr.Error(err),
		)
		http.Error(w, fmt.Sprintf("Failed to compute awards: %v", err), http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		http.Error(w, result.Failure.Reason, http.StatusNotFound)
		return
	}

	png, err := awardservice.RenderPrizeFundChart(&result.Success.Report, awardservice.DefaultChartPalette())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write chart response", attr.Error(err))
	}
}

// GetTeamPrizes returns the team allocation report.
func (h *ResultsHandlers) GetTeamPrizes(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := parseTournamentID(r)
	if err != nil {
		http.Error(w, "Invalid tournament ID", http.StatusBadRequest)
		return
	}

	result, err := h.institutionService.AllocateTeamPrizes(r.Context(), tournamentID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Team prize read failed",
			attr.TournamentID("tournament_id", tournamentID),
			attr.Error(err),
		)
		http.Error(w, fmt.Sprintf("Failed to compute team prizes: %v", err), http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		http.Error(w, result.Failure.Reason, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result.Success.Report); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
		return
	}
}

// GetTeamStandingsChart returns one group's standings chart as a PNG. The
// group is addressed by the slug of its label, matching the keys teams carry
// in the report.
func (h *ResultsHandlers) GetTeamStandingsChart(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := parseTournamentID(r)
	if err != nil {
		http.Error(w, "Invalid tournament ID", http.StatusBadRequest)
		return
	}
	groupKey := chi.URLParam(r, "groupKey")

	result, err := h.institutionService.AllocateTeamPrizes(r.Context(), tournamentID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Team standings chart read failed",
			attr.TournamentID("tournament_id", tournamentID),
			attr.Error(err),
		)
		http.Error(w, fmt.Sprintf("Failed to compute team prizes: %v", err), http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		http.Error(w, result.Failure.Reason, http.StatusNotFound)
		return
	}

	var group *sharedtypes.GroupStandings
	for i := range result.Success.Report.Groups {
		if slug.Make(result.Success.Report.Groups[i].GroupLabel) == groupKey {
			group = &result.Success.Report.Groups[i]
			break
		}
	}
	if group == nil {
		http.Error(w, "Group not found", http.StatusNotFound)
		return
	}

	png, err := institutionservice.RenderStandingsChart(group, institutionservice.DefaultChartPalette())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write chart response", attr.Error(err))
	}
}

// Healthz reports process liveness.
func (h *ResultsHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// Readyz reports whether the backing store is reachable.
func (h *ResultsHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.HealthCheck(r.Context()); err != nil {
			http.Error(w, fmt.Sprintf("Not ready: %v", err), http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}
