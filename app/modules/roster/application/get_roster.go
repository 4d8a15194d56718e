package rosterservice

import (
	"context"
	"fmt"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// GetRoster returns the tournament's normalized roster ordered by rank.
// Returns rosterdb.ErrNotFound when no roster has been imported.
func (s *RosterService) GetRoster(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Competitor, error) {
	competitors, err := s.repo.GetByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("GetRoster: %w", err)
	}
	return competitors, nil
}
