package rosterservice

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/Fifty-Move-Club/podium/app/modules/roster/application/parsers"
	rosterdb "github.com/Fifty-Move-Club/podium/app/modules/roster/infrastructure/repositories"
	rosterevents "github.com/Fifty-Move-Club/podium/app/shared/events/roster"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// ImportRoster parses, normalizes, and persists an uploaded roster file.
// Parse and mapping problems are domain failures carried in the result;
// infrastructure problems surface as errors.
func (s *RosterService) ImportRoster(ctx context.Context, tournamentID sharedtypes.TournamentID, fileName string, fileData []byte, columnMap sharedtypes.ColumnMap) (ImportResult, error) {
	return withTelemetry(s, ctx, "ImportRoster", tournamentID.String(), func(ctx context.Context) (ImportResult, error) {
		failure := func(reason string) ImportResult {
			p := rosterevents.RosterImportFailedPayloadV1{
				TournamentID: tournamentID,
				FileName:     fileName,
				Reason:       reason,
			}
			return ImportResult{Failure: &p}
		}

		if !columnMap.Has(sharedtypes.FieldFullName) {
			return failure("column map does not locate the full_name column"), nil
		}

		raw, err := parsers.ParseRoster(fileName, fileData)
		if err != nil {
			return failure(err.Error()), nil
		}

		normalized := NormalizeRoster(tournamentID, raw, columnMap)
		if len(normalized.Competitors) == 0 {
			return failure("no competitor rows found in file"), nil
		}

		rows := make([]*rosterdb.Competitor, 0, len(normalized.Competitors))
		for i := range normalized.Competitors {
			rows = append(rows, rosterdb.FromShared(normalized.Competitors[i]))
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (ImportResult, error) {
			if err := s.repo.ReplaceRoster(ctx, db, tournamentID, rows); err != nil {
				return ImportResult{}, err
			}

			if s.metrics != nil {
				s.metrics.RecordRowsImported(ctx, len(rows))
				for i := range normalized.Competitors {
					s.metrics.RecordGenderInferred(ctx, string(normalized.Competitors[i].Gender))
				}
			}

			p := rosterevents.RosterImportCompletedPayloadV1{
				TournamentID:     tournamentID,
				RowsImported:     len(rows),
				RowsSkipped:      normalized.RowsSkipped,
				NeedsReviewCount: normalized.NeedsReviewCount,
				Warnings:         normalized.Warnings,
			}
			return ImportResult{Success: &p}, nil
		})
	})
}
