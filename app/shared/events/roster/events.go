// Package rosterevents defines the roster module's event topics and
// payloads.
package rosterevents

import (
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// Stream name for all roster subjects.
const RosterStreamName = "roster"

// Topics.
const (
	RosterImportRequestedV1 = "roster.import.requested.v1"
	RosterImportCompletedV1 = "roster.import.completed.v1"
	RosterImportFailedV1    = "roster.import.failed.v1"

	// RosterUpdatedV1 fans out after any successful import so downstream
	// consumers can invalidate and recompute.
	RosterUpdatedV1 = "roster.updated.v1"
)

// RosterImportRequestedPayloadV1 carries an uploaded roster file and the
// organizer's column mapping. FileData is base64 over the wire.
type RosterImportRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	FileName     string                   `json:"file_name"`
	FileData     []byte                   `json:"file_data"`
	ColumnMap    sharedtypes.ColumnMap    `json:"column_map"`
}

// RosterImportCompletedPayloadV1 reports a finished import.
type RosterImportCompletedPayloadV1 struct {
	TournamentID     sharedtypes.TournamentID `json:"tournament_id"`
	RowsImported     int                      `json:"rows_imported"`
	RowsSkipped      int                      `json:"rows_skipped"`
	NeedsReviewCount int                      `json:"needs_review_count"`
	Warnings         []sharedtypes.RowWarning `json:"warnings,omitempty"`
}

// RosterImportFailedPayloadV1 reports an import that produced no roster.
type RosterImportFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	FileName     string                   `json:"file_name"`
	Reason       string                   `json:"reason"`
}

// RosterUpdatedPayloadV1 announces that a tournament's roster changed.
type RosterUpdatedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	RowCount     int                      `json:"row_count"`
}
