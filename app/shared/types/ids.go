package sharedtypes

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

// ID types are distinct uuid-backed types so a competitor ID can never be
// passed where a category ID is expected. Each implements TextMarshaler for
// JSON payloads and Valuer/Scanner for uuid columns.

// TournamentID identifies a single tournament.
type TournamentID uuid.UUID

func (id TournamentID) String() string {
	return uuid.UUID(id).String()
}

func (id TournamentID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *TournamentID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id TournamentID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *TournamentID) Scan(src interface{}) error {
	return (*uuid.UUID)(id).Scan(src)
}

// CompetitorID identifies a roster entry within a tournament.
type CompetitorID uuid.UUID

func (id CompetitorID) String() string {
	return uuid.UUID(id).String()
}

func (id CompetitorID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *CompetitorID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id CompetitorID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *CompetitorID) Scan(src interface{}) error {
	return (*uuid.UUID)(id).Scan(src)
}

// CategoryID identifies an individual prize category.
type CategoryID uuid.UUID

func (id CategoryID) String() string {
	return uuid.UUID(id).String()
}

func (id CategoryID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *CategoryID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id CategoryID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *CategoryID) Scan(src interface{}) error {
	return (*uuid.UUID)(id).Scan(src)
}

// PrizeID identifies a prize place within a category or group.
type PrizeID uuid.UUID

func (id PrizeID) String() string {
	return uuid.UUID(id).String()
}

func (id PrizeID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *PrizeID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id PrizeID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *PrizeID) Scan(src interface{}) error {
	return (*uuid.UUID)(id).Scan(src)
}

// GroupID identifies an institution prize group.
type GroupID uuid.UUID

func (id GroupID) String() string {
	return uuid.UUID(id).String()
}

func (id GroupID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *GroupID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id GroupID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *GroupID) Scan(src interface{}) error {
	return (*uuid.UUID)(id).Scan(src)
}
