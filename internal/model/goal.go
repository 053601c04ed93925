package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// NoteList is an ordered list of free-text progress notes, stored as a
// JSON-encoded TEXT column. Insertion order is preserved.
type NoteList []string

func (n NoteList) Value() (driver.Value, error) {
	if n == nil {
		n = NoteList{}
	}
	b, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (n *NoteList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*n = NoteList{}
		return nil
	case []byte:
		return json.Unmarshal(v, n)
	case string:
		return json.Unmarshal([]byte(v), n)
	default:
		return fmt.Errorf("cannot scan %T into NoteList", src)
	}
}

type Goal struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"-"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Progress    int        `db:"progress" json:"progress"`
	Streak      int        `db:"streak" json:"streak"`
	Notes       NoteList   `db:"notes" json:"notes"`
	TargetDate  *time.Time `db:"target_date" json:"targetDate"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	LastUpdated *time.Time `db:"last_updated" json:"lastUpdated"`

	// Loaded separately, not a column.
	Milestones []*Milestone `db:"-" json:"milestones,omitempty"`
}
