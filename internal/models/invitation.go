// Package models provides data structures for the toycard platform.
package models

import (
	"time"
)

// Invitation is the canonical wedding invitation record.
//
// A record with an empty ID is a draft: it lives only in the editing
// session and is never addressable by other users. The backend assigns
// the ID on first save.
type Invitation struct {
	ID             string `json:"id,omitempty"`
	OwnerID        string `json:"owner_id,omitempty"`
	GroomName      string `json:"groom_name"`
	GroomLastname  string `json:"groom_lastname"`
	BrideName      string `json:"bride_name"`
	BrideLastname  string `json:"bride_lastname"`
	// Date is a calendar date in "2006-01-02" form. Time is a clock
	// time in "15:04" form. At rest the two are combined into a single
	// UTC timestamp (see CombineDateTime / SplitDateTime).
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Hall     string `json:"hall"`
	Text     string `json:"text"`
	// BackgroundMusic selects a soundtrack from the fixed track set.
	BackgroundMusic string `json:"background_music"`
	// Template references a card template by identifier. Unknown
	// values resolve to the default template at render time.
	Template string `json:"template"`

	GroomPictureURL string `json:"groom_picture_url,omitempty"`
	BridePictureURL string `json:"bride_picture_url,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewDraft returns a fresh unsaved invitation with the default track
// and template selected.
func NewDraft() *Invitation {
	return &Invitation{
		BackgroundMusic: MusicYorYor,
		Template:        DefaultTemplate,
	}
}

// IsDraft returns true if the invitation has not been persisted yet.
func (i *Invitation) IsDraft() bool {
	return i.ID == ""
}

// Merge copies every non-zero field of partial into the invitation.
// Identity and timestamps are never merged; they belong to the backend.
func (i *Invitation) Merge(partial Invitation) {
	if partial.GroomName != "" {
		i.GroomName = partial.GroomName
	}
	if partial.GroomLastname != "" {
		i.GroomLastname = partial.GroomLastname
	}
	if partial.BrideName != "" {
		i.BrideName = partial.BrideName
	}
	if partial.BrideLastname != "" {
		i.BrideLastname = partial.BrideLastname
	}
	if partial.Date != "" {
		i.Date = partial.Date
	}
	if partial.Time != "" {
		i.Time = partial.Time
	}
	if partial.Location != "" {
		i.Location = partial.Location
	}
	if partial.Hall != "" {
		i.Hall = partial.Hall
	}
	if partial.Text != "" {
		i.Text = partial.Text
	}
	if partial.BackgroundMusic != "" {
		i.BackgroundMusic = partial.BackgroundMusic
	}
	if partial.Template != "" {
		i.Template = partial.Template
	}
	if partial.GroomPictureURL != "" {
		i.GroomPictureURL = partial.GroomPictureURL
	}
	if partial.BridePictureURL != "" {
		i.BridePictureURL = partial.BridePictureURL
	}
}
