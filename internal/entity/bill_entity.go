package entity

import (
	"time"
)

type Category string

const (
	CategoryCivic            Category = "civic"
	CategoryEducation        Category = "education"
	CategoryEngineering      Category = "engineering"
	CategoryHealthcare       Category = "healthcare"
	CategoryNotApplicable    Category = "not-applicable"
	CategoryAllPracticeAreas Category = "all-practice-areas"
)

// AllCategories lists every valid category value. Order matters for UI lists.
var AllCategories = []Category{
	CategoryCivic,
	CategoryEducation,
	CategoryEngineering,
	CategoryHealthcare,
	CategoryNotApplicable,
	CategoryAllPracticeAreas,
}

func (c Category) Valid() bool {
	for _, v := range AllCategories {
		if c == v {
			return true
		}
	}
	return false
}

type Stage string

const (
	StageIntroduced Stage = "introduced"
	StageCommittee  Stage = "committee"
	StageFloor      Stage = "floor"
	StagePassed     Stage = "passed"
	StageEnacted    Stage = "enacted"
)

// StageRank returns the position of a stage in the legislative pipeline,
// introduced = 0 through enacted = 4. Unknown stages rank as introduced.
func StageRank(s Stage) int {
	switch s {
	case StageCommittee:
		return 1
	case StageFloor:
		return 2
	case StagePassed:
		return 3
	case StageEnacted:
		return 4
	default:
		return 0
	}
}

func (s Stage) Valid() bool {
	switch s {
	case StageIntroduced, StageCommittee, StageFloor, StagePassed, StageEnacted:
		return true
	}
	return false
}

// Bill is the canonical in-memory record for one piece of legislation.
// StatusStage is always derived from RawStatus via the classifier, never
// taken from upstream. Id is stable across re-fetches of the same upstream
// record unless UnstableId is set (random fallback derivation).
type Bill struct {
	Id             string     `json:"id"`
	UnstableId     bool       `json:"unstable_id,omitempty"`
	Title          string     `json:"title"`
	BillNumber     *string    `json:"bill_number"`
	Jurisdiction   string     `json:"jurisdiction"`
	RawStatus      *string    `json:"raw_status"`
	StatusStage    Stage      `json:"status_stage"`
	Category       Category   `json:"category"`
	Summary        string     `json:"summary"`
	IntroducedDate *time.Time `json:"introduced_date"`
	LastActionDate *time.Time `json:"last_action_date"`
	SessionId      *string    `json:"session_id"`
	SessionName    *string    `json:"session_name"`
	Reviewed       bool       `json:"reviewed"`
	SourceUrl      *string    `json:"source_url"`
}

// SortDate is the date the pipeline orders by. Bills with neither date sort
// as the oldest possible value.
func (b *Bill) SortDate() time.Time {
	if b.IntroducedDate != nil {
		return *b.IntroducedDate
	}
	if b.LastActionDate != nil {
		return *b.LastActionDate
	}
	return time.Time{}
}

// SessionKey is what the session filter matches against: the session id when
// present, else the session name.
func (b *Bill) SessionKey() string {
	if b.SessionId != nil && *b.SessionId != "" {
		return *b.SessionId
	}
	if b.SessionName != nil {
		return *b.SessionName
	}
	return ""
}
