package normalize

import (
	"testing"

	"legis-catalog-client/internal/entity"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		rawStatus string
		want      entity.Stage
	}{
		{name: "empty defaults to introduced", rawStatus: "", want: entity.StageIntroduced},
		{name: "whitespace defaults to introduced", rawStatus: "   ", want: entity.StageIntroduced},
		{name: "unmatched defaults to introduced", rawStatus: "Prefiled", want: entity.StageIntroduced},
		{name: "exact enrolled shim", rawStatus: "Enrolled", want: entity.StagePassed},
		{name: "exact engrossed shim", rawStatus: "engrossed", want: entity.StageFloor},
		{name: "committee referral", rawStatus: "Referred to Committee on Appropriations", want: entity.StageCommittee},
		{name: "committee hearing", rawStatus: "Hearing scheduled", want: entity.StageCommittee},
		{name: "floor reading", rawStatus: "Second reading", want: entity.StageFloor},
		{name: "floor calendar", rawStatus: "Placed on calendar", want: entity.StageFloor},
		{name: "passed chamber", rawStatus: "Passed Senate", want: entity.StagePassed},
		{name: "sent to governor", rawStatus: "Sent to Governor", want: entity.StagePassed},
		{name: "signed into law", rawStatus: "Signed by Governor", want: entity.StageEnacted},
		{name: "chaptered", rawStatus: "Chaptered by Secretary of State", want: entity.StageEnacted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.rawStatus)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.rawStatus, got, tt.want)
			}
		})
	}
}

// Group order is load-bearing: a status matching several groups resolves to
// the highest-priority one.
func TestClassifyPriorityOrdering(t *testing.T) {
	tests := []struct {
		rawStatus string
		want      entity.Stage
	}{
		{"Passed out of committee", entity.StagePassed},
		{"Enacted after committee report", entity.StageEnacted},
		{"Signed; previously referred to committee", entity.StageEnacted},
		{"Committee vote scheduled", entity.StageFloor},
		{"Approved by Governor after floor debate", entity.StageEnacted},
	}

	for _, tt := range tests {
		got := Classify(tt.rawStatus)
		if got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.rawStatus, got, tt.want)
		}
	}
}

// Every enacted keyword must beat every committee keyword regardless of
// position in the string.
func TestClassifyEnactedBeatsCommittee(t *testing.T) {
	enacted := []string{"enacted", "signed", "law", "approved by governor", "chaptered"}
	committee := []string{"committee", "referred", "hearing", "markup", "reported"}

	for _, e := range enacted {
		for _, c := range committee {
			status := c + " then " + e
			if got := Classify(status); got != entity.StageEnacted {
				t.Errorf("Classify(%q) = %q, want enacted", status, got)
			}
		}
	}
}
