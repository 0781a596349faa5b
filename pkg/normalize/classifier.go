package normalize

import (
	"strings"

	"legis-catalog-client/internal/entity"
)

// Compatibility shim for legacy literal status values that predate the
// keyword tables. Checked before the keyword groups, exact match only.
var exactStageMatches = map[string]entity.Stage{
	"enrolled":  entity.StagePassed,
	"engrossed": entity.StageFloor,
}

// Keyword groups checked in priority order. A status containing keywords
// from several groups resolves to the first group that matches, so
// "passed out of committee" is passed, not committee.
var stageKeywordGroups = []struct {
	stage    entity.Stage
	keywords []string
}{
	{entity.StageEnacted, []string{"enacted", "signed", "law", "approved by governor", "chaptered"}},
	{entity.StagePassed, []string{"passed", "enrolled", "concurred", "sent to governor"}},
	{entity.StageFloor, []string{"floor", "vote", "reading", "debate", "amended", "engrossed", "calendar"}},
	{entity.StageCommittee, []string{"committee", "referred", "hearing", "markup", "reported"}},
}

// Classify maps a free-text upstream status onto a pipeline stage. Total
// function: empty or unmatched input defaults to introduced because upstream
// status text is dirty and a wrong-but-plausible stage beats a hard failure.
func Classify(rawStatus string) entity.Stage {
	s := strings.ToLower(strings.TrimSpace(rawStatus))
	if s == "" {
		return entity.StageIntroduced
	}

	if stage, ok := exactStageMatches[s]; ok {
		return stage
	}

	for _, group := range stageKeywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(s, kw) {
				return group.stage
			}
		}
	}
	return entity.StageIntroduced
}
