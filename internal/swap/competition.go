package swap

import (
	"time"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

// IsAfterCompetitionStart reports whether ts falls strictly after start.
// A transfer exactly at the start is still part of the setup window.
func IsAfterCompetitionStart(ts, start time.Time) bool {
	return ts.After(start)
}

// TransfersAfter keeps the transfers made strictly after start.
func TransfersAfter(transfers []model.Transfer, start time.Time) []model.Transfer {
	var out []model.Transfer
	for _, t := range transfers {
		if IsAfterCompetitionStart(t.Timestamp, start) {
			out = append(out, t)
		}
	}
	return out
}
