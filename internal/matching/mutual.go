// Package matching holds the mutuality rule for like intents. The production
// read path expresses the same rule as a SQL self-join; this form exists so
// the rule itself stays testable without a store.
package matching

import (
	"github.com/emgbraker/greencompanions/internal/domain"
	"github.com/emgbraker/greencompanions/internal/models"
)

// IsMutual reports whether a and b form a mutual match within the given
// intents: one pending intent a→b and one pending intent b→a.
func IsMutual(intents []models.Match, a, b uint) bool {
	if a == b {
		return false
	}
	var forward, reverse bool
	for _, in := range intents {
		if in.Status != domain.MatchStatusPending {
			continue
		}
		if in.UserID == a && in.MatchedUserID == b {
			forward = true
		}
		if in.UserID == b && in.MatchedUserID == a {
			reverse = true
		}
		if forward && reverse {
			return true
		}
	}
	return false
}
