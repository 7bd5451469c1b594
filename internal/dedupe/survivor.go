package dedupe

import (
	"sort"
	"time"

	"github.com/peted77/hubspot-fun/internal/hubspot"
)

// pickContactSurvivor compares the enrolled contact and its single
// matched candidate by recency: the record with the more recent
// activity timestamp survives, the other becomes the merge target.
// Missing timestamps resolve to the epoch; on a tie the enrolled
// record survives.
func pickContactSurvivor(subject ContactSubject, candidate hubspot.Record) (survivorID, targetID string) {
	candidateActivity := parseTimestamp(candidate.Property(hubspot.PropLastAnalytics))
	if candidateActivity.After(subject.LastActivity) {
		return candidate.ID, subject.ID
	}
	return subject.ID, candidate.ID
}

// companyMember is one record competing for survivorship.
type companyMember struct {
	id               string
	createdAt        time.Time
	previouslyMerged bool
}

// selectCompanySurvivor elects the oldest record (by creation time)
// among the enrolled company and all matched candidates as survivor.
// This is a set-wide minimum, not a pairwise comparison. Every other record
// becomes a merge target, except previously merged records, which are
// skipped unless the firing strategy was the domain-equality tier:
// domain-confirmed duplicates are merged even if already partially
// processed. Ties on creation time break toward the smaller ID so the
// election does not depend on search result order.
func selectCompanySurvivor(subject CompanySubject, candidates []hubspot.Record, strategy string) (survivorID string, targets, skipped []string) {
	members := make([]companyMember, 0, len(candidates)+1)
	members = append(members, companyMember{
		id:               subject.ID,
		createdAt:        subject.CreatedAt,
		previouslyMerged: subject.PreviouslyMerged,
	})
	for _, candidate := range candidates {
		members = append(members, companyMember{
			id:               candidate.ID,
			createdAt:        parseTimestamp(candidate.Property(hubspot.PropCreateDate)),
			previouslyMerged: candidate.HasProperty(hubspot.PropMergedObjectID),
		})
	}

	sort.Slice(members, func(i, j int) bool {
		if !members[i].createdAt.Equal(members[j].createdAt) {
			return members[i].createdAt.Before(members[j].createdAt)
		}
		return members[i].id < members[j].id
	})

	survivorID = members[0].id
	mergeProtected := strategy != StrategyDomainExact
	for _, member := range members[1:] {
		if member.previouslyMerged && mergeProtected {
			skipped = append(skipped, member.id)
			continue
		}
		targets = append(targets, member.id)
	}
	return survivorID, targets, skipped
}
