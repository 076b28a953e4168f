package engagement

import "clubfloor/internal/domain"

// transitionKind is the mutation strategy a tag change requires.
type transitionKind int

const (
	// retagInPlace converts a waiting placeholder into a billable row.
	retagInPlace transitionKind = iota
	// closeAndReopen ends the current row and opens a fresh one, so each
	// billable category keeps its own priced, time-boxed record.
	closeAndReopen
	// statusUpdate moves between pure statuses on the same row.
	statusUpdate
)

// classify applies the transition rule for (current, next).
func classify(current, next domain.EngagementTag) transitionKind {
	if current == domain.EngagementWaiting && next.IsFee() {
		return retagInPlace
	}
	if next.IsFee() || current.IsFee() {
		return closeAndReopen
	}
	return statusUpdate
}

// currentTag reads a ledger row's effective tag: the fee category when the
// row is billable, otherwise its engagement status (a blank status counts as
// waiting).
func currentTag(o *domain.Order) domain.EngagementTag {
	switch o.Category {
	case domain.CategoryNomination:
		return domain.EngagementNomination
	case domain.CategoryCompanion:
		return domain.EngagementCompanion
	case domain.CategoryEscort:
		return domain.EngagementEscort
	}
	if o.Engagement == "" {
		return domain.EngagementWaiting
	}
	return o.Engagement
}
