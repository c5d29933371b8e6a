package projections

import (
	"context"
	"sort"
	"strings"

	"lessonbook/internal/application/listutil"
	"lessonbook/internal/domain/participant"
)

// Roster sort columns. An empty sort keeps enrollment order.
const (
	RosterSortName    = "name"
	RosterSortContact = "contact"
)

// RosterSortColumns lists the accepted sort parameters for the roster.
var RosterSortColumns = []string{RosterSortName, RosterSortContact}

// ParticipantRosterQuery carries query parameters.
type ParticipantRosterQuery struct {
	TeacherID string
	CourseID  string
	List      listutil.ListParams
}

// ParticipantRosterDeps holds dependencies for ParticipantRoster.
type ParticipantRosterDeps struct {
	CourseStore      CourseStore
	ParticipantStore ParticipantStore
}

// ParticipantRoster is one page of a course's participants.
type ParticipantRoster struct {
	Participants []participant.Participant
	Page         listutil.PageInfo
}

// QueryParticipantRoster searches, sorts and pages a course's participants.
// PRE: CourseID is non-empty
// POST: Search matches name or contact ignoring case; ties keep enrollment order
func QueryParticipantRoster(ctx context.Context, query ParticipantRosterQuery, deps ParticipantRosterDeps) (ParticipantRoster, error) {
	c, err := ownedCourse(ctx, deps.CourseStore, query.CourseID, query.TeacherID)
	if err != nil {
		return ParticipantRoster{}, err
	}
	all, err := deps.ParticipantStore.ListByCourseID(ctx, c.ID)
	if err != nil {
		return ParticipantRoster{}, err
	}

	matched := listutil.Filter(all, query.List.Search, func(p participant.Participant) []string {
		return []string{p.Name, p.Contact}
	})
	rows := make([]participant.Participant, len(matched))
	copy(rows, matched)

	if key := rosterSortKey(query.List.Sort); key != nil {
		desc := query.List.Descending()
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := key(rows[i]), key(rows[j])
			if desc {
				return a > b
			}
			return a < b
		})
	}

	page, info := listutil.Paginate(rows, query.List.PageParams)
	return ParticipantRoster{Participants: page, Page: info}, nil
}

func rosterSortKey(column string) func(participant.Participant) string {
	switch column {
	case RosterSortName:
		return func(p participant.Participant) string { return strings.ToLower(p.Name) }
	case RosterSortContact:
		return func(p participant.Participant) string { return strings.ToLower(p.Contact) }
	}
	return nil
}
