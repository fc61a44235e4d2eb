package review

import (
	"sort"
	"time"

	"github.com/studyloop/studyloop/store"
)

// maxConsecutiveSameLesson is the hard ordering constraint: at most this many
// consecutive cards may share the same (courseId, lessonIndex).
const maxConsecutiveSameLesson = 3

// Interleave reorders a session pool so that same-course cards are spaced
// apart. Pure function, no I/O; output is always a permutation of the input.
//
// Cards are grouped by course. Within each group, overdue cards come first,
// then ascending due date, ties broken by input order. Groups are visited
// round-robin starting from the group whose head card is due earliest,
// taking one card per group per round (two when there are at most two
// groups). A group is skipped for the round when taking from it would put
// four consecutive cards from the same lesson in the output; if every group
// is blocked, the remainder is drained in group order so no card is dropped.
//
// Inputs of three or fewer cards are returned unchanged: there is nothing
// useful to space apart.
func Interleave(cards []*store.Card, now time.Time) []*store.Card {
	if len(cards) <= maxConsecutiveSameLesson {
		return cards
	}

	nowTs := now.Unix()

	type group struct {
		cards    []*store.Card
		firstIdx int
	}
	byCourse := make(map[int32]*group)
	groups := make([]*group, 0)
	for i, card := range cards {
		g, ok := byCourse[card.CourseID]
		if !ok {
			g = &group{firstIdx: i}
			byCourse[card.CourseID] = g
			groups = append(groups, g)
		}
		g.cards = append(g.cards, card)
	}

	for _, g := range groups {
		sort.SliceStable(g.cards, func(i, j int) bool {
			overdueI := g.cards[i].DueTs < nowTs
			overdueJ := g.cards[j].DueTs < nowTs
			if overdueI != overdueJ {
				return overdueI
			}
			return g.cards[i].DueTs < g.cards[j].DueTs
		})
	}

	// Earliest-due group first; equal head due dates keep input order.
	sort.SliceStable(groups, func(i, j int) bool {
		di, dj := groups[i].cards[0].DueTs, groups[j].cards[0].DueTs
		if di != dj {
			return di < dj
		}
		return groups[i].firstIdx < groups[j].firstIdx
	})

	perRound := 2
	if len(groups) > 2 {
		perRound = 1
	}

	out := make([]*store.Card, 0, len(cards))
	remaining := len(cards)
	for remaining > 0 {
		progressed := false
		for _, g := range groups {
			taken := 0
			for len(g.cards) > 0 && taken < perRound {
				card := g.cards[0]
				if wouldCluster(out, card) {
					break
				}
				out = append(out, card)
				g.cards = g.cards[1:]
				remaining--
				taken++
				progressed = true
			}
		}
		if !progressed {
			// Every group is blocked on the lesson constraint. Drain in
			// group order: a constraint violation beats dropping cards.
			for _, g := range groups {
				out = append(out, g.cards...)
				remaining -= len(g.cards)
				g.cards = nil
			}
		}
	}
	return out
}

// wouldCluster reports whether appending card would produce more than
// maxConsecutiveSameLesson consecutive cards from one lesson.
func wouldCluster(out []*store.Card, card *store.Card) bool {
	if len(out) < maxConsecutiveSameLesson {
		return false
	}
	for i := len(out) - maxConsecutiveSameLesson; i < len(out); i++ {
		if out[i].CourseID != card.CourseID || out[i].LessonIndex != card.LessonIndex {
			return false
		}
	}
	return true
}
