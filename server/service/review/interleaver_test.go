package review

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyloop/studyloop/store"
)

func interleaveCard(id, courseID, lessonIndex int32, dueTs int64) *store.Card {
	return &store.Card{
		ID:          id,
		UID:         fmt.Sprintf("card-%d", id),
		UserID:      1,
		CourseID:    courseID,
		LessonIndex: lessonIndex,
		DueTs:       dueTs,
	}
}

func TestInterleaveSmallInputUnchanged(t *testing.T) {
	for size := 0; size <= 3; size++ {
		cards := make([]*store.Card, 0, size)
		for i := 0; i < size; i++ {
			cards = append(cards, interleaveCard(int32(i+1), 1, 1, int64(i)))
		}
		out := Interleave(cards, testNow)
		require.Len(t, out, size)
		for i := range cards {
			require.Same(t, cards[i], out[i])
		}
	}
}

func TestInterleaveSpacesCourses(t *testing.T) {
	base := testNow.Unix() - 1000
	cards := []*store.Card{
		interleaveCard(1, 1, 1, base),
		interleaveCard(2, 1, 1, base+1),
		interleaveCard(3, 2, 1, base+2),
		interleaveCard(4, 2, 1, base+3),
	}
	out := Interleave(cards, testNow)
	require.Len(t, out, 4)
	// Two groups: two cards per group per round, starting with the
	// earliest-due group.
	require.Equal(t, int32(1), out[0].ID)
	require.Equal(t, int32(2), out[1].ID)
	require.Equal(t, int32(3), out[2].ID)
	require.Equal(t, int32(4), out[3].ID)
}

func TestInterleaveRoundRobinThreeCourses(t *testing.T) {
	base := testNow.Unix() - 1000
	cards := []*store.Card{
		interleaveCard(1, 1, 1, base),
		interleaveCard(2, 1, 1, base+10),
		interleaveCard(3, 2, 1, base+1),
		interleaveCard(4, 2, 1, base+11),
		interleaveCard(5, 3, 1, base+2),
		interleaveCard(6, 3, 1, base+12),
	}
	out := Interleave(cards, testNow)
	ids := make([]int32, 0, len(out))
	for _, c := range out {
		ids = append(ids, c.ID)
	}
	// More than two groups: one card per group per round.
	require.Equal(t, []int32{1, 3, 5, 2, 4, 6}, ids)
}

func TestInterleaveOverdueFirstWithinGroup(t *testing.T) {
	overdue := testNow.Unix() - 3600
	future := testNow.Unix() + 3600
	cards := []*store.Card{
		interleaveCard(1, 1, 1, future),
		interleaveCard(2, 1, 2, overdue),
		interleaveCard(3, 1, 3, future-1),
		interleaveCard(4, 1, 4, overdue+1),
	}
	out := Interleave(cards, testNow)
	require.Equal(t, int32(2), out[0].ID)
	require.Equal(t, int32(4), out[1].ID)
}

func TestInterleavePermutationProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, size := range []int{0, 1, 2, 3, 4, 10, 50, 100, 250, 500} {
		cards := make([]*store.Card, 0, size)
		for i := 0; i < size; i++ {
			cards = append(cards, interleaveCard(
				int32(i+1),
				int32(rng.Intn(5)+1),
				int32(rng.Intn(4)+1),
				testNow.Unix()+int64(rng.Intn(200000)-100000),
			))
		}
		out := Interleave(cards, testNow)
		require.Len(t, out, size, "size %d: card count changed", size)

		seen := make(map[int32]bool, size)
		for _, c := range out {
			require.False(t, seen[c.ID], "size %d: card %d duplicated", size, c.ID)
			seen[c.ID] = true
		}
		require.Len(t, seen, size, "size %d: cards dropped", size)
	}
}

func TestInterleaveConsecutiveLessonConstraint(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 200; trial++ {
		size := rng.Intn(100) + 4
		numLessons := rng.Intn(4) + 2 // at least two lessons so the constraint is satisfiable
		cards := make([]*store.Card, 0, size)
		for i := 0; i < size; i++ {
			cards = append(cards, interleaveCard(
				int32(i+1),
				int32(rng.Intn(3)+1),
				int32(rng.Intn(numLessons)+1),
				testNow.Unix()+int64(rng.Intn(100000)-50000),
			))
		}
		out := Interleave(cards, testNow)

		run := 1
		for i := 1; i < len(out); i++ {
			if out[i].CourseID == out[i-1].CourseID && out[i].LessonIndex == out[i-1].LessonIndex {
				run++
			} else {
				run = 1
			}
			if run > maxConsecutiveSameLesson {
				// Only acceptable when the remaining input could not
				// satisfy the constraint (drain path). Verify the tail is
				// lesson-uniform from here on out.
				for j := i; j < len(out); j++ {
					require.Equal(t, out[i].CourseID, out[j].CourseID,
						"trial %d: constraint violated outside drain path", trial)
				}
				break
			}
		}
	}
}

func TestInterleaveSingleLessonForcesDrain(t *testing.T) {
	base := testNow.Unix() - 1000
	cards := make([]*store.Card, 0, 10)
	for i := 0; i < 10; i++ {
		cards = append(cards, interleaveCard(int32(i+1), 1, 1, base+int64(i)))
	}
	out := Interleave(cards, testNow)
	require.Len(t, out, 10)
	for i, c := range out {
		require.Equal(t, int32(i+1), c.ID)
	}
}

func TestInterleaveDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cards := make([]*store.Card, 0, 60)
	for i := 0; i < 60; i++ {
		cards = append(cards, interleaveCard(
			int32(i+1),
			int32(rng.Intn(4)+1),
			int32(rng.Intn(3)+1),
			testNow.Unix(), // all equal: ties broken by input order
		))
	}
	first := Interleave(append([]*store.Card(nil), cards...), testNow)
	second := Interleave(append([]*store.Card(nil), cards...), testNow)
	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].ID, second[i].ID)
	}
}
