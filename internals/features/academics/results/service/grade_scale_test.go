package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	enrollModel "lms_backend/internals/features/academics/enrollments/model"
)

func TestConvertScore(t *testing.T) {
	cases := []struct {
		score10 float64
		score4  float64
		letter  string
	}{
		{10.0, 4.0, "A"},
		{8.5, 4.0, "A"},
		{8.49, 3.5, "B+"},
		{8.0, 3.5, "B+"},
		{7.5, 3.0, "B"},
		{7.0, 3.0, "B"},
		{6.5, 2.5, "C+"},
		{5.5, 2.0, "C"},
		{5.0, 1.5, "D+"},
		{4.0, 1.0, "D"},
		{3.9, 0.0, "F"},
		{0.0, 0.0, "F"},
	}
	for _, tc := range cases {
		score4, letter := ConvertScore(tc.score10)
		assert.Equal(t, tc.score4, score4, "score10=%v", tc.score10)
		assert.Equal(t, tc.letter, letter, "score10=%v", tc.score10)
	}
}

func TestConvertScoreOutOfRangeFallsBack(t *testing.T) {
	for _, s := range []float64{-1, -0.01, 10.01, 42} {
		score4, letter := ConvertScore(s)
		assert.Equal(t, 0.0, score4, "score10=%v", s)
		assert.Equal(t, "F", letter, "score10=%v", s)
	}
}

// Partisi [0,10]: setiap nilai jatuh ke tepat satu bucket, tanpa celah.
func TestConvertScorePartition(t *testing.T) {
	prev4, prevLetter := ConvertScore(0)
	for s := 0.0; s <= 10.0; s += 0.01 {
		score4, letter := ConvertScore(s)
		assert.NotEmpty(t, letter)
		// skala 4 tidak pernah turun saat skor naik
		assert.GreaterOrEqual(t, score4, prev4, "score10=%v (prev %s)", s, prevLetter)
		prev4, prevLetter = score4, letter
	}
}

func TestSelectFinalFirst(t *testing.T) {
	t.Run("empty means no score", func(t *testing.T) {
		_, ok := SelectFinalFirst(nil)
		assert.False(t, ok)
	})

	t.Run("prefers final tag", func(t *testing.T) {
		grades := []enrollModel.Grade{
			{GradeType: "midterm", Score: 5.0},
			{GradeType: "final", Score: 8.0},
		}
		score, ok := SelectFinalFirst(grades)
		assert.True(t, ok)
		assert.Equal(t, 8.0, score)
	})

	t.Run("falls back to first entry", func(t *testing.T) {
		grades := []enrollModel.Grade{
			{GradeType: "midterm", Score: 6.0},
			{GradeType: "lab", Score: 9.0},
		}
		score, ok := SelectFinalFirst(grades)
		assert.True(t, ok)
		assert.Equal(t, 6.0, score)
	})
}

func TestSelectWeightedComposite(t *testing.T) {
	t.Run("combines by weight", func(t *testing.T) {
		grades := []enrollModel.Grade{
			{GradeType: "midterm", Score: 6.0, Weight: 0.4},
			{GradeType: "final", Score: 8.0, Weight: 0.6},
		}
		score, ok := SelectWeightedComposite(grades)
		assert.True(t, ok)
		assert.InDelta(t, 7.2, score, 1e-9)
	})

	t.Run("zero weights fall back to final-first", func(t *testing.T) {
		grades := []enrollModel.Grade{
			{GradeType: "midterm", Score: 6.0, Weight: 0},
			{GradeType: "final", Score: 8.0, Weight: 0},
		}
		score, ok := SelectWeightedComposite(grades)
		assert.True(t, ok)
		assert.Equal(t, 8.0, score)
	})

	t.Run("empty means no score", func(t *testing.T) {
		_, ok := SelectWeightedComposite(nil)
		assert.False(t, ok)
	})
}
