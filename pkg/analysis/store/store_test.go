package store

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := NewAnalysisStore()

	for i := 1; i <= 3; i++ {
		rec := s.Create(CreateInput{StudentID: "student-1", Analysis: "report", CreatedBy: "teacher-1"})
		assert.Equal(t, strconv.Itoa(i), rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
	}
}

func TestGetAllSortedNewestFirst(t *testing.T) {
	s := NewAnalysisStore()
	s.Create(CreateInput{StudentID: "a", Analysis: "first"})
	s.Create(CreateInput{StudentID: "b", Analysis: "second"})
	s.Create(CreateInput{StudentID: "a", Analysis: "third"})

	all := s.GetAll("")
	assert.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Analysis)
	assert.Equal(t, "first", all[2].Analysis)

	forA := s.GetAll("a")
	assert.Len(t, forA, 2)
	assert.Equal(t, "third", forA[0].Analysis)
}

func TestGetByID(t *testing.T) {
	s := NewAnalysisStore()
	rec := s.Create(CreateInput{StudentID: "a", Analysis: "report"})

	got, ok := s.GetByID(rec.ID)
	assert.True(t, ok)
	assert.Equal(t, "report", got.Analysis)

	_, ok = s.GetByID("999")
	assert.False(t, ok)
}

func TestGetLatestByStudentID(t *testing.T) {
	s := NewAnalysisStore()
	_, ok := s.GetLatestByStudentID("a")
	assert.False(t, ok)

	s.Create(CreateInput{StudentID: "a", Analysis: "older"})
	s.Create(CreateInput{StudentID: "a", Analysis: "newer"})

	latest, ok := s.GetLatestByStudentID("a")
	assert.True(t, ok)
	assert.Equal(t, "newer", latest.Analysis)
}

func TestDeleteMaintainsStudentIndex(t *testing.T) {
	s := NewAnalysisStore()
	r1 := s.Create(CreateInput{StudentID: "a", Analysis: "one"})
	r2 := s.Create(CreateInput{StudentID: "a", Analysis: "two"})

	assert.True(t, s.Delete(r1.ID))
	assert.False(t, s.Delete(r1.ID))

	forA := s.GetByStudentID("a")
	assert.Len(t, forA, 1)
	assert.Equal(t, r2.ID, forA[0].ID)

	assert.True(t, s.Delete(r2.ID))
	assert.Empty(t, s.GetByStudentID("a"))
}
