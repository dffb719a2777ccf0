package store

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"growth-engine-be/pkg/llm"
)

// AnalysisResult is one finished analysis report. Records are immutable
// after creation; the only mutation the store supports is deletion.
type AnalysisResult struct {
	ID                  string        `json:"id"`
	StudentID           string        `json:"student_id"`
	Analysis            string        `json:"analysis"` // Hebrew markdown report
	ConversationHistory []llm.Message `json:"conversation_history,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	CreatedBy           string        `json:"created_by"` // teacher user id
}

// CreateInput carries the caller-supplied fields of a new record.
type CreateInput struct {
	StudentID           string
	Analysis            string
	ConversationHistory []llm.Message
	CreatedBy           string
}

// AnalysisStore keeps finished analyses in memory, keyed by a store-local
// integer id, with a secondary index from student id to analysis ids. Ids
// restart from 1 on every process start; durable copies land in the archive
// table via the consumer.
type AnalysisStore struct {
	mu        sync.RWMutex
	analyses  map[string]*AnalysisResult
	byStudent map[string][]string
	nextID    int
	seq       map[string]int // insertion order, breaks createdAt ties
}

func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{
		analyses:  make(map[string]*AnalysisResult),
		byStudent: make(map[string][]string),
		nextID:    1,
		seq:       make(map[string]int),
	}
}

func (s *AnalysisStore) Create(in CreateInput) *AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	rec := &AnalysisResult{
		ID:                  id,
		StudentID:           in.StudentID,
		Analysis:            in.Analysis,
		ConversationHistory: in.ConversationHistory,
		CreatedAt:           time.Now(),
		CreatedBy:           in.CreatedBy,
	}

	s.analyses[id] = rec
	s.byStudent[in.StudentID] = append(s.byStudent[in.StudentID], id)
	s.seq[id] = len(s.seq)

	return rec
}

// GetAll returns every record, or only one student's records when studentId
// is non-empty, newest first.
func (s *AnalysisStore) GetAll(studentId string) []*AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*AnalysisResult
	if studentId != "" {
		for _, id := range s.byStudent[studentId] {
			// The index can briefly reference deleted records; skip them.
			if rec, ok := s.analyses[id]; ok {
				out = append(out, rec)
			}
		}
	} else {
		for _, rec := range s.analyses {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] > s.seq[out[j].ID]
	})
	return out
}

func (s *AnalysisStore) GetByID(id string) (*AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.analyses[id]
	return rec, ok
}

func (s *AnalysisStore) GetByStudentID(studentId string) []*AnalysisResult {
	return s.GetAll(studentId)
}

// GetLatestByStudentID returns the newest record for the student, or false
// when they have none.
func (s *AnalysisStore) GetLatestByStudentID(studentId string) (*AnalysisResult, bool) {
	recs := s.GetAll(studentId)
	if len(recs) == 0 {
		return nil, false
	}
	return recs[0], true
}

// Delete removes the record from the primary map and the student index.
// Returns false for unknown ids.
func (s *AnalysisStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.analyses[id]
	if !ok {
		return false
	}

	delete(s.analyses, id)
	delete(s.seq, id)

	ids := s.byStudent[rec.StudentID]
	filtered := ids[:0]
	for _, aid := range ids {
		if aid != id {
			filtered = append(filtered, aid)
		}
	}
	if len(filtered) > 0 {
		s.byStudent[rec.StudentID] = filtered
	} else {
		delete(s.byStudent, rec.StudentID)
	}

	return true
}
