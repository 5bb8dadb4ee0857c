package agent

import (
	"sync"
	"time"

	"github.com/edulabs-dev/eduagent/internal/domain"
)

// ProgressStore keeps per-student progress in memory.
type ProgressStore struct {
	mu       sync.RWMutex
	students map[string]*domain.StudentProgress
}

// NewProgressStore creates an empty progress store.
func NewProgressStore() *ProgressStore {
	return &ProgressStore{students: make(map[string]*domain.StudentProgress)}
}

// Record counts one answered question for the student and adds the concept
// to the learned list if new. Returns the updated snapshot.
func (s *ProgressStore) Record(studentID string, concept domain.ConceptType) domain.StudentProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, ok := s.students[studentID]
	if !ok {
		progress = &domain.StudentProgress{StudentID: studentID, ConceptsLearned: []string{}}
		s.students[studentID] = progress
	}

	progress.QuestionsAsked++
	if !progress.HasLearned(string(concept)) {
		progress.ConceptsLearned = append(progress.ConceptsLearned, string(concept))
	}
	progress.LastInteraction = time.Now().UTC()

	return snapshotProgress(progress)
}

// SetChainHash stores the latest on-chain progress hash for the student.
func (s *ProgressStore) SetChainHash(studentID, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if progress, ok := s.students[studentID]; ok {
		progress.ChainHash = hash
	}
}

// Progress returns a snapshot of one student's progress.
func (s *ProgressStore) Progress(studentID string) (domain.StudentProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	progress, ok := s.students[studentID]
	if !ok {
		return domain.StudentProgress{}, false
	}
	return snapshotProgress(progress), true
}

// Count returns the number of tracked students.
func (s *ProgressStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.students)
}

func snapshotProgress(progress *domain.StudentProgress) domain.StudentProgress {
	snapshot := *progress
	snapshot.ConceptsLearned = make([]string, len(progress.ConceptsLearned))
	copy(snapshot.ConceptsLearned, progress.ConceptsLearned)
	return snapshot
}
