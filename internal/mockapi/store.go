// Package mockapi is a local, in-memory stand-in for the remote
// TaskFlow service. It implements the auth, task, activity, and job-search
// endpoints the SDK consumes, so the CLI and tests can run without the real
// backend.
package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

// User is a seeded account with its bcrypt password hash.
type User struct {
	domain.UserProfile
	PasswordHash string
}

// Store holds all mock state in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*User // keyed by lowercase email
	tasks    map[string]*domain.Task
	activity map[string][]domain.ActivityEntry
	jobs     []domain.Job
}

// SeedAccount describes a user to create at startup.
type SeedAccount struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// DefaultSeed is the account set the dev server boots with.
var DefaultSeed = []SeedAccount{
	{Name: "Ann Admin", Email: "admin@taskflow.dev", Password: "admin123", Role: domain.RoleAdmin},
	{Name: "Max Manager", Email: "manager@taskflow.dev", Password: "manager123", Role: domain.RoleManager},
	{Name: "Devi Developer", Email: "dev@taskflow.dev", Password: "dev123", Role: "Developer"},
}

// NewStore builds a store seeded with accounts and a small job corpus.
func NewStore(seed []SeedAccount) (*Store, error) {
	s := &Store{
		users:    make(map[string]*User),
		tasks:    make(map[string]*domain.Task),
		activity: make(map[string][]domain.ActivityEntry),
		jobs:     seedJobs(),
	}
	for _, acc := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		s.users[strings.ToLower(acc.Email)] = &User{
			UserProfile: domain.UserProfile{
				ID:    uuid.NewString(),
				Name:  acc.Name,
				Email: acc.Email,
				Role:  acc.Role,
			},
			PasswordHash: string(hash),
		}
	}
	return s, nil
}

// FindUserByEmail looks an account up case-insensitively.
func (s *Store) FindUserByEmail(email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

// FindUserByID resolves an account by its ID.
func (s *Store) FindUserByID(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ListTasks returns tasks matching filter, newest first.
func (s *Store) ListTasks(filter domain.TaskFilter) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Assignee != "" && (t.Assignee == nil || !strings.EqualFold(t.Assignee.Name, filter.Assignee)) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// GetTask returns the task with id.
func (s *Store) GetTask(id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

// CreateTask assigns an ID and timestamps and stores the task.
func (s *Store) CreateTask(t *domain.Task) *domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	t.ID = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now
	clone := *t
	s.tasks[t.ID] = &clone
	return t
}

// UpdateTask replaces the stored task's mutable fields.
func (s *Store) UpdateTask(id string, t *domain.Task) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	existing.Title = t.Title
	existing.Description = t.Description
	existing.Status = t.Status
	existing.Priority = t.Priority
	existing.Assignee = t.Assignee
	existing.DueDate = t.DueDate
	existing.UpdatedAt = time.Now().UTC()

	clone := *existing
	return &clone, nil
}

// DeleteTask removes the task with id.
func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// AppendActivity records a log entry for a task. Entries survive task
// deletion, matching the upstream service's audit behaviour.
func (s *Store) AppendActivity(entry domain.ActivityEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity[entry.TaskID] = append(s.activity[entry.TaskID], entry)
}

// ListActivity returns a task's log entries, newest first.
func (s *Store) ListActivity(taskID string) []domain.ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.activity[taskID]
	out := make([]domain.ActivityEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// SearchJobs returns jobs whose title matches every keyword, best score first.
// Empty keywords returns the whole corpus.
func (s *Store) SearchJobs(keywords string) []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(keywords))
	out := make([]domain.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		title := strings.ToLower(job.Title)
		matched := true
		for _, term := range terms {
			if !strings.Contains(title, term) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func seedJobs() []domain.Job {
	fetched := time.Now().UTC().Add(-6 * time.Hour)
	titles := []struct {
		title string
		score int
	}{
		{"Senior Go Backend Engineer (Remote)", 42},
		{"Platform Engineer - Kubernetes & Go", 35},
		{"Full Stack Developer - React / Node.js", 28},
		{"Backend Engineer - Payments", 21},
		{"Site Reliability Engineer", 14},
		{"Junior Frontend Developer", 7},
	}
	jobs := make([]domain.Job, 0, len(titles))
	for _, j := range titles {
		jobs = append(jobs, domain.Job{
			ID:        uuid.NewString(),
			Title:     j.title,
			Link:      "https://jobs.example.com/" + uuid.NewString(),
			Score:     j.score,
			Status:    domain.JobStatusNew,
			FetchedAt: fetched,
		})
	}
	return jobs
}
