package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/mwhitten/redline/internal/extract"
)

// JobStatus represents the state of an extraction job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusFormatting JobStatus = "formatting"
	StatusStoring    JobStatus = "storing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
)

// Job tracks the state of a single document extraction.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	formats  []string
	result   *extract.Result
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	CommentsFound  int      `json:"comments_found"`
	FormatsWritten int      `json:"formats_written"`
	FormatsTotal   int      `json:"formats_total"`
	Errors         []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetCommentsFound records how many comments survived reconciliation.
func (j *Job) SetCommentsFound(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.CommentsFound = n
	j.UpdatedAt = time.Now()
}

// SetFormatsTotal records how many output formats the job will write.
func (j *Job) SetFormatsTotal(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FormatsTotal = n
	j.UpdatedAt = time.Now()
}

// IncrFormatsWritten atomically increments the written-format count.
func (j *Job) IncrFormatsWritten() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FormatsWritten++
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetFormats sets the output formats the job should produce.
func (j *Job) SetFormats(formats []string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.formats = formats
}

// Formats returns the job's output formats.
func (j *Job) Formats() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.formats
}

// SetResult stores the extraction result for later retrieval.
func (j *Job) SetResult(res *extract.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
}

// Result returns the extraction result, or nil if the job has not
// completed extraction.
func (j *Job) Result() *extract.Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	DocID    string    `json:"doc_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		DocID:    j.DocID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Progress: Progress{
			CommentsFound:  j.Progress.CommentsFound,
			FormatsWritten: j.Progress.FormatsWritten,
			FormatsTotal:   j.Progress.FormatsTotal,
			Errors:         errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
