package transfer

import (
	"time"

	"github.com/google/uuid"

	"github.com/David-Botos/movie-ingress/pkg/model"
)

// CleaningJob represents one cleaning run over a dataset
type CleaningJob struct {
	ID         string    // Unique run identifier
	InputPath  string    // Raw dataset
	OutputPath string    // Cleaned dataset
	CreatedAt  time.Time // Job creation timestamp
}

// NewCleaningJob creates a new cleaning job with a fresh run ID
func NewCleaningJob(inputPath, outputPath string) CleaningJob {
	return CleaningJob{
		ID:         uuid.New().String(),
		InputPath:  inputPath,
		OutputPath: outputPath,
		CreatedAt:  time.Now(),
	}
}

// CleaningResult represents the result of a cleaning run
type CleaningResult struct {
	JobID         string
	InputPath     string
	OutputPath    string
	Success       bool
	Stats         model.CleaningStats
	Corrections   int
	RowsPublished int64
	Errors        []ErrorRecord
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

// NewCleaningResult initializes a result for a job
func NewCleaningResult(job CleaningJob) *CleaningResult {
	return &CleaningResult{
		JobID:      job.ID,
		InputPath:  job.InputPath,
		OutputPath: job.OutputPath,
		StartTime:  time.Now(),
		Errors:     make([]ErrorRecord, 0),
	}
}

// Complete marks the run as complete and calculates duration
func (r *CleaningResult) Complete(success bool) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Success = success
}

// AddError adds an error to the result
func (r *CleaningResult) AddError(err ErrorRecord) {
	r.Errors = append(r.Errors, err)
	r.Success = false
}
