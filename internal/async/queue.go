package async

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/visiting-cards/constants"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
)

// ErrQueueClosed is returned by Enqueue after Shutdown.
var ErrQueueClosed = errors.New("queue is shutting down")

// Job asks for one card image to be scanned and saved.
type Job struct {
	ID          uuid.UUID
	Path        string
	SubmittedAt time.Time
}

// NewJob creates a job for the image at path.
func NewJob(path string) Job {
	return Job{ID: uuid.New(), Path: path, SubmittedAt: time.Now()}
}

// Result reports how a job ended.
type Result struct {
	Job    Job
	Status constants.ScanStatus
	Card   *entity.Card
	Err    error
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// Processor turns a card image into a stored card.
type Processor interface {
	ProcessCard(ctx context.Context, path string) (*entity.Card, error)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, path string) (*entity.Card, error)

func (f ProcessorFunc) ProcessCard(ctx context.Context, path string) (*entity.Card, error) {
	return f(ctx, path)
}
