package job

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Priority orders jobs in a hub queue. Lower values are more urgent.
type Priority int

// DefaultPriority is assigned to jobs built without an explicit priority.
const DefaultPriority Priority = 1

// Subscription is a callback a producer attaches to a job so that whichever
// module ends up handling the job can report back. The hub never invokes it.
type Subscription func(ctx context.Context, j Job) error

// Job is one unit of routed work. A Job is immutable once built: all fields
// are read through accessors and the builder hands out copies.
type Job struct {
	id           string
	goal         any
	producer     string
	data         any
	recipient    string
	priority     Priority
	subscription Subscription
	createdAt    time.Time
}

func (j Job) ID() string {
	return j.id
}

// Goal is the opaque intent token of the job.
func (j Job) Goal() any {
	return j.goal
}

// Producer identifies the module that created the job.
func (j Job) Producer() string {
	return j.producer
}

// Data is the payload. The hub never inspects it.
func (j Job) Data() any {
	return j.data
}

// Recipient is the identifier of the target module, or "" when unset.
func (j Job) Recipient() string {
	return j.recipient
}

func (j Job) HasRecipient() bool {
	return j.recipient != ""
}

func (j Job) Priority() Priority {
	return j.priority
}

func (j Job) Subscription() Subscription {
	return j.subscription
}

func (j Job) CreatedAt() time.Time {
	return j.createdAt
}

// Equal reports whether two jobs share a priority. Every other field is
// ignored.
func (j Job) Equal(other Job) bool {
	return j.priority == other.priority
}

// Less reports whether j is more urgent than other.
func (j Job) Less(other Job) bool {
	return j.priority < other.priority
}

// Notify invokes the job's subscription, if any.
func (j Job) Notify(ctx context.Context) error {
	if j.subscription == nil {
		return nil
	}
	return j.subscription(ctx, j)
}

func (j Job) String() string {
	return fmt.Sprintf(
		"Job{ID: %s, Goal: %v, Producer: %s, Recipient: %s, Priority: %d}",
		j.id,
		j.goal,
		j.producer,
		j.recipient,
		j.priority,
	)
}

// Compare orders jobs by priority only, for use with slices.SortFunc and
// similar helpers.
func Compare(a, b Job) int {
	return cmp.Compare(a.priority, b.priority)
}

func generateID() string {
	return uuid.Must(uuid.NewV7()).String()
}
