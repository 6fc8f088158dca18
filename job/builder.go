package job

import "time"

type Builder struct {
	job Job
}

// New starts a job with the given goal and producer. Priority defaults to
// DefaultPriority; every other optional field is empty.
func New(goal any, producer string) *Builder {
	return &Builder{
		job: Job{
			id:        generateID(),
			goal:      goal,
			producer:  producer,
			priority:  DefaultPriority,
			createdAt: time.Now(),
		},
	}
}

func (b *Builder) Data(data any) *Builder {
	b.job.data = data
	return b
}

func (b *Builder) Recipient(recipient string) *Builder {
	b.job.recipient = recipient
	return b
}

func (b *Builder) Priority(priority Priority) *Builder {
	b.job.priority = priority
	return b
}

func (b *Builder) Subscription(subscription Subscription) *Builder {
	b.job.subscription = subscription
	return b
}

// Build returns a copy of the job under construction. Calls made on the
// builder afterwards do not affect jobs already built.
func (b *Builder) Build() Job {
	return b.job
}
