package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskTenancyExpireSweep closes tenancies whose end date has passed.
	TaskTenancyExpireSweep = "tenancy:expire_sweep"
	// TaskTenancyActivateSweep promotes upcoming tenancies whose start date arrived.
	TaskTenancyActivateSweep = "tenancy:activate_sweep"
	// TaskRentDueReminders messages tenants about upcoming rent.
	TaskRentDueReminders = "notify:rent_due"
	// TaskTenancyExpiryReminders warns tenants about tenancies that end soon.
	TaskTenancyExpiryReminders = "notify:tenancy_expiry"
)

// SweepPayload carries the reference time a sweep runs against.
type SweepPayload struct {
	AsOf time.Time `json:"as_of"`
}

func newSweepTask(taskType string, at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(SweepPayload{AsOf: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body, asynq.Queue(QueueDefault)), nil
}

// NewTenancyExpireSweepTask constructs an expire sweep task.
func NewTenancyExpireSweepTask(at time.Time) (*asynq.Task, error) {
	return newSweepTask(TaskTenancyExpireSweep, at)
}

// NewTenancyActivateSweepTask constructs an activate sweep task.
func NewTenancyActivateSweepTask(at time.Time) (*asynq.Task, error) {
	return newSweepTask(TaskTenancyActivateSweep, at)
}

// NewRentDueRemindersTask constructs a rent reminder task.
func NewRentDueRemindersTask(at time.Time) (*asynq.Task, error) {
	return newSweepTask(TaskRentDueReminders, at)
}

// NewTenancyExpiryRemindersTask constructs an expiry reminder task.
func NewTenancyExpiryRemindersTask(at time.Time) (*asynq.Task, error) {
	return newSweepTask(TaskTenancyExpiryReminders, at)
}
