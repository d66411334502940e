//go:build !gcloud

package config

// Validate has nothing to check for the default build: with no
// ALARM_TASKS_URL the service falls back to the in-process timer queue.
func (c *AlarmQueueConfig) Validate() error {
	return nil
}
