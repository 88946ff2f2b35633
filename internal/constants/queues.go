package constants

// Queue names served by the worker, with their asynq priority weights
const (
	QueueCritical = "critical" // payment bookkeeping
	QueueDefault  = "default"
	QueueLow      = "low"
)

var queueWeights = map[string]int{
	QueueCritical: 6,
	QueueDefault:  3,
	QueueLow:      1,
}

// GetAllQueues returns all valid queue names, highest priority first
func GetAllQueues() []string {
	return []string{QueueCritical, QueueDefault, QueueLow}
}

// IsValidQueue checks if queue name is valid
func IsValidQueue(queue string) bool {
	_, ok := queueWeights[queue]
	return ok
}

// QueueWeights returns the asynq queue configuration
func QueueWeights() map[string]int {
	out := make(map[string]int, len(queueWeights))
	for q, w := range queueWeights {
		out[q] = w
	}
	return out
}
