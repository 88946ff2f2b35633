package asynq

// Payload describes one job to enqueue
type Payload struct {
	TaskId   string // Asynq TaskID metadata; empty lets asynq generate one
	TaskType string // Asynq TaskType metadata
	Queue    string // Target queue; empty means default
	Data     any    // The Task Payload (JSON)
}
