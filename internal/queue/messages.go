package queue

// Record source selectors for build messages.
const (
	SourceDirectory = "dir"
	SourceS3        = "s3"
)

// QueueBuildMsg asks the worker to build a collaboration graph from a record
// corpus and persist it under GraphName.
type QueueBuildMsg struct {
	Message         string `json:"message"`
	CorrelationID   string `json:"correlation_id"`
	GraphName       string `json:"graph_name"`
	Source          string `json:"source"`
	Path            string `json:"path"`
	IncludeIsolated bool   `json:"include_isolated"`
	SkipErrors      bool   `json:"skip_errors"`
}

// QueueDeleteMsg asks the worker to delete a stored graph.
type QueueDeleteMsg struct {
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id"`
	GraphName     string `json:"graph_name"`
}
