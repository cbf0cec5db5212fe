package langsmith

import "time"

// Dataset is a LangSmith dataset
type Dataset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Example is one labeled dataset record
type Example struct {
	DatasetID string                 `json:"dataset_id"`
	Inputs    map[string]interface{} `json:"inputs"`
	Outputs   map[string]interface{} `json:"outputs,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Message is one turn of a conversation trace
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessagePayload wraps messages for run inputs/outputs
type MessagePayload struct {
	Messages []Message `json:"messages"`
}

// Run is a single trace submitted to a tracing project
type Run struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	RunType     string                 `json:"run_type"`
	Inputs      MessagePayload         `json:"inputs"`
	Outputs     MessagePayload         `json:"outputs"`
	SessionName string                 `json:"session_name"`
	StartTime   time.Time              `json:"start_time"`
	EndTime     time.Time              `json:"end_time"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}

// runQuery is the body for listing existing runs in a project
type runQuery struct {
	SessionName string `json:"session_name"`
	Limit       int    `json:"limit"`
}

// runList is the response envelope for a run query
type runList struct {
	Runs []Run `json:"runs"`
}

// datasetList is the response envelope for a dataset lookup
type datasetList []Dataset
