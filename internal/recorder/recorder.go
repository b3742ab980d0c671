package recorder

import "DowntimeIncome/internal/model"

// EvaluationEvent holds one resolved evaluation.
type EvaluationEvent struct {
	Variant string
	Input   model.EvaluationInput
	Result  model.EvaluationResult
}

// TableLoadEvent records an ingestion attempt, successful or not.
type TableLoadEvent struct {
	Source     string
	Provenance string
	Rows       int
	Skipped    int
	Err        error // nil on success
}

// Recorder persists history for later review.
type Recorder interface {
	RecordEvaluation(evt *EvaluationEvent) error
	RecordTableLoad(evt *TableLoadEvent) error
	Close() error
}
