package recorder

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvaluation(_ *EvaluationEvent) error { return nil }
func (n *NoopRecorder) RecordTableLoad(_ *TableLoadEvent) error   { return nil }
func (n *NoopRecorder) Close() error                              { return nil }
