package events

import "time"

// CompileStarted is emitted before an operation is run through the
// elaborator pipeline.
type CompileStarted struct {
	Query         string
	OperationName string
}

// CompilePhase is emitted once per elaborator phase, in phase order,
// naming the phase and how many problems it left the chain carrying.
type CompilePhase struct {
	OperationName string
	Phase         string
	ProblemCount  int
}

// CompileFailed is emitted when compilation ends in failure.
type CompileFailed struct {
	Query         string
	OperationName string
	ProblemCount  int
	Duration      time.Duration
}

// CompileDone is emitted when compilation succeeds.
type CompileDone struct {
	Query         string
	OperationName string
	Duration      time.Duration
}
