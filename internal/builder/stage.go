package builder

// Stage is the pipeline's position. Stages advance strictly forward; Failed
// absorbs from any stage and no stage is re-entered.
type Stage int

const (
	StageClarifying Stage = iota
	StagePlanning
	StageExecuting
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageClarifying:
		return "clarifying"
	case StagePlanning:
		return "planning"
	case StageExecuting:
		return "executing"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	}
	return "unknown"
}
