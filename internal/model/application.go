package model

// Stage is one step of an application's processing timeline.
type Stage struct {
	Name      string `json:"name" yaml:"name"`
	Date      string `json:"date,omitempty" yaml:"date,omitempty"`
	Completed bool   `json:"completed" yaml:"completed"`
	Current   bool   `json:"current,omitempty" yaml:"current,omitempty"`
	Remarks   string `json:"remarks,omitempty" yaml:"remarks,omitempty"`
}

// Application is read-only reference data resolved by the tracker.
type Application struct {
	ID      string  `json:"id" yaml:"id"`
	Service string  `json:"service" yaml:"service"`
	Status  Status  `json:"status" yaml:"status"`
	Stages  []Stage `json:"stages" yaml:"stages"`
}

// StageState is the visual state of a timeline dot.
type StageState string

const (
	StageCompleted StageState = "completed"
	StageCurrent   StageState = "current"
	StagePending   StageState = "pending"
)

// State derives the dot state; completed wins over current.
func (s Stage) State() StageState {
	switch {
	case s.Completed:
		return StageCompleted
	case s.Current:
		return StageCurrent
	default:
		return StagePending
	}
}
