package model

// LogOutput describes one requested log target from the experiment file.
type LogOutput struct {
	Name string
	Target string
	Port string
	StartTime *float64
	EndTime *float64
	Indices []int
}

// Experiment is the parsed top-level experiment description.
// Only EulerIntegration is accepted as the integration method; TimeStep
// holds its dt.
type Experiment struct {
	Duration float64
	TimeStep float64
	NetworkLayerURL string
	LogOutputs map[string][]*LogOutput // target -> outputs, a multimap
}

func NewExperiment() *Experiment {
	return &Experiment{LogOutputs: map[string][]*LogOutput{}}
}

func (e *Experiment) AddLogOutput(lo *LogOutput) {
	e.LogOutputs[lo.Target] = append(e.LogOutputs[lo.Target], lo)
}
