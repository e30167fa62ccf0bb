package xmlio

import (
	"encoding/xml"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/emer/spinesplit/model"
)

// ParseExperiment reads an <Experiment> document in a single pass —
// there is no two-pass requirement for experiment files, since nothing in
// them depends on sizes resolved elsewhere. Only EulerIntegration is
// accepted as the simulation's integration method. Extra <Experiment>
// elements beyond the first are a non-fatal warning.
func ParseExperiment(r io.Reader, silent bool) (*model.Experiment, error) {
	lr := newLineCountingReader(r)
	dec := xml.NewDecoder(lr)

	var exp *model.Experiment
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, model.Fatalf(lr.Line(), model.ErrIO, "xml: %v", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Experiment" {
			continue
		}
		line := lr.Line()
		if exp != nil {
			if !silent {
				log.Printf("warning: ignoring additional <Experiment> element at line %d", line)
			}
			if err := dec.Skip(); err != nil {
				return nil, model.Fatalf(line, model.ErrIO, "xml: %v", err)
			}
			continue
		}
		var xe xmlExperiment
		if err := dec.DecodeElement(&xe, &se); err != nil {
			return nil, model.Fatalf(line, model.ErrSchema, "invalid <Experiment>: %v", err)
		}
		exp, err = buildExperiment(line, &xe)
		if err != nil {
			return nil, err
		}
	}
	if exp == nil {
		return nil, model.Fatalf(0, model.ErrSchema, "no <Experiment> element found")
	}
	return exp, nil
}

func buildExperiment(line int, xe *xmlExperiment) (*model.Experiment, error) {
	url, err := reqAttr(line, "Model", "network_layer_url", xe.Model.NetworkLayerURL)
	if err != nil {
		return nil, err
	}
	if xe.Simulation.Euler == nil {
		return nil, model.Fatalf(line, model.ErrSchema, "<Simulation> must contain <EulerIntegration>")
	}
	duration, err := reqFloat(line, "Simulation", "duration", xe.Simulation.Duration)
	if err != nil {
		return nil, err
	}
	dt, err := reqFloat(line, "EulerIntegration", "dt", xe.Simulation.Euler.Dt)
	if err != nil {
		return nil, err
	}

	exp := model.NewExperiment()
	exp.NetworkLayerURL = url
	exp.Duration = duration
	exp.TimeStep = dt

	for _, xlo := range xe.LogOutputs {
		lo, err := buildLogOutput(line, xlo)
		if err != nil {
			return nil, err
		}
		exp.AddLogOutput(lo)
	}
	return exp, nil
}

func buildLogOutput(line int, xlo xmlLogOutput) (*model.LogOutput, error) {
	name, err := reqAttr(line, "LogOutput", "name", xlo.Name)
	if err != nil {
		return nil, err
	}
	target, err := reqAttr(line, "LogOutput", "target", xlo.Target)
	if err != nil {
		return nil, err
	}
	port, err := reqAttr(line, "LogOutput", "port", xlo.Port)
	if err != nil {
		return nil, err
	}
	lo := &model.LogOutput{Name: name, Target: target, Port: port}
	if xlo.StartTime != nil {
		v, err := reqFloat(line, "LogOutput", "start_time", *xlo.StartTime)
		if err != nil {
			return nil, err
		}
		lo.StartTime = &v
	}
	if xlo.EndTime != nil {
		v, err := reqFloat(line, "LogOutput", "end_time", *xlo.EndTime)
		if err != nil {
			return nil, err
		}
		lo.EndTime = &v
	}
	if xlo.Indices != nil {
		indices, err := parseIndices(line, *xlo.Indices)
		if err != nil {
			return nil, err
		}
		lo.Indices = indices
	}
	return lo, nil
}

// parseIndices parses the comma-separated integer list in a LogOutput's
// indices attribute.
func parseIndices(line int, s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, model.Fatalf(line, model.ErrSchema, "indices entry %q is not an integer", p)
		}
		out = append(out, n)
	}
	return out, nil
}
