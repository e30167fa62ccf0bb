package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/emer/spinesplit/model"
)

func sampleSubs() (*model.Population, []*model.Population) {
	parent := model.NewPopulation("P", model.NewNeuron("P", "Neuron.xml", 10))
	sub0 := model.NewPopulation("P_sub0", model.NewNeuron("P_sub0", "Neuron.xml", 4))
	sub0.Neuron.Properties = []model.Property{{Name: "thresh", Value: &model.PropertyValue{Kind: model.KindFixed, Fixed: 1.5}}}
	return parent, []*model.Population{sub0}
}

func TestXMLWriterRoundTripShape(t *testing.T) {
	var buf bytes.Buffer
	w := NewXMLWriter(&buf, true)
	parent, subs := sampleSubs()
	if err := w.WritePopulation(parent, subs); err != nil {
		t.Fatalf("WritePopulation: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<SpineML", "<LL:Population>", `name="P_sub0"`, "FixedValue", "</SpineML>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDAMSONWriterRejectsSrcDefinedMode(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewDAMSONWriter(&buf, model.ModeProjDefinedAtSrc); err == nil {
		t.Fatal("expected fatal error for src-defined mode")
	}
}

func TestDAMSONWriterAcceptsDstDefinedMode(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewDAMSONWriter(&buf, model.ModeProjDefinedAtDst)
	if err != nil {
		t.Fatalf("NewDAMSONWriter: %v", err)
	}
	parent, subs := sampleSubs()
	if err := w.WritePopulation(parent, subs); err != nil {
		t.Fatalf("WritePopulation: %v", err)
	}
	if !strings.Contains(buf.String(), "P_sub0") {
		t.Errorf("expected output to mention P_sub0, got:\n%s", buf.String())
	}
}

func TestSanitizeStripsPunctuation(t *testing.T) {
	if got := Sanitize("foo-bar.baz"); strings.ContainsAny(got, "-.") {
		t.Errorf("Sanitize(%q) = %q, still contains punctuation", "foo-bar.baz", got)
	}
}

func TestDOTWriterDedupesEdges(t *testing.T) {
	var buf bytes.Buffer
	dw := NewDOTWriter(&buf)
	parent := model.NewPopulation("A", model.NewNeuron("A", "", 4))
	sub := model.NewPopulation("A_sub0", model.NewNeuron("A_sub0", "", 4))
	proj := model.NewProjection("B_sub0", 0)
	sub.AddProjection(proj)
	if err := dw.WritePopulation(parent, []*model.Population{sub}); err != nil {
		t.Fatalf("WritePopulation: %v", err)
	}
	if err := dw.WritePopulation(parent, []*model.Population{sub}); err != nil {
		t.Fatalf("WritePopulation (2nd): %v", err)
	}
	if err := dw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := strings.Count(buf.String(), "A_sub0"); got == 0 {
		t.Errorf("expected DOT output to mention A_sub0, got:\n%s", buf.String())
	}
	if got := strings.Count(buf.String(), "--"); got != 1 {
		t.Errorf("expected exactly 1 edge after writing the same sub-projection twice, got %d:\n%s", got, buf.String())
	}
}
