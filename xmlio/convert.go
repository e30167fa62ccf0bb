package xmlio

import (
	"log"
	"strconv"

	"github.com/emer/spinesplit/model"
)

func reqAttr(line int, elem, attrName, value string) (string, error) {
	if value == "" {
		return "", model.Fatalf(line, model.ErrSchema, "missing required attribute %q on <%s>", attrName, elem)
	}
	return value, nil
}

func reqInt(line int, elem, attrName, value string) (int, error) {
	s, err := reqAttr(line, elem, attrName, value)
	if err != nil {
		return 0, err
	}
	n, perr := strconv.Atoi(s)
	if perr != nil {
		return 0, model.Fatalf(line, model.ErrSchema, "attribute %q on <%s> is not an integer: %q", attrName, elem, s)
	}
	return n, nil
}

func reqFloat(line int, elem, attrName, value string) (float64, error) {
	s, err := reqAttr(line, elem, attrName, value)
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return 0, model.Fatalf(line, model.ErrSchema, "attribute %q on <%s> is not a number: %q", attrName, elem, s)
	}
	return f, nil
}

func optSeed(s *string) (int64, bool, error) {
	if s == nil {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(*s, 10, 64)
	if err != nil {
		return 0, false, model.Fatalf(0, model.ErrSchema, "seed attribute is not an integer: %q", *s)
	}
	return n, true, nil
}

// convertDelay converts an optional <Delay> element into a *model.PropertyValue.
func convertDelay(line int, d *xmlDelay) (*model.PropertyValue, error) {
	if d == nil {
		return nil, nil
	}
	return convertDistributionGroup(line, "Delay", d.FixedValue, d.UniformDistribution, d.NormalDistribution, d.PoissonDistribution)
}

// convertDistributionGroup converts whichever one of the four alternatives
// is set into a *model.PropertyValue, fataling if none or more than one is.
func convertDistributionGroup(line int, elem string, fixed *xmlFixedValue, uni *xmlUniformDistribution, norm *xmlNormalDistribution, pois *xmlPoissonDistribution) (*model.PropertyValue, error) {
	set := 0
	if fixed != nil {
		set++
	}
	if uni != nil {
		set++
	}
	if norm != nil {
		set++
	}
	if pois != nil {
		set++
	}
	if set == 0 {
		return nil, model.Fatalf(line, model.ErrSchema, "<%s> has no value (expected one of FixedValue, UniformDistribution, NormalDistribution, PoissonDistribution)", elem)
	}
	if set > 1 {
		return nil, model.Fatalf(line, model.ErrSchema, "<%s> has more than one value alternative", elem)
	}
	switch {
	case fixed != nil:
		v, err := reqFloat(line, "FixedValue", "value", fixed.Value)
		if err != nil {
			return nil, err
		}
		return &model.PropertyValue{Kind: model.KindFixed, Fixed: v}, nil
	case uni != nil:
		minV, err := reqFloat(line, "UniformDistribution", "minimum", uni.Minimum)
		if err != nil {
			return nil, err
		}
		maxV, err := reqFloat(line, "UniformDistribution", "maximum", uni.Maximum)
		if err != nil {
			return nil, err
		}
		seed, hasSeed, err := optSeed(uni.Seed)
		if err != nil {
			return nil, err
		}
		return &model.PropertyValue{Kind: model.KindUniform, Min: minV, Max: maxV, Seed: seed, HasSeed: hasSeed}, nil
	case norm != nil:
		mean, err := reqFloat(line, "NormalDistribution", "mean", norm.Mean)
		if err != nil {
			return nil, err
		}
		variance, err := reqFloat(line, "NormalDistribution", "variance", norm.Variance)
		if err != nil {
			return nil, err
		}
		seed, hasSeed, err := optSeed(norm.Seed)
		if err != nil {
			return nil, err
		}
		return &model.PropertyValue{Kind: model.KindNormal, Mean: mean, Variance: variance, Seed: seed, HasSeed: hasSeed}, nil
	default: // pois != nil
		mean, err := reqFloat(line, "PoissonDistribution", "mean", pois.Mean)
		if err != nil {
			return nil, err
		}
		seed, hasSeed, err := optSeed(pois.Seed)
		if err != nil {
			return nil, err
		}
		return &model.PropertyValue{Kind: model.KindPoisson, Mean: mean, Seed: seed, HasSeed: hasSeed}, nil
	}
}

// convertProperty converts a <Property> element, including its ValueList
// duplicate-entry warnings and out-of-range drops.
func convertProperty(line int, p xmlProperty, componentSize int, silent bool) (*model.Property, error) {
	name, err := reqAttr(line, "Property", "name", p.Name)
	if err != nil {
		return nil, err
	}
	if p.ValueList != nil {
		list := map[int]float64{}
		for _, e := range p.ValueList.Values {
			idx, err := reqInt(line, "Value", "index", e.Index)
			if err != nil {
				return nil, err
			}
			val, err := reqFloat(line, "Value", "value", e.Value)
			if err != nil {
				return nil, err
			}
			if idx >= componentSize {
				if !silent {
					log.Printf("warning: value-list index %d on property %q exceeds component size %d, dropped", idx, name, componentSize)
				}
				continue
			}
			if existing, dup := list[idx]; dup {
				if existing == val {
					if !silent {
						log.Printf("value-list index %d on property %q redefined with identical value, coalesced", idx, name)
					}
				} else if !silent {
					log.Printf("warning: value-list index %d on property %q redefined (%v -> kept %v, ignored %v)", idx, name, existing, existing, val)
				}
				continue
			}
			list[idx] = val
		}
		return &model.Property{Name: name, Value: &model.PropertyValue{Kind: model.KindValueList, List: list}}, nil
	}
	v, err := convertDistributionGroup(line, "Property", p.FixedValue, p.UniformDistribution, p.NormalDistribution, p.PoissonDistribution)
	if err != nil {
		return nil, err
	}
	return &model.Property{Name: name, Value: v}, nil
}

func convertProperties(line int, xs []xmlProperty, componentSize int, silent bool) ([]model.Property, error) {
	out := make([]model.Property, 0, len(xs))
	for _, p := range xs {
		cp, err := convertProperty(line, p, componentSize, silent)
		if err != nil {
			return nil, err
		}
		out = append(out, *cp)
	}
	return out, nil
}

// connectivityKind returns the single connectivity kind declared among the
// four mutually-exclusive alternatives, fataling on zero or more than one.
func connectivityKind(line int, allToAll *xmlAllToAll, oneToOne *xmlOneToOne, fixedProb *xmlFixedProbability, connList *xmlConnectionList) (model.ConnectionKind, error) {
	set := 0
	var kind model.ConnectionKind
	if allToAll != nil {
		set++
		kind = model.KindAllToAll
	}
	if oneToOne != nil {
		set++
		kind = model.KindOneToOne
	}
	if fixedProb != nil {
		set++
		kind = model.KindFixedProbability
	}
	if connList != nil {
		set++
		kind = model.KindConnectionList
	}
	if set == 0 {
		return 0, model.Fatalf(line, model.ErrSchema, "no connectivity element found (expected one of AllToAllConnection, OneToOneConnection, FixedProbabilityConnection, ConnectionList)")
	}
	if set > 1 {
		return 0, model.Fatalf(line, model.ErrSchema, "more than one connectivity element found")
	}
	return kind, nil
}
