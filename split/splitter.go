package split

import (
	"log"
	"runtime"
	"sync"

	"github.com/emer/spinesplit/model"
)

// SplitPopulation partitions pop into N = ceil(pop.Size()/cap) sub-
// Populations. Sub-population builds run
// concurrently when parallel is true, bounded to the number of available
// CPUs — grounded on the worker/wait-group pattern leabra's network uses to
// fan layer computation out across goroutines. Emission order (the
// returned slice) is always by ascending sub-index, regardless of
// completion order.
func SplitPopulation(pop *model.Population, m *model.Model, cap int, parallel bool) ([]*model.Population, error) {
	n := model.NumSubs(pop.Size(), cap)
	subs := make([]*model.Population, n)
	errs := make([]error, n)

	sizeOf := func(name string) int {
		if c, ok := m.Components[name]; ok {
			return c.Size
		}
		return 0
	}

	build := func(i int) {
		subs[i], errs[i] = buildSubPopulation(pop, i, cap, m, sizeOf)
	}

	if !parallel {
		for i := 0; i < n; i++ {
			build(i)
		}
	} else {
		workers := runtime.NumCPU()
		if workers > n {
			workers = n
		}
		if workers < 1 {
			workers = 1
		}
		jobs := make(chan int, n)
		for i := 0; i < n; i++ {
			jobs <- i
		}
		close(jobs)

		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range jobs {
					build(i)
				}
			}()
		}
		wg.Wait()
	}

	for i, err := range errs {
		if err != nil {
			log.Println(err)
			return nil, err
		}
	}
	return subs, nil
}

func buildSubPopulation(pop *model.Population, subIdx, cap int, m *model.Model, sizeOf SizeLookup) (*model.Population, error) {
	subSize := model.SubSize(pop.Size(), cap, subIdx)

	neuron := model.NewNeuron(model.SubName(pop.Name, subIdx), pop.Neuron.DefinitionURL, subSize)
	neuron.Properties = SplitPopulationProperties(pop.Neuron.Properties, subIdx, cap, subSize)
	neuron.Inputs, neuron.InputOrder = SplitInputs(pop.Neuron.Inputs, pop.Neuron.InputOrder, subIdx, cap, subSize, cap, sizeOf)

	sub := model.NewPopulation(neuron.Name, neuron)

	projs, order, err := SplitProjections(pop, subIdx, cap, subSize, m, sizeOf)
	if err != nil {
		return nil, err
	}
	for _, peerSubName := range order {
		sub.AddProjection(projs[peerSubName])
	}
	return sub, nil
}
