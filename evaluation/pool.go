package evaluation

// Pool holds, for one class, the ground-truth instances that are still
// available for matching in every evaluation unit.
//
// A Pool is built fresh for every class of every run and owned by that
// class's matching pass; Take mutates it.
type Pool[R any] struct {
	regions   map[string][]R
	available map[string][]int
	total     int
}

// NewPool copies the instances of one class out of the ground-truth
// collection. Ignore instances are left out. Every unit of gts gets an
// entry, even when it holds no instance of the class.
func NewPool[R any](gts map[string][]GroundTruth[R], label int) *Pool[R] {
	p := &Pool[R]{
		regions:   make(map[string][]R, len(gts)),
		available: make(map[string][]int, len(gts)),
	}
	for unit, instances := range gts {
		var regions []R
		for _, gt := range instances {
			if gt.Ignore || gt.Label != label {
				continue
			}
			regions = append(regions, gt.Region)
		}
		idx := make([]int, len(regions))
		for i := range idx {
			idx[i] = i
		}
		p.regions[unit] = regions
		p.available[unit] = idx
		p.total += len(regions)
	}
	return p
}

// Total is the number of instances the pool started with.
func (p *Pool[R]) Total() int { return p.total }

// Has reports whether the unit is part of the pool.
func (p *Pool[R]) Has(unit string) bool {
	_, ok := p.available[unit]
	return ok
}

// Remaining is the number of instances of the unit still unmatched.
func (p *Pool[R]) Remaining(unit string) int { return len(p.available[unit]) }

// Candidates returns the unmatched regions of the unit, in annotation order.
func (p *Pool[R]) Candidates(unit string) []R {
	idx := p.available[unit]
	out := make([]R, len(idx))
	for i, j := range idx {
		out[i] = p.regions[unit][j]
	}
	return out
}

// Take removes the k-th candidate of the unit from further matching.
func (p *Pool[R]) Take(unit string, k int) {
	idx := p.available[unit]
	p.available[unit] = append(idx[:k:k], idx[k+1:]...)
}
