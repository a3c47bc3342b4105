package committer

import "cloud.google.com/go/spanner"

// Plan collects the mutations of one atomic read-store write.
type Plan struct {
	tag       string
	mutations []*spanner.Mutation
}

// NewPlan starts a plan. tag ends up as the Spanner transaction tag and may
// be empty.
func NewPlan(tag string, ms ...*spanner.Mutation) *Plan {
	p := &Plan{tag: tag}
	for _, m := range ms {
		p.Add(m)
	}
	return p
}

// Add ignores nil mutations.
func (p *Plan) Add(m *spanner.Mutation) {
	if m == nil {
		return
	}
	p.mutations = append(p.mutations, m)
}

func (p *Plan) Tag() string {
	return p.tag
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}
