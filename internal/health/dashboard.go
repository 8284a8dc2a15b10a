package health

// Dashboard is the complete aggregation output for one tree.
type Dashboard struct {
	Meta  Meta                     `json:"meta"`
	Tree  TreeAggregate            `json:"tree"`
	Parts map[string]PartAggregate `json:"parts"`
}

// Aggregator runs the filter, part, and tree reductions under one set of
// thresholds. It holds no mutable state and is safe for concurrent use.
type Aggregator struct {
	cfg        Config
	table      *Table
	normalizer *Normalizer
}

// New creates an Aggregator. A finalized cfg is used as is; otherwise its
// zero-valued thresholds take their defaults. A nil table selects DefaultTable.
func New(cfg Config, table *Table) *Aggregator {
	if !cfg.finalized {
		cfg.loadDefaults()
	}
	if table == nil {
		table = DefaultTable()
	}
	return &Aggregator{
		cfg:        cfg,
		table:      table,
		normalizer: NewNormalizer(table),
	}
}

// Config returns the thresholds in effect.
func (a *Aggregator) Config() Config {
	return a.cfg
}

// Table returns the compatibility table in effect.
func (a *Aggregator) Table() *Table {
	return a.table
}

// Normalizer returns the normalizer bound to the aggregator's table.
func (a *Aggregator) Normalizer() *Normalizer {
	return a.normalizer
}

// Aggregate builds a dashboard from a candidate frame pool. Meta counts are
// computed over frames as given; statistics use only the frames that pass
// the pipeline filter. When none pass, the dashboard short-circuits to an
// unknown tree with no parts.
func (a *Aggregator) Aggregate(frames []Frame) Dashboard {
	valid := a.Valid(frames)
	meta := a.meta(frames, len(valid))

	if len(valid) == 0 {
		return Dashboard{
			Meta:  meta,
			Tree:  EmptyTree(),
			Parts: map[string]PartAggregate{},
		}
	}

	parts := make(map[string]PartAggregate, len(Parts()))
	for _, part := range Parts() {
		parts[part] = a.aggregatePart(part, valid)
	}

	return Dashboard{
		Meta:  meta,
		Tree:  a.aggregateTree(valid),
		Parts: parts,
	}
}

// AggregateRaw normalizes raw classifier records, drops frames without an
// actionable part and status, and aggregates the remaining candidates.
func (a *Aggregator) AggregateRaw(raws []RawFrame) Dashboard {
	candidates, discarded := a.normalizer.Candidates(raws)
	d := a.Aggregate(candidates)
	d.Meta.DiscardedFrames = discarded
	return d
}
