package charcode

// Resolution is the outcome of resolving one caret text.
type Resolution struct {
	// Status is the rendered status text; empty when there is no text.
	Status string
	// Strategy names the strategy that produced Status.
	Strategy string
}

// Empty reports whether there is nothing to display.
func (r Resolution) Empty() bool {
	return r.Status == ""
}

// Resolver tries its strategies in order and returns the first match.
//
// The order built by NewResolver is part of the contract: combined, then
// surrogate, then single. Because single matches every non-empty text the
// resolver never returns an empty status for non-empty input.
type Resolver struct {
	strategies []Strategy
}

// NewResolver returns a Resolver with the standard strategy order.
func NewResolver(conv Converter) *Resolver {
	return newResolverWithStrategies(
		NewCombinedStrategy(conv),
		NewSurrogateStrategy(conv),
		NewSingleStrategy(conv),
	)
}

// newResolverWithStrategies returns a Resolver that tries strategies in the
// given order.
func newResolverWithStrategies(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Strategies returns the strategy names in evaluation order.
func (r *Resolver) Strategies() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Resolve renders text for target. Empty text yields an empty Resolution.
// Converter errors are returned as-is; they are not expected for the
// default converter.
func (r *Resolver) Resolve(text CaretText, target Encoding) (Resolution, error) {
	if text.IsEmpty() {
		return Resolution{}, nil
	}
	for _, s := range r.strategies {
		status, ok, err := s.Attempt(text, target)
		if err != nil {
			return Resolution{}, err
		}
		if ok {
			return Resolution{Status: status, Strategy: s.Name()}, nil
		}
	}
	return Resolution{}, nil
}

// BuildStatusText is Resolve without the strategy name.
func (r *Resolver) BuildStatusText(text CaretText, target Encoding) (string, error) {
	res, err := r.Resolve(text, target)
	return res.Status, err
}
