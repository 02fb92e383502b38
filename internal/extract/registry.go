package extract

// Registry holds the Tool Parsers and performs per-line
// confidence-ranked dispatch. The parser list is read-only after
// construction and safe to share across concurrent Extractors, subject
// to the stateful-parser caveat documented on each parser type.
type Registry struct {
	parsers []ToolParser
	noise   *noiseFilter
}

// NewRegistry builds a registry over the given parsers. Each parser's
// noise rules are pooled with the shared filter so noise is checked once
// per line rather than once per parser.
func NewRegistry(parsers ...ToolParser) *Registry {
	r := &Registry{
		parsers: parsers,
		noise:   newSharedNoiseFilter(),
	}
	for _, p := range parsers {
		prefixes, patterns := p.NoiseRules()
		r.noise.add(prefixes, patterns)
	}
	return r
}

// NewDefaultRegistry builds a registry with one instance of every
// dedicated Tool Parser. Because the Go, Python, and Rust parsers carry
// accumulator state, the returned registry must not be shared across
// concurrent extraction calls; build one per caller.
func NewDefaultRegistry(limits Limits) *Registry {
	return NewRegistry(
		NewGoParser(limits),
		NewRustParser(limits),
		NewTscParser(),
		NewPythonParser(limits),
		NewEslintParser(),
		NewGenericParser(),
	)
}

// FindParser returns the highest-confidence parser for the line, ties
// broken by static priority. Returns nil when no parser scores above 0.
func (r *Registry) FindParser(line string, ctx *ParseContext) ToolParser {
	var best ToolParser
	bestScore := 0.0
	for _, p := range r.parsers {
		score := p.CanParse(line, ctx)
		if score <= 0 {
			continue
		}
		if score > bestScore || (score == bestScore && best != nil && p.Priority() > best.Priority()) {
			best = p
			bestScore = score
		}
	}
	return best
}

// IsNoise reports whether any parser (or the shared filter) classifies
// the line as carrying no diagnostic value.
func (r *Registry) IsNoise(line string) bool {
	return r.noise.Match(line)
}

// Parsers returns the registered parsers in declaration order.
func (r *Registry) Parsers() []ToolParser {
	return r.parsers
}

// Reset clears accumulator state on every registered parser.
func (r *Registry) Reset() {
	for _, p := range r.parsers {
		p.Reset()
	}
}

// ownedSources returns the set of toolchain ids covered by dedicated
// parsers, used to exclude them from the whole-text fallback pass.
func (r *Registry) ownedSources() map[string]bool {
	owned := make(map[string]bool, len(r.parsers))
	for _, p := range r.parsers {
		owned[p.ID()] = true
	}
	return owned
}
