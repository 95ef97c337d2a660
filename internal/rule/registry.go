package rule

import (
	"fmt"
	"sort"
	"sync"
)

// errRuleNotFound is returned when no rule owns the given check ID.
type errRuleNotFound struct {
	CheckID string
}

func (e *errRuleNotFound) Error() string {
	return fmt.Sprintf("rule not found: %s", e.CheckID)
}

// errNilRule is returned when trying to register a nil rule.
var errNilRule = fmt.Errorf("cannot register nil rule")

// Registry manages rule registrations and resolves execution order.
// Thread-safe for concurrent access.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

var (
	globalRegistry *Registry
	once           sync.Once
)

// Global returns the singleton registry instance.
// Rules are registered once at startup by the bootstrap package.
func Global() *Registry {
	once.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// NewRegistry creates an empty registry. Tests use this to avoid the
// process-wide singleton.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule, keyed by its name.
func (r *Registry) Register(rule Rule) error {
	if rule == nil {
		return errNilRule
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rule.Name()]; exists {
		return fmt.Errorf("rule %q already registered", rule.Name())
	}
	r.rules[rule.Name()] = rule
	return nil
}

// Get retrieves a rule by name.
func (r *Registry) Get(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[name]
	return rule, ok
}

// RuleFor finds the rule owning the violation's check ID.
func (r *Registry) RuleFor(v Violation) (Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.rules {
		if rule.CanFix(v) {
			return rule, nil
		}
	}
	return nil, &errRuleNotFound{CheckID: v.CheckID}
}

// Names returns all registered rule names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecutionOrder resolves the dependency-ordered rule list via topological
// sort. Ties among independent rules break by severity (error before warning
// before suggestion), then rule name ascending, so the order is identical
// across runs on identical input. A dependency cycle or a dependency on an
// unregistered rule is a configuration error: no partial rule set is safe to
// execute, so the whole run must abort.
func (r *Registry) ExecutionOrder() ([]Rule, error) {
	stages, err := r.Stages()
	if err != nil {
		return nil, err
	}

	var ordered []Rule
	for _, stage := range stages {
		ordered = append(ordered, stage...)
	}
	return ordered, nil
}

// Stages groups rules into dependency stages: stage 0 holds rules with no
// dependencies, stage N holds rules whose longest prerequisite chain has
// length N. The file processor applies each stage's fixes to the in-memory
// working copy before generating fixes for the next stage, so dependent
// rules observe their prerequisites' edits.
func (r *Registry) Stages() ([][]Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, rule := range r.rules {
		for _, dep := range rule.Dependencies() {
			if _, ok := r.rules[dep]; !ok {
				return nil, fmt.Errorf("rule %q depends on unregistered rule %q", name, dep)
			}
		}
	}

	// Longest-chain depth per rule, with cycle detection via DFS coloring.
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(r.rules))
	depth := make(map[string]int, len(r.rules))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("rule dependency cycle involving %q", name)
		}
		state[name] = visiting

		d := 0
		for _, dep := range r.rules[name].Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
			if depth[dep]+1 > d {
				d = depth[dep] + 1
			}
		}
		depth[name] = d
		state[name] = done
		return nil
	}

	// Visit in sorted name order so cycle errors are deterministic too.
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	maxDepth := 0
	for _, d := range depth {
		if d > maxDepth {
			maxDepth = d
		}
	}

	stages := make([][]Rule, maxDepth+1)
	for _, name := range names {
		d := depth[name]
		stages[d] = append(stages[d], r.rules[name])
	}
	for _, stage := range stages {
		sort.Slice(stage, func(i, j int) bool {
			ri, rj := stage[i], stage[j]
			if ri.Severity().Rank() != rj.Severity().Rank() {
				return ri.Severity().Rank() < rj.Severity().Rank()
			}
			return ri.Name() < rj.Name()
		})
	}
	return stages, nil
}
