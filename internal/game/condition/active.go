package condition

import "fmt"

// ActiveCondition tracks one applied condition on an entity.
type ActiveCondition struct {
	Def            *ConditionDef
	Stacks         int
	TurnsRemaining int // -1 = permanent
}

// ActiveSet tracks all conditions currently applied to one entity.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	conditions map[string]*ActiveCondition
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{conditions: make(map[string]*ActiveCondition)}
}

// Apply adds or refreshes a condition.
// Re-applying adds stacks (capped at MaxStacks, unstackable conditions stay at 1)
// and keeps the longer of the two durations. turns is -1 for permanent.
//
// Precondition: def must not be nil.
// Postcondition: Has(def.ID) is true.
func (s *ActiveSet) Apply(def *ConditionDef, stacks, turns int) error {
	if def == nil {
		return fmt.Errorf("Apply: def must not be nil")
	}
	if def.DurationType == DurationPermanent {
		turns = -1
	}

	if existing, ok := s.conditions[def.ID]; ok {
		if def.MaxStacks > 0 {
			existing.Stacks = min(existing.Stacks+stacks, def.MaxStacks)
		}
		if existing.TurnsRemaining >= 0 && (turns < 0 || turns > existing.TurnsRemaining) {
			existing.TurnsRemaining = turns
		}
		return nil
	}

	effective := 1
	if def.MaxStacks > 0 {
		effective = min(max(stacks, 1), def.MaxStacks)
	}
	s.conditions[def.ID] = &ActiveCondition{
		Def:            def,
		Stacks:         effective,
		TurnsRemaining: turns,
	}
	return nil
}

// Remove deletes the condition with the given ID from the set.
// If the condition is not present, Remove is a no-op.
//
// Postcondition: Has(id) is false.
func (s *ActiveSet) Remove(id string) {
	delete(s.conditions, id)
}

// Tick advances one turn. Timed conditions that run out are removed and their
// ids returned; permanent conditions are untouched.
//
// Postcondition: For every id in the returned slice, Has(id) is false.
func (s *ActiveSet) Tick() []string {
	var expired []string
	for id, ac := range s.conditions {
		if ac.TurnsRemaining < 0 {
			continue
		}
		ac.TurnsRemaining--
		if ac.TurnsRemaining <= 0 {
			expired = append(expired, id)
			delete(s.conditions, id)
		}
	}
	return expired
}

// Has reports whether the condition with id is currently active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.conditions[id]
	return ok
}

// Stacks returns the current stack count for condition id, or 0 if not present.
func (s *ActiveSet) Stacks(id string) int {
	if ac, ok := s.conditions[id]; ok {
		return ac.Stacks
	}
	return 0
}

// Len returns the number of active conditions.
func (s *ActiveSet) Len() int {
	return len(s.conditions)
}

// All returns a slice of pointers to the active conditions.
// The slice is a new allocation but the pointed-to values are shared; callers
// must not modify them.
func (s *ActiveSet) All() []*ActiveCondition {
	out := make([]*ActiveCondition, 0, len(s.conditions))
	for _, ac := range s.conditions {
		out = append(out, ac)
	}
	return out
}
