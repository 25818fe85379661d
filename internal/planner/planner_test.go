package planner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragomit/hsmgen/internal/model"
	"github.com/dragomit/hsmgen/internal/parser"
	"github.com/dragomit/hsmgen/internal/planner"
	"github.com/dragomit/hsmgen/internal/resolver"
)

// samekPUML reproduces the topology in spec.md §8's worked scenario table:
// root's default descends through s -> s2 -> s21 -> s211, s carries an
// entry action fired once on that descent, and the guarded D transitions at
// s11/s1 exercise depth-ordered guard fallthrough.
const samekPUML = `
@startuml
[*] --> s
state s {
  s : entry / setFooFalse
  [*] --> s2
  state s1 {
    [*] --> s11
    state s11 {
      s11 : D [isFooFalse]
    }
  }
  state s2 {
    [*] --> s21
    state s21 {
      [*] --> s211
      state s211 {
      }
    }
  }
}
s1 --> s1 : A
s1 --> s1 : D [isFooTrue] / setFooTrue
s1 --> s2 : C
s211 --> s1 : G
s211 --> [*] : TERMINATE
@enduml
`

func namesOf(steps []planner.NodeStep) []string {
	var out []string
	for _, s := range steps {
		out = append(out, s.Node.Name)
	}
	return out
}

func mustPlan(t *testing.T) (*model.Model, *resolver.Resolved, *planner.Plan) {
	t.Helper()
	m, err := parser.Parse(strings.NewReader(samekPUML))
	require.NoError(t, err)
	m.Freeze()
	r := resolver.Resolve(m)
	p := planner.Plan(r)
	return m, r, p
}

func findRule(t *testing.T, p *planner.Plan, leafName, event string) *planner.Rule {
	t.Helper()
	for _, se := range p.StateEvents {
		if se.Leaf.Name != leafName {
			continue
		}
		for _, er := range se.Events {
			if er.Event == event {
				require.Len(t, er.Rules, 1, "expected exactly one rule for %s/%s in this fixture", leafName, event)
				return er.Rules[0]
			}
		}
	}
	t.Fatalf("no rule found for leaf %s event %s", leafName, event)
	return nil
}

// TestStartSequence covers scenario 1: entries [s, s2, s21, s211], landing
// in s211, with setFooFalse run as s's own entry action. Root's initial
// transition to s carries no action, so no InitialStep is attached to s.
func TestStartSequence(t *testing.T) {
	_, _, p := mustPlan(t)
	assert.Equal(t, "s211", p.StartLeaf.Name)
	assert.Equal(t, []string{"s", "s2", "s21", "s211"}, namesOf(p.Start))
	assert.Equal(t, []string{"setFooFalse"}, p.Start[0].Actions)
	assert.Nil(t, p.Start[0].InitialStep)
}

// TestUpwardCrossingG covers scenario 2: from s211, event G exits
// [s211, s21, s2] and enters [s1, s11].
func TestUpwardCrossingG(t *testing.T) {
	_, _, p := mustPlan(t)
	rule := findRule(t, p, "s211", "G")
	assert.Equal(t, []string{"s211", "s21", "s2"}, namesOf(rule.ExitChain))
	assert.Equal(t, []string{"s1", "s11"}, namesOf(rule.EntryChain))
	assert.Equal(t, "s11", rule.DestLeaf.Name)
	assert.False(t, rule.Terminal)
}

// TestCompositeSelfTransitionA covers scenario 4: from s11, event A (no
// guard) exits [s11, s1] and re-enters [s1, s11] — full exit/entry of the
// composite s1, inherited down to leaf s11.
func TestCompositeSelfTransitionA(t *testing.T) {
	_, _, p := mustPlan(t)
	rule := findRule(t, p, "s11", "A")
	assert.Equal(t, []string{"s11", "s1"}, namesOf(rule.ExitChain))
	assert.Equal(t, []string{"s1", "s11"}, namesOf(rule.EntryChain))
	assert.Equal(t, "s11", rule.DestLeaf.Name)
}

// TestGuardedDFallsThrough covers scenario 5: event D at s11 has two
// candidate rules, deeper (s11, guard isFooFalse) first, shallower (s1,
// guard isFooTrue, action setFooTrue) second — the resolver must order
// them deeper-first so dispatch tries s11's guard before falling through.
func TestGuardedDFallsThrough(t *testing.T) {
	_, _, p := mustPlan(t)
	for _, se := range p.StateEvents {
		if se.Leaf.Name != "s11" {
			continue
		}
		for _, er := range se.Events {
			if er.Event != "D" {
				continue
			}
			require.Len(t, er.Rules, 2)
			assert.Equal(t, "isFooFalse", er.Rules[0].Guard)
			assert.Equal(t, "s11", er.Rules[0].Transition.Src.Name)
			assert.Equal(t, "isFooTrue", er.Rules[1].Guard)
			assert.Equal(t, "setFooTrue", er.Rules[1].Action)
			assert.Equal(t, []string{"s11", "s1"}, namesOf(er.Rules[1].ExitChain))
			assert.Equal(t, []string{"s1", "s11"}, namesOf(er.Rules[1].EntryChain))
			return
		}
	}
	t.Fatal("no D rules found for s11")
}

// TestGeneralLCA_C covers scenario 6: from s11, event C exits [s11, s1] and
// enters [s2, s21, s211] via the general LCA case (LCA(s1, s2) = s).
func TestGeneralLCA_C(t *testing.T) {
	_, _, p := mustPlan(t)
	rule := findRule(t, p, "s11", "C")
	assert.Equal(t, []string{"s11", "s1"}, namesOf(rule.ExitChain))
	assert.Equal(t, []string{"s2", "s21", "s211"}, namesOf(rule.EntryChain))
	assert.Equal(t, "s211", rule.DestLeaf.Name)
}

// TestTerminate covers scenario 7: a transition to [*] always exits the
// full ancestor chain regardless of which node declared it.
func TestTerminate(t *testing.T) {
	_, _, p := mustPlan(t)
	rule := findRule(t, p, "s211", "TERMINATE")
	assert.True(t, rule.Terminal)
	assert.Equal(t, []string{"s211", "s21", "s2", "s"}, namesOf(rule.ExitChain))
	assert.Nil(t, rule.EntryChain)
}

// TestUnhandledEventIsAbsent covers scenario 3: an event no ancestor of a
// leaf declares (here, "I") produces no rule at all, so dispatch no-ops.
func TestUnhandledEventIsAbsent(t *testing.T) {
	_, _, p := mustPlan(t)
	for _, se := range p.StateEvents {
		if se.Leaf.Name != "s11" {
			continue
		}
		for _, er := range se.Events {
			assert.NotEqual(t, "I", er.Event)
		}
	}
}
