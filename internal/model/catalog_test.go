package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dragomit/hsmgen/internal/model"
)

func TestBuildCatalogsOrdering(t *testing.T) {
	m := model.New()
	s, _ := m.EnsureNode("s", m.Root, true)
	s2, _ := m.EnsureNode("s2", s, true)
	s1, _ := m.EnsureNode("s1", s, true)

	s.EntryActions = []string{"setFooFalse"}
	m.Events["C"] = true
	m.Events["A"] = true

	m.AddTransition(&model.Transition{Src: s1, Dst: s2, Event: "C", Guard: "is-foo!", Action: "setFoo"})

	cat := model.BuildCatalogs(m)

	assert.Equal(t, []*model.Node{s, s2, s1}, cat.States, "pre-order: node before children, children in declaration order")
	assert.Equal(t, []string{"A", "C"}, cat.Events, "events sorted lexicographically")
	assert.Equal(t, "is_foo_", cat.GuardID["is-foo!"], "non-identifier characters sanitized to underscore")
	assert.Equal(t, []string{"setFoo", "setFooFalse"}, cat.ActionIDs, "transition actions registered before entry/exit actions")
}

func TestBuildCatalogsEmptyStillDeterministic(t *testing.T) {
	m := model.New()
	m.EnsureNode("s", m.Root, true)
	cat := model.BuildCatalogs(m)

	assert.Empty(t, cat.Events)
	assert.Empty(t, cat.GuardIDs)
	assert.Empty(t, cat.ActionIDs)
}
