package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragomit/hsmgen/internal/parser"
)

func TestParseNestedStatesAndTransitions(t *testing.T) {
	const src = `
@startuml
' a comment, ignored
state s {
  [*] --> s1
  state s1 {
    s1 : entry / greet
  }
  state s2 {
  }
  s1 --> s2 : go [ready] / wave
}
@enduml
`
	m, err := parser.Parse(strings.NewReader(src))
	require.NoError(t, err)

	s1, ok := m.Nodes["s1"]
	require.True(t, ok)
	assert.Equal(t, []string{"greet"}, s1.EntryActions)
	require.Len(t, s1.Transitions, 1)
	tr := s1.Transitions[0]
	assert.Equal(t, "go", tr.Event)
	assert.Equal(t, "ready", tr.Guard)
	assert.Equal(t, "wave", tr.Action)
	assert.Equal(t, "s2", tr.Dst.Name)
}

func TestParseFinalTransition(t *testing.T) {
	const src = `
state s {
}
s --> [*] : done
`
	m, err := parser.Parse(strings.NewReader(src))
	require.NoError(t, err)
	s := m.Nodes["s"]
	require.Len(t, s.Transitions, 1)
	assert.True(t, s.Transitions[0].Final)
	assert.Nil(t, s.Transitions[0].Dst)
}

func TestParseInternalTransition(t *testing.T) {
	const src = `
state s {
  s : tick [running] / count
}
`
	m, err := parser.Parse(strings.NewReader(src))
	require.NoError(t, err)
	s := m.Nodes["s"]
	require.Len(t, s.Transitions, 1)
	tr := s.Transitions[0]
	assert.True(t, tr.Internal)
	assert.Same(t, s, tr.Dst)
	assert.Equal(t, "running", tr.Guard)
	assert.Equal(t, "count", tr.Action)
}

func TestParseUnbalancedCloseIsSyntaxError(t *testing.T) {
	const src = `
state s {
}
}
`
	_, err := parser.Parse(strings.NewReader(src))
	require.Error(t, err)
	var synErr *parser.SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 4, synErr.Line)
}

func TestParseUnterminatedScopeIsSyntaxError(t *testing.T) {
	const src = `
state s {
  state s1 {
`
	_, err := parser.Parse(strings.NewReader(src))
	require.Error(t, err)
	var synErr *parser.SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestParseUnrecognizedLineIsSyntaxError(t *testing.T) {
	const src = `
this is not a valid line
`
	_, err := parser.Parse(strings.NewReader(src))
	require.Error(t, err)
	var synErr *parser.SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 2, synErr.Line)
}

func TestParseRedeclarationConflict(t *testing.T) {
	const src = `
state a {
  state x {
  }
}
state c {
  state x {
  }
}
`
	_, err := parser.Parse(strings.NewReader(src))
	require.Error(t, err)
}
