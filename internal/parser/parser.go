// Package parser turns the PlantUML state-diagram subset described in
// spec.md §4.1/§6 into a *model.Model. It is a line-oriented recognizer:
// each non-blank, non-comment, non-directive line is matched in turn
// against an ordered set of regular expressions, mirroring
// original_source/python/statesurf.py's parse_puml shape-for-shape.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dragomit/hsmgen/internal/model"
)

const ident = `[A-Za-z_][A-Za-z0-9_]*`

var (
	reStateOpen = regexp.MustCompile(`^\s*state\s+(` + ident + `)\s*\{\s*$`)
	reStateDecl = regexp.MustCompile(`^\s*state\s+(` + ident + `)\s*$`)
	reClose     = regexp.MustCompile(`^\s*\}\s*$`)
	reInitial   = regexp.MustCompile(`^\s*\[\*\]\s*-{1,2}>\s*(` + ident + `)\s*` +
		`(?::\s*(?:(` + ident + `)\s*)?(?:\[([^\]]*)\])?\s*(?:/\s*(` + ident + `)?)?)?\s*$`)
	reEntryExit = regexp.MustCompile(`^\s*(` + ident + `)\s*:\s*(entry|exit)(?:\s*/\s*(` + ident + `))?\s*$`)
	reTransition = regexp.MustCompile(`^\s*(` + ident + `)\s*-{1,2}>\s*(` + ident + `|\[\*\])\s*:\s*` +
		`(` + ident + `)?(?:\s*\[([^\]]+)\])?(?:\s*/\s*(` + ident + `)?)?\s*$`)
	reInternal = regexp.MustCompile(`^\s*(` + ident + `)\s*:\s*` +
		`(` + ident + `)?(?:\s*\[([^\]]+)\])?(?:\s*/\s*(` + ident + `)?)?\s*$`)
)

// Parse reads PlantUML source text and returns the Model it describes, or
// a *SyntaxError (wrapped) at the first unrecognized line, unbalanced "}",
// or unclosed scope at end of input.
func Parse(r io.Reader) (*model.Model, error) {
	m := model.New()
	scope := []*model.Node{m.Root}
	current := func() *model.Node { return scope[len(scope)-1] }

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "'") || strings.HasPrefix(line, "@") {
			continue
		}

		switch {
		case reStateOpen.MatchString(line):
			mo := reStateOpen.FindStringSubmatch(line)
			n, err := m.EnsureNode(mo[1], current(), true)
			if err != nil {
				return nil, newSyntaxError(lineNo, raw, err)
			}
			scope = append(scope, n)

		case reStateDecl.MatchString(line):
			mo := reStateDecl.FindStringSubmatch(line)
			if _, err := m.EnsureNode(mo[1], current(), true); err != nil {
				return nil, newSyntaxError(lineNo, raw, err)
			}

		case reClose.MatchString(line):
			if len(scope) <= 1 {
				return nil, newSyntaxError(lineNo, raw, ErrUnbalancedScope)
			}
			scope = scope[:len(scope)-1]

		case reInitial.MatchString(line):
			mo := reInitial.FindStringSubmatch(line)
			target, action := mo[1], mo[4]
			sc := current()
			if _, err := m.EnsureNode(target, sc, false); err != nil {
				return nil, newSyntaxError(lineNo, raw, err)
			}
			sc.InitialTarget = target
			if action != "" {
				sc.InitialAction = action
			}

		case reEntryExit.MatchString(line):
			mo := reEntryExit.FindStringSubmatch(line)
			name, kind, action := mo[1], mo[2], mo[3]
			n, err := m.EnsureNode(name, current(), false)
			if err != nil {
				return nil, newSyntaxError(lineNo, raw, err)
			}
			if action != "" {
				if kind == "entry" {
					n.EntryActions = append(n.EntryActions, action)
				} else {
					n.ExitActions = append(n.ExitActions, action)
				}
			}

		case reTransition.MatchString(line):
			mo := reTransition.FindStringSubmatch(line)
			srcName, dstName, event, guard, action := mo[1], mo[2], mo[3], mo[4], mo[5]
			src, err := m.EnsureNode(srcName, current(), false)
			if err != nil {
				return nil, newSyntaxError(lineNo, raw, err)
			}
			t := &model.Transition{Src: src, Event: event, Guard: guard, Action: action}
			if dstName == "[*]" {
				t.Final = true
			} else {
				dst, err := m.EnsureNode(dstName, current(), false)
				if err != nil {
					return nil, newSyntaxError(lineNo, raw, err)
				}
				t.Dst = dst
			}
			if event != "" {
				m.Events[event] = true
			}
			m.AddTransition(t)

		case reInternal.MatchString(line):
			// "NAME : entry [/ ACTION]" / "NAME : exit [/ ACTION]" match
			// reEntryExit above first; other lines whose event word is
			// entry or exit (e.g. with a guard) land here as internal
			// transitions on that event.
			mo := reInternal.FindStringSubmatch(line)
			name, event, guard, action := mo[1], mo[2], mo[3], mo[4]
			n, err := m.EnsureNode(name, current(), false)
			if err != nil {
				return nil, newSyntaxError(lineNo, raw, err)
			}
			t := &model.Transition{Src: n, Dst: n, Event: event, Guard: guard, Action: action, Internal: true}
			if event != "" {
				m.Events[event] = true
			}
			m.AddTransition(t)

		default:
			return nil, newSyntaxError(lineNo, raw, ErrUnrecognizedLine)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(scope) != 1 {
		return nil, newSyntaxError(lineNo, "", ErrUnterminatedScope)
	}

	m.Freeze()
	return m, nil
}
