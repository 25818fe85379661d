// Package emit turns a planner.Plan into the language-neutral template
// context described in spec.md §6, then renders it through a target
// LanguageSpec and a text/template template — the "pure textual
// substitution engine consuming a fixed context schema" spec.md §1 treats
// template rendering as.
package emit

import (
	"github.com/dragomit/hsmgen/internal/model"
	"github.com/dragomit/hsmgen/internal/planner"
	"github.com/dragomit/hsmgen/internal/resolver"
)

// PseudoInitialState and PseudoFinalState are the two synthetic state
// literals every emitted State enumeration carries in addition to the
// declared leaves.
const (
	PseudoInitialState = "InitialPseudoState"
	PseudoFinalState   = "FinalPseudoState"
)

// EventBlock is one event's pre-rendered dispatch body for one state.
type EventBlock struct {
	EnumName string
	// Ident is the bare identifier form of the event name, for targets
	// (Python) that splice it into a generated method/variable name rather
	// than a value position. EnumName is not safe there since it may be
	// quoted or type-qualified.
	Ident string
	Lines []string
}

// StateCase is one leaf state's full set of per-event dispatch blocks.
type StateCase struct {
	EnumName string
	// Ident is StateCase's counterpart to EventBlock.Ident.
	Ident  string
	Events []EventBlock
}

// Context is the fixed schema named in spec.md §6: everything a target
// LanguageSpec + template needs, with no further knowledge of the model,
// plan, or catalogs.
type Context struct {
	MachineName   string
	NamespaceBase string
	TypePrefix    string

	States    []string
	Events    []string
	GuardIDs  []string
	ActionIDs []string

	ResetLines []string
	StartLines []string
	StateCases []StateCase

	PseudoInitial string
	PseudoFinal   string
}

// Options configures the non-semantic, caller-chosen naming the Context
// needs beyond what the model and plan carry.
type Options struct {
	MachineName   string
	NamespaceBase string
	TypePrefix    string
}

// BuildContext renders r's catalogs and p's plan into a Context for ls.
func BuildContext(r *resolver.Resolved, p *planner.Plan, ls LanguageSpec, opt Options) *Context {
	cat := r.Catalogs

	stateLit := func(n *model.Node) string { return ls.StateLiteral(opt.TypePrefix, n.Name) }
	eventLit := func(ev string) string { return ls.EventLiteral(opt.TypePrefix, ev) }

	ctx := &Context{
		MachineName:   opt.MachineName,
		NamespaceBase: opt.NamespaceBase,
		TypePrefix:    opt.TypePrefix,
		PseudoInitial: ls.StateLiteral(opt.TypePrefix, PseudoInitialState),
		PseudoFinal:   ls.StateLiteral(opt.TypePrefix, PseudoFinalState),
	}

	// ctx.States/.Events/.GuardIDs/.ActionIDs hold bare member names, as
	// consumed by an enum *declaration*. Every in-body reference instead
	// goes through stateLit/eventLit (below) or ls.GuardLiteral/ActionLiteral
	// directly, which add whatever qualification the target's syntax needs.
	//
	// §6: State always carries the two pseudo-states in addition to
	// declared leaves, so this catalog is never subject to the empty
	// placeholder rule.
	ctx.States = append(ctx.States, PseudoInitialState)
	for _, s := range cat.States {
		ctx.States = append(ctx.States, s.Name)
	}
	ctx.States = append(ctx.States, PseudoFinalState)

	if len(cat.Events) == 0 {
		ctx.Events = []string{ls.EmptyPlaceholder()}
	} else {
		ctx.Events = append(ctx.Events, cat.Events...)
	}
	if len(cat.GuardIDs) == 0 {
		ctx.GuardIDs = []string{ls.EmptyPlaceholder()}
	} else {
		ctx.GuardIDs = append(ctx.GuardIDs, cat.GuardIDs...)
	}
	if len(cat.ActionIDs) == 0 {
		ctx.ActionIDs = []string{ls.EmptyPlaceholder()}
	} else {
		ctx.ActionIDs = append(ctx.ActionIDs, cat.ActionIDs...)
	}

	ctx.ResetLines = ls.ResetLines(ctx.PseudoInitial)
	ctx.StartLines = buildStartLines(p, cat, ls, opt.TypePrefix)

	for _, se := range p.StateEvents {
		sc := StateCase{
			EnumName: stateLit(se.Leaf),
			Ident:    ls.StateIdent(se.Leaf.Name),
		}
		for _, er := range se.Events {
			sc.Events = append(sc.Events, EventBlock{
				EnumName: eventLit(er.Event),
				Ident:    ls.EventIdent(er.Event),
				Lines:    buildRuleLines(er.Rules, cat, ls, opt.TypePrefix),
			})
		}
		ctx.StateCases = append(ctx.StateCases, sc)
	}

	return ctx
}

func buildStartLines(p *planner.Plan, cat *model.Catalogs, ls LanguageSpec, typePrefix string) []string {
	var lines []string
	for _, step := range p.Start {
		lines = append(lines, entryStepLines(step, ls.ZeroEvent(typePrefix), cat, ls, typePrefix)...)
	}
	lines = append(lines, ls.SetState(ls.StateLiteral(typePrefix, p.StartLeaf.Name)))
	return lines
}

func entryStepLines(step planner.NodeStep, eventExpr string, cat *model.Catalogs, ls LanguageSpec, typePrefix string) []string {
	var lines []string
	stateLit := ls.StateLiteral(typePrefix, step.Node.Name)
	if step.InitialStep != nil {
		ownerLit := ls.StateLiteral(typePrefix, step.InitialStep.Owner.Name)
		lines = append(lines, ls.CallbackAction(ownerLit, eventExpr, ls.ActionLiteral(typePrefix, cat.ActionID[step.InitialStep.Name])))
	}
	lines = append(lines, ls.CallbackEntry(stateLit))
	for _, a := range step.Actions {
		lines = append(lines, ls.CallbackAction(stateLit, eventExpr, ls.ActionLiteral(typePrefix, cat.ActionID[a])))
	}
	return lines
}

func exitStepLines(step planner.NodeStep, eventExpr string, cat *model.Catalogs, ls LanguageSpec, typePrefix string) []string {
	var lines []string
	stateLit := ls.StateLiteral(typePrefix, step.Node.Name)
	for _, a := range step.Actions {
		lines = append(lines, ls.CallbackAction(stateLit, eventExpr, ls.ActionLiteral(typePrefix, cat.ActionID[a])))
	}
	lines = append(lines, ls.CallbackExit(stateLit))
	return lines
}

// buildRuleLines renders one event's ordered rule list into the guarded
// if/block sequence the dispatcher evaluates top to bottom, per §4.3.
func buildRuleLines(rules []*planner.Rule, cat *model.Catalogs, ls LanguageSpec, typePrefix string) []string {
	var lines []string
	for _, rule := range rules {
		var guardCond string
		if rule.Guard != "" {
			guardCond = ls.GuardCondition(ls.CurrentState(), ls.EventParam(), ls.GuardLiteral(typePrefix, cat.GuardID[rule.Guard]))
		}
		var body []string
		transitionAction := func() {
			if rule.Action != "" {
				body = append(body, ls.CallbackAction(ls.CurrentState(), ls.EventParam(), ls.ActionLiteral(typePrefix, cat.ActionID[rule.Action])))
			}
		}

		switch {
		case rule.Internal:
			transitionAction()
			body = append(body, ls.ReturnStatement())

		case rule.Terminal:
			for _, step := range rule.ExitChain {
				body = append(body, exitStepLines(step, ls.EventParam(), cat, ls, typePrefix)...)
			}
			transitionAction()
			body = append(body, ls.CallbackEntry(ls.StateLiteral(typePrefix, PseudoFinalState)))
			body = append(body, ls.SetState(ls.StateLiteral(typePrefix, PseudoFinalState)))
			body = append(body, ls.SetTerminated())
			body = append(body, ls.ReturnStatement())

		default:
			for _, step := range rule.ExitChain {
				body = append(body, exitStepLines(step, ls.EventParam(), cat, ls, typePrefix)...)
			}
			transitionAction()
			for _, step := range rule.EntryChain {
				body = append(body, entryStepLines(step, ls.EventParam(), cat, ls, typePrefix)...)
			}
			body = append(body, ls.SetState(ls.StateLiteral(typePrefix, rule.DestLeaf.Name)))
			body = append(body, ls.ReturnStatement())
		}

		if guardCond == "" {
			lines = append(lines, ls.OpenBlock("")...)
		} else {
			lines = append(lines, ls.OpenBlock(guardCond)...)
		}
		lines = append(lines, indentAll(body, ls.Indent())...)
		lines = append(lines, ls.CloseBlock()...)
	}
	return lines
}

func indentAll(lines []string, indent string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = indent + l
	}
	return out
}
