package emit

import (
	"fmt"

	"github.com/dragomit/hsmgen/internal/model"
)

// Python renders the plan against the dynamically-typed reference target:
// states/events/guards/actions are plain strings, blocks are Python's own
// indentation (CloseBlock emits nothing), and the callback object is a
// plain attribute holding any object exposing the four methods.
type Python struct{}

func (Python) Name() string { return "python" }

func (Python) StateLiteral(typePrefix, name string) string  { return fmt.Sprintf("%q", name) }
func (Python) EventLiteral(typePrefix, name string) string  { return fmt.Sprintf("%q", name) }
func (Python) GuardLiteral(typePrefix, id string) string    { return fmt.Sprintf("%q", id) }
func (Python) ActionLiteral(typePrefix, id string) string   { return fmt.Sprintf("%q", id) }

// StateIdent/EventIdent are the bare identifiers spliced into generated
// handler method names (def _h_<state>_<event>(self):) — unlike
// StateLiteral/EventLiteral these carry no quoting, since a Python
// identifier can't contain a quote character.
func (Python) StateIdent(name string) string { return model.SanitizeID(name) }
func (Python) EventIdent(name string) string { return model.SanitizeID(name) }

func (Python) EmptyPlaceholder() string { return `"__None"` }

func (Python) CallbackEntry(state string) string { return fmt.Sprintf("self._impl.on_entry(%s)", state) }
func (Python) CallbackExit(state string) string  { return fmt.Sprintf("self._impl.on_exit(%s)", state) }
func (Python) CallbackAction(state, event, action string) string {
	return fmt.Sprintf("self._impl.action(%s, %s, %s)", state, event, action)
}
func (Python) GuardCondition(state, event, guard string) string {
	return fmt.Sprintf("self._impl.guard(%s, %s, %s)", state, event, guard)
}

func (Python) EventParam() string                 { return "event" }
func (Python) ZeroEvent(typePrefix string) string { return "None" }
func (Python) CurrentState() string               { return "self._state" }

func (Python) SetState(state string) string { return fmt.Sprintf("self._state = %s", state) }
func (Python) SetTerminated() string        { return "self._terminated = True" }
func (Python) ReturnStatement() string      { return "return" }

func (Python) OpenBlock(cond string) []string {
	if cond == "" {
		return []string{"if True:"}
	}
	return []string{fmt.Sprintf("if %s:", cond)}
}
func (Python) CloseBlock() []string { return nil }
func (Python) Indent() string       { return "    " }

func (p Python) ResetLines(pseudoInitial string) []string {
	return []string{
		"self._started = False",
		"self._terminated = False",
		fmt.Sprintf("self._state = %s", pseudoInitial),
	}
}

func (Python) TemplateName() string  { return "python_module.tmpl" }
func (Python) FileExtension() string { return "py" }
