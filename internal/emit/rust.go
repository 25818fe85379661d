package emit

import (
	"fmt"

	"github.com/dragomit/hsmgen/internal/model"
)

// Rust renders the plan as a module: plain enums, a Callbacks trait, and a
// struct holding a boxed trait object.
type Rust struct{}

func (Rust) Name() string { return "rust" }

func (Rust) StateLiteral(typePrefix, name string) string {
	return fmt.Sprintf("%sState::%s", typePrefix, name)
}
func (Rust) EventLiteral(typePrefix, name string) string {
	return fmt.Sprintf("%sEvent::%s", typePrefix, name)
}
func (Rust) GuardLiteral(typePrefix, id string) string {
	return fmt.Sprintf("%sGuardId::%s", typePrefix, id)
}
func (Rust) ActionLiteral(typePrefix, id string) string {
	return fmt.Sprintf("%sActionId::%s", typePrefix, id)
}

// StateIdent/EventIdent mirror CPP's: Rust match arms use the qualified
// StateLiteral/EventLiteral and never need the bare form, but the method
// exists for LanguageSpec conformance.
func (Rust) StateIdent(name string) string { return model.SanitizeID(name) }
func (Rust) EventIdent(name string) string { return model.SanitizeID(name) }

func (Rust) EmptyPlaceholder() string { return "__None" }

func (Rust) CallbackEntry(state string) string {
	return fmt.Sprintf("self.callbacks.on_entry(%s);", state)
}
func (Rust) CallbackExit(state string) string {
	return fmt.Sprintf("self.callbacks.on_exit(%s);", state)
}
func (Rust) CallbackAction(state, event, action string) string {
	return fmt.Sprintf("self.callbacks.action(%s, %s, %s);", state, event, action)
}
func (Rust) GuardCondition(state, event, guard string) string {
	return fmt.Sprintf("self.callbacks.guard(%s, %s, %s)", state, event, guard)
}

// EventParam/ZeroEvent: the Rust Callbacks::action signature takes
// Option<Event> rather than Event, since Rust has no implicit default for a
// fieldless enum — Some(event) during live dispatch, None during the start
// sequence, where no event triggered the entry.
func (Rust) EventParam() string                 { return "Some(event)" }
func (Rust) ZeroEvent(typePrefix string) string { return "None" }
func (Rust) CurrentState() string               { return "self.state" }

func (Rust) SetState(state string) string { return fmt.Sprintf("self.state = %s;", state) }
func (Rust) SetTerminated() string        { return "self.terminated = true;" }
func (Rust) ReturnStatement() string      { return "return;" }

func (Rust) OpenBlock(cond string) []string {
	if cond == "" {
		return []string{"{"}
	}
	return []string{fmt.Sprintf("if %s {", cond)}
}
func (Rust) CloseBlock() []string { return []string{"}"} }
func (Rust) Indent() string       { return "    " }

func (r Rust) ResetLines(pseudoInitial string) []string {
	return []string{
		"self.started = false;",
		"self.terminated = false;",
		fmt.Sprintf("self.state = %s;", pseudoInitial),
	}
}

func (Rust) TemplateName() string  { return "rust_module.tmpl" }
func (Rust) FileExtension() string { return "rs" }
