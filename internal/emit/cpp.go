package emit

import (
	"fmt"

	"github.com/dragomit/hsmgen/internal/model"
)

// CPP renders the plan as a single self-contained header, mirroring the
// original generator's cpp_header.j2 shape: nested enum classes, a
// Callbacks abstract base, and a machine class holding a non-owning
// pointer to it.
type CPP struct{}

func (CPP) Name() string { return "cpp" }

func (CPP) StateLiteral(typePrefix, name string) string {
	return fmt.Sprintf("%sState::%s", typePrefix, name)
}
func (CPP) EventLiteral(typePrefix, name string) string {
	return fmt.Sprintf("%sEvent::%s", typePrefix, name)
}
func (CPP) GuardLiteral(typePrefix, id string) string {
	return fmt.Sprintf("%sGuardId::%s", typePrefix, id)
}
func (CPP) ActionLiteral(typePrefix, id string) string {
	return fmt.Sprintf("%sActionId::%s", typePrefix, id)
}

// StateIdent/EventIdent give C++ the same bare-identifier primitive as the
// other targets, for consistency with LanguageSpec; C++ switch cases use
// the qualified StateLiteral/EventLiteral directly and never need these.
func (CPP) StateIdent(name string) string { return model.SanitizeID(name) }
func (CPP) EventIdent(name string) string { return model.SanitizeID(name) }

func (CPP) EmptyPlaceholder() string { return "__None" }

func (CPP) CallbackEntry(state string) string { return fmt.Sprintf("impl_->on_entry(%s);", state) }
func (CPP) CallbackExit(state string) string  { return fmt.Sprintf("impl_->on_exit(%s);", state) }
func (CPP) CallbackAction(state, event, action string) string {
	return fmt.Sprintf("impl_->action(%s, %s, %s);", state, event, action)
}
func (CPP) GuardCondition(state, event, guard string) string {
	return fmt.Sprintf("impl_->guard(%s, %s, %s)", state, event, guard)
}

func (CPP) EventParam() string { return "e" }
func (CPP) ZeroEvent(typePrefix string) string {
	return fmt.Sprintf("%sEvent{}", typePrefix)
}
func (CPP) CurrentState() string { return "s_" }

func (CPP) SetState(state string) string { return fmt.Sprintf("s_ = %s;", state) }
func (CPP) SetTerminated() string        { return "terminated_ = true;" }
func (CPP) ReturnStatement() string      { return "return;" }

func (CPP) OpenBlock(cond string) []string {
	if cond == "" {
		return []string{"{"}
	}
	return []string{fmt.Sprintf("if (%s) {", cond)}
}
func (CPP) CloseBlock() []string { return []string{"}"} }
func (CPP) Indent() string       { return "    " }

func (c CPP) ResetLines(pseudoInitial string) []string {
	return []string{
		"started_ = false;",
		"terminated_ = false;",
		fmt.Sprintf("s_ = %s;", pseudoInitial),
	}
}

func (CPP) TemplateName() string { return "cpp_header.tmpl" }
func (CPP) FileExtension() string { return "hpp" }
