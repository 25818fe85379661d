package emit

// LanguageSpec adapts the language-neutral line builders in context.go to
// one target language's syntax. Each method returns a fragment (or, for the
// block openers/closers, a short line set) rather than a whole construct, so
// a single walk of the plan in context.go drives all three targets.
type LanguageSpec interface {
	Name() string

	StateLiteral(typePrefix, stateName string) string
	EventLiteral(typePrefix, eventName string) string
	GuardLiteral(typePrefix, guardID string) string
	ActionLiteral(typePrefix, actionID string) string

	// StateIdent is the bare, sanitized identifier for stateName, suitable
	// for splicing into a generated method or variable name. Unlike
	// StateLiteral it carries no type qualification or quoting, so it must
	// never be used in a value position (only StateLiteral's result is a
	// valid expression of the target language).
	StateIdent(stateName string) string
	// EventIdent is EventLiteral's bare-identifier counterpart.
	EventIdent(eventName string) string

	// EmptyPlaceholder names the single literal emitted in place of an
	// otherwise-empty enumeration, per spec.md §3's "__None" placeholder
	// rule (never an empty enum body).
	EmptyPlaceholder() string

	CallbackEntry(stateLiteral string) string
	CallbackExit(stateLiteral string) string
	// CallbackAction renders impl_.action(state, event, actionId). eventExpr
	// is the runtime dispatch parameter while handling a live event, or
	// ZeroEvent(typePrefix) while running the start sequence (spec.md §4.3: the start
	// sequence's action callbacks carry a default-constructed event, since
	// no event triggered them).
	CallbackAction(stateLiteral, eventExpr, actionLiteral string) string
	// GuardCondition renders impl_.guard(state, event, guardId) wrapped in
	// this language's boolean-test syntax. state and event are always the
	// dispatch-local current state and live event.
	GuardCondition(stateLiteral, eventExpr, guardLiteral string) string

	// EventParam is the live event expression available inside dispatch.
	EventParam() string
	// ZeroEvent is the default-constructed event expression used where the
	// start sequence invokes action() outside of any real dispatch.
	ZeroEvent(typePrefix string) string
	// CurrentState is the expression naming the machine's current-state
	// field, for use as the implicit "state" argument action()/guard() take.
	CurrentState() string

	SetState(stateLiteral string) string
	SetTerminated() string
	ReturnStatement() string

	// OpenBlock/CloseBlock bracket one rule's body. cond == "" opens an
	// unconditional block (still needed so internal/terminal/regular rule
	// bodies share one shape regardless of guard presence).
	OpenBlock(cond string) []string
	CloseBlock() []string

	Indent() string

	// ResetLines returns the lines of the reset()/constructor body that
	// puts the machine back into InitialPseudoState before Start() has run.
	ResetLines(pseudoInitialLiteral string) []string

	// TemplateName is the embedded template file this target renders with.
	TemplateName() string
	// FileExtension is the suffix for the generated source file, excluding
	// the leading dot.
	FileExtension() string
}
