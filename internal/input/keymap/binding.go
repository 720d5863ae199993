package keymap

import "fmt"

// Kind tags the variant held by a Binding.
type Kind uint8

const (
	// KindUndefined means no keymap bound the combo.
	KindUndefined Kind = iota
	// KindFallthrough lets the event through to the content surface.
	KindFallthrough
	// KindKeymaps means the combo is a prefix; Keymaps continues it.
	KindKeymaps
	// KindCommand runs Command.
	KindCommand
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindFallthrough:
		return "fallthrough"
	case KindKeymaps:
		return "keymaps"
	case KindCommand:
		return "command"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Binding is the result of resolving a combo against a keymap stack.
type Binding struct {
	Kind Kind

	// Command is the command name for KindCommand.
	Command string

	// Repeat is the alternate command used when this binding is reached
	// again through a prefix continuation that last ran Command.
	Repeat string

	// BrowserObject is stashed on the context for the command to use.
	BrowserObject any

	// Fallthrough leaves the platform event unsuppressed. Always set for
	// KindFallthrough; optional for commands.
	Fallthrough bool

	// Keymaps is the continuation stack for KindKeymaps.
	Keymaps Stack
}

// Undefined is the zero Binding.
var Undefined = Binding{}

// CommandBinding creates a command binding.
func CommandBinding(command string, opts ...Option) Binding {
	b := Binding{Kind: KindCommand, Command: command}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// FallthroughBinding creates a binding that passes the event through.
func FallthroughBinding() Binding {
	return Binding{Kind: KindFallthrough, Fallthrough: true}
}

// KeymapsBinding creates a prefix binding continuing with stack.
func KeymapsBinding(stack ...*Keymap) Binding {
	return Binding{Kind: KindKeymaps, Keymaps: stack}
}

// IsUndefined returns true if nothing was bound.
func (b Binding) IsUndefined() bool {
	return b.Kind == KindUndefined
}

// IsPrefix returns true if the binding continues a sequence.
func (b Binding) IsPrefix() bool {
	return b.Kind == KindKeymaps
}

// Suppresses reports whether the platform event must be stopped before the
// binding is acted on.
func (b Binding) Suppresses() bool {
	return b.Kind == KindUndefined || !b.Fallthrough
}

// String returns a short description for logs.
func (b Binding) String() string {
	switch b.Kind {
	case KindCommand:
		if b.Repeat != "" {
			return fmt.Sprintf("command %s (repeat %s)", b.Command, b.Repeat)
		}
		return "command " + b.Command
	case KindKeymaps:
		return fmt.Sprintf("keymaps %v", b.Keymaps)
	default:
		return b.Kind.String()
	}
}

// Option configures a command binding.
type Option func(*Binding)

// WithRepeat sets the repeat alternate command.
func WithRepeat(command string) Option {
	return func(b *Binding) {
		b.Repeat = command
	}
}

// WithBrowserObject attaches an object for the command.
func WithBrowserObject(obj any) Option {
	return func(b *Binding) {
		b.BrowserObject = obj
	}
}

// WithFallthrough lets the event reach the content surface as well.
func WithFallthrough() Option {
	return func(b *Binding) {
		b.Fallthrough = true
	}
}
