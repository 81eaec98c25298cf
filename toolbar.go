package canvasgrab

// Trigger names the run a toolbar button asks for.
type Trigger string

// Toolbar triggers.
const (
	TriggerAll       Trigger = "all"
	TriggerSelection Trigger = "select"
)

// Toolbar is a set of capture buttons shown inside the viewer page.
// It doubles as the Prompter and Notifier of the runs it starts.
type Toolbar interface {
	Prompter
	Notifier

	// Triggers delivers button clicks. Clicks made while no receiver is
	// waiting are rejected in the page as busy.
	Triggers() <-chan Trigger

	// Done is closed when the viewer tab goes away or the toolbar is
	// closed.
	Done() <-chan struct{}

	// Close removes the buttons and stops delivering triggers.
	Close() error
}
