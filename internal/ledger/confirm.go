package ledger

// Prompts shown before destructive operations.
const (
	PromptDelete   = "Are you sure you want to delete this expense?"
	PromptClearAll = "Are you sure you want to delete ALL expenses? This action cannot be undone."
)

// Confirmer decides whether a destructive operation may proceed. The UI layer
// supplies it; a nil Confirmer declines.
type Confirmer func(prompt string) bool

// Confirmed approves every prompt.
func Confirmed(string) bool { return true }

// Declined rejects every prompt.
func Declined(string) bool { return false }

// ConfirmIf returns a Confirmer that answers ok regardless of the prompt.
func ConfirmIf(ok bool) Confirmer {
	return func(string) bool { return ok }
}

func (c Confirmer) ask(prompt string) bool {
	return c != nil && c(prompt)
}
