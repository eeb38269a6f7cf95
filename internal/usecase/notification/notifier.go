package notification

import "context"

// Kind identifies what a notification is about. Rendering and delivery live
// behind the Notifier implementation; the engine only decides when to send.
type Kind string

const (
	KindVotingInvite       Kind = "voting_invite"
	KindTrainerAssignment  Kind = "trainer_assignment"
	KindSessionRescheduled Kind = "session_rescheduled"
	KindQuestionsSubmitted Kind = "questions_submitted"
	KindRevisionRequested  Kind = "revision_requested"
	KindQuestionsReleased  Kind = "questions_released"
)

// Notifier dispatches a notification to a recipient. Dispatch is
// fire-and-forget: a delivery failure must be logged by the implementation
// and never fails the operation that triggered it.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, recipient string, payload map[string]string)
}
