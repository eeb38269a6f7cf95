package voting

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the topic-voting use case
type Service interface {
	// SubmitVotes records a participant's ballot of exactly 8 topics,
	// replacing any previous ballot by the same participant
	SubmitVotes(ctx context.Context, roundtableID uuid.UUID, participantEmail string, topicIDs []uuid.UUID) error

	// GetVotes retrieves the topic IDs a participant currently has voted for
	GetVotes(ctx context.Context, roundtableID uuid.UUID, participantEmail string) ([]uuid.UUID, error)

	// Results returns the aggregated voting results, served from cache when
	// fresh
	Results(ctx context.Context, roundtableID uuid.UUID) (*Results, error)

	// ComputeResults recomputes the results from storage, bypassing the
	// cache. Finalization uses this to rank against current data.
	ComputeResults(ctx context.Context, roundtableID uuid.UUID) (*Results, error)
}

// TopicResult is one topic's tally within the results
type TopicResult struct {
	TopicID    uuid.UUID `json:"topic_id"`
	Title      string    `json:"title"`
	Position   int       `json:"position"`
	VoteCount  int       `json:"vote_count"`
	Percentage int       `json:"percentage"`
	IsSelected bool      `json:"is_selected"`
}

// Results is the aggregated outcome of a roundtable's topic voting. Topics
// are ordered by vote count descending, then by topic position ascending, so
// ranking is deterministic regardless of storage ordering.
type Results struct {
	RoundtableID            uuid.UUID     `json:"roundtable_id"`
	Topics                  []TopicResult `json:"topics"`
	TotalActiveParticipants int           `json:"total_active_participants"`
	VotedParticipants       int           `json:"voted_participants"`
	QuorumRequired          int           `json:"quorum_required"`
	CanFinalize             bool          `json:"can_finalize"`
}

// TopN returns the IDs of the first n ranked topics (fewer if there are
// fewer topics)
func (r *Results) TopN(n int) []uuid.UUID {
	if n > len(r.Topics) {
		n = len(r.Topics)
	}
	ids := make([]uuid.UUID, 0, n)
	for _, t := range r.Topics[:n] {
		ids = append(ids, t.TopicID)
	}
	return ids
}
