package roundtable

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	usecaseErrors "github.com/roundtable-hub/roundtable/internal/usecase/errors"
	"github.com/roundtable-hub/roundtable/internal/infrastructure/cache"
	"github.com/roundtable-hub/roundtable/internal/usecase/usecasetest"
	"github.com/roundtable-hub/roundtable/internal/usecase/voting"
	"github.com/roundtable-hub/roundtable/pkg/token"
)

type fixture struct {
	service         *RoundtableService
	votingService   *voting.VotingService
	roundtableRepo  *usecasetest.RoundtableRepo
	topicRepo       *usecasetest.TopicRepo
	sessionRepo     *usecasetest.SessionRepo
	participantRepo *usecasetest.ParticipantRepo
	voteRepo        *usecasetest.VoteRepo
	clientRepo      *usecasetest.ClientRepo
	notifier        *usecasetest.Notifier
	tokens          *token.Manager

	client *entities.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		roundtableRepo:  usecasetest.NewRoundtableRepo(),
		topicRepo:       usecasetest.NewTopicRepo(),
		sessionRepo:     usecasetest.NewSessionRepo(),
		participantRepo: usecasetest.NewParticipantRepo(),
		voteRepo:        usecasetest.NewVoteRepo(),
		clientRepo:      usecasetest.NewClientRepo(),
		notifier:        &usecasetest.Notifier{},
	}
	f.tokens = token.NewManager("test-secret", time.Hour)
	store := cache.NewMemoryStore()
	logger := zap.NewNop()

	f.votingService = voting.NewVotingService(
		f.roundtableRepo, f.topicRepo, f.voteRepo, f.participantRepo,
		usecasetest.TxManager{}, store, logger,
	)
	f.service = NewRoundtableService(
		f.roundtableRepo, f.topicRepo, f.sessionRepo, f.participantRepo,
		f.voteRepo, f.clientRepo, f.votingService,
		usecasetest.TxManager{}, f.tokens, f.notifier, store, logger,
	)

	f.client = &entities.Client{Name: "Acme", ContactEmail: "hr@acme.test"}
	if err := f.clientRepo.Create(context.Background(), f.client); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return f
}

func tenTopics() []TopicInput {
	topics := make([]TopicInput, 0, entities.TopicsPerRoundtable)
	for i := 1; i <= entities.TopicsPerRoundtable; i++ {
		topics = append(topics, TopicInput{Title: fmt.Sprintf("Topic %d", i)})
	}
	return topics
}

func (f *fixture) createRoundtable(t *testing.T) *entities.Roundtable {
	t.Helper()
	rt, err := f.service.Create(context.Background(), CreateInput{
		ClientID: f.client.ID,
		Name:     "Leadership cohort",
		Topics:   tenTopics(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return rt
}

func (f *fixture) addParticipants(t *testing.T, n int) {
	t.Helper()
	// createRoundtable is always called first in these tests; there is a
	// single roundtable in the repo.
	var roundtableID uuid.UUID
	for id := range f.roundtableRepo.Items {
		roundtableID = id
	}
	for i := 0; i < n; i++ {
		email := fmt.Sprintf("p%d@example.com", i)
		if _, err := f.service.AddParticipant(context.Background(), roundtableID, email, "Participant"); err != nil {
			t.Fatalf("AddParticipant %s: %v", email, err)
		}
	}
}

func TestCalculateProgress(t *testing.T) {
	if got := CalculateProgress(nil); got != 0 {
		t.Errorf("empty: got %d, want 0", got)
	}

	sessions := make([]*entities.Session, 0, 10)
	for i := 1; i <= 10; i++ {
		sessions = append(sessions, &entities.Session{SessionNumber: i, Status: entities.SessionStatusScheduled})
	}
	if got := CalculateProgress(sessions); got != 0 {
		t.Errorf("none delivered: got %d, want 0", got)
	}

	sessions[0].Status = entities.SessionStatusCompleted
	sessions[1].Status = entities.SessionStatusFeedbackSent
	sessions[2].Status = entities.SessionStatusCompleted
	if got := CalculateProgress(sessions); got != 30 {
		t.Errorf("3 of 10 delivered: got %d, want 30", got)
	}

	sessions[3].Status = entities.SessionStatusCancelled
	if got := CalculateProgress(sessions); got != 30 {
		t.Errorf("cancelled session must not count as delivered: got %d", got)
	}

	for _, s := range sessions {
		s.Status = entities.SessionStatusCompleted
	}
	if got := CalculateProgress(sessions); got != 100 {
		t.Errorf("all delivered: got %d, want 100", got)
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)
	ctx := context.Background()

	if rt.Status != entities.RoundtableStatusSetup {
		t.Errorf("status = %s, want setup", rt.Status)
	}
	if rt.MinQuestions != 3 || rt.MaxQuestions != 10 {
		t.Errorf("question bounds = %d..%d, want 3..10", rt.MinQuestions, rt.MaxQuestions)
	}

	topics, _ := f.topicRepo.FindByRoundtableID(ctx, rt.ID)
	if len(topics) != entities.TopicsPerRoundtable {
		t.Fatalf("got %d topics, want %d", len(topics), entities.TopicsPerRoundtable)
	}
	for i, topic := range topics {
		if topic.Position != i+1 {
			t.Errorf("topic %d position = %d", i, topic.Position)
		}
		if topic.IsSelected {
			t.Errorf("topic %d selected at creation", i)
		}
	}

	sessions, _ := f.sessionRepo.FindByRoundtableID(ctx, rt.ID)
	if len(sessions) != entities.SessionsPerRoundtable {
		t.Fatalf("got %d sessions, want %d", len(sessions), entities.SessionsPerRoundtable)
	}
	for i, session := range sessions {
		if session.SessionNumber != i+1 {
			t.Errorf("session %d number = %d", i, session.SessionNumber)
		}
		if session.Status != entities.SessionStatusPlanned {
			t.Errorf("session %d status = %s, want planned", i+1, session.Status)
		}
		if session.ScheduledAt != nil {
			t.Errorf("session %d has a date before scheduling", i+1)
		}
	}
}

func TestCreate_RequiresExactlyTenTopics(t *testing.T) {
	f := newFixture(t)
	for _, n := range []int{0, 9, 11} {
		topics := make([]TopicInput, n)
		_, err := f.service.Create(context.Background(), CreateInput{ClientID: f.client.ID, Name: "x", Topics: topics})
		if !errors.Is(err, usecaseErrors.ErrWrongTopicCount) {
			t.Errorf("%d topics: got %v, want ErrWrongTopicCount", n, err)
		}
	}
}

func TestCreate_UnknownClient(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Create(context.Background(), CreateInput{ClientID: uuid.New(), Name: "x", Topics: tenTopics()})
	if !errors.Is(err, usecaseErrors.ErrClientNotFound) {
		t.Fatalf("got %v, want ErrClientNotFound", err)
	}
}

func TestCreate_RejectsInvertedQuestionBounds(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Create(context.Background(), CreateInput{
		ClientID: f.client.ID, Name: "x", Topics: tenTopics(),
		MinQuestions: 5, MaxQuestions: 4,
	})
	if !errors.Is(err, usecaseErrors.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestOpenVoting(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)
	ctx := context.Background()
	f.addParticipants(t, 3)

	votingToken, err := f.service.OpenVoting(ctx, rt.ID)
	if err != nil {
		t.Fatalf("OpenVoting: %v", err)
	}

	grantedID, err := f.tokens.ValidateVotingToken(votingToken)
	if err != nil {
		t.Fatalf("returned token does not validate: %v", err)
	}
	if grantedID != rt.ID {
		t.Errorf("token roundtable = %s, want %s", grantedID, rt.ID)
	}

	stored, _ := f.roundtableRepo.FindByID(ctx, rt.ID)
	if stored.Status != entities.RoundtableStatusTopicVoting {
		t.Errorf("status = %s, want topic_voting", stored.Status)
	}
	if len(f.notifier.Sent) != 3 {
		t.Errorf("got %d invites, want 3", len(f.notifier.Sent))
	}
}

func TestOpenVoting_RequiresSetupState(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)
	f.addParticipants(t, 1)

	rt.Status = entities.RoundtableStatusScheduled
	_, err := f.service.OpenVoting(context.Background(), rt.ID)
	if !errors.Is(err, usecaseErrors.ErrInvalidState) {
		t.Fatalf("got %v, want ErrInvalidState", err)
	}
}

func TestOpenVoting_RequiresParticipants(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)

	_, err := f.service.OpenVoting(context.Background(), rt.ID)
	if !errors.Is(err, usecaseErrors.ErrNoParticipants) {
		t.Fatalf("got %v, want ErrNoParticipants", err)
	}
}

func TestFinalizeVoting(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)
	ctx := context.Background()
	f.addParticipants(t, 2)

	if _, err := f.service.OpenVoting(ctx, rt.ID); err != nil {
		t.Fatalf("OpenVoting: %v", err)
	}

	topics, _ := f.topicRepo.FindByRoundtableID(ctx, rt.ID)
	ballot := make([]uuid.UUID, 0, entities.SelectedTopicsRequired)
	for _, topic := range topics[:entities.SelectedTopicsRequired] {
		ballot = append(ballot, topic.ID)
	}
	if err := f.votingService.SubmitVotes(ctx, rt.ID, "p0@example.com", ballot); err != nil {
		t.Fatalf("SubmitVotes: %v", err)
	}

	// Only 1 of 2 participants voted: below the advisory quorum, but
	// finalization proceeds anyway.
	updated, err := f.service.FinalizeVoting(ctx, rt.ID)
	if err != nil {
		t.Fatalf("FinalizeVoting: %v", err)
	}
	if updated.Status != entities.RoundtableStatusScheduled {
		t.Errorf("status = %s, want scheduled", updated.Status)
	}

	selected, _ := f.topicRepo.FindSelectedByRoundtableID(ctx, rt.ID)
	if len(selected) != entities.SelectedTopicsRequired {
		t.Fatalf("got %d selected topics, want %d", len(selected), entities.SelectedTopicsRequired)
	}
	voted := make(map[uuid.UUID]bool, len(ballot))
	for _, id := range ballot {
		voted[id] = true
	}
	for _, topic := range selected {
		if !voted[topic.ID] {
			t.Errorf("topic at position %d selected without votes over a voted one", topic.Position)
		}
	}

	// Finalization is one-way.
	if _, err := f.service.FinalizeVoting(ctx, rt.ID); !errors.Is(err, usecaseErrors.ErrInvalidState) {
		t.Fatalf("second finalize: got %v, want ErrInvalidState", err)
	}
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)
	ctx := context.Background()

	if err := f.service.Cancel(ctx, rt.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	stored, _ := f.roundtableRepo.FindByID(ctx, rt.ID)
	if stored.Status != entities.RoundtableStatusCancelled {
		t.Errorf("status = %s, want cancelled", stored.Status)
	}

	// Terminal states refuse cancellation.
	if err := f.service.Cancel(ctx, rt.ID); !errors.Is(err, usecaseErrors.ErrInvalidState) {
		t.Fatalf("cancel of cancelled: got %v, want ErrInvalidState", err)
	}
}

func TestAddParticipant_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)
	ctx := context.Background()

	if _, err := f.service.AddParticipant(ctx, rt.ID, "dup@example.com", "First"); err != nil {
		t.Fatalf("AddParticipant: %v", err)
	}
	_, err := f.service.AddParticipant(ctx, rt.ID, "dup@example.com", "Second")
	if !errors.Is(err, usecaseErrors.ErrParticipantExists) {
		t.Fatalf("got %v, want ErrParticipantExists", err)
	}
}

func TestDropParticipant(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)
	ctx := context.Background()

	p, err := f.service.AddParticipant(ctx, rt.ID, "leaver@example.com", "Leaver")
	if err != nil {
		t.Fatalf("AddParticipant: %v", err)
	}
	if err := f.service.DropParticipant(ctx, p.ID); err != nil {
		t.Fatalf("DropParticipant: %v", err)
	}

	count, _ := f.participantRepo.CountActiveByRoundtableID(ctx, rt.ID)
	if count != 0 {
		t.Errorf("active count = %d, want 0", count)
	}
}

func TestUpdateSessionStatus_CascadesRoundtableStatus(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)
	ctx := context.Background()

	rt.Status = entities.RoundtableStatusScheduled
	sessions, _ := f.sessionRepo.FindByRoundtableID(ctx, rt.ID)

	// First delivered session starts the program.
	if err := f.service.UpdateSessionStatus(ctx, sessions[0].ID, entities.SessionStatusCompleted); err != nil {
		t.Fatalf("UpdateSessionStatus: %v", err)
	}
	stored, _ := f.roundtableRepo.FindByID(ctx, rt.ID)
	if stored.Status != entities.RoundtableStatusInProgress {
		t.Fatalf("after first delivery: status = %s, want in_progress", stored.Status)
	}

	// Delivering the rest completes it.
	for _, session := range sessions[1:] {
		if err := f.service.UpdateSessionStatus(ctx, session.ID, entities.SessionStatusFeedbackSent); err != nil {
			t.Fatalf("UpdateSessionStatus session %d: %v", session.SessionNumber, err)
		}
	}
	stored, _ = f.roundtableRepo.FindByID(ctx, rt.ID)
	if stored.Status != entities.RoundtableStatusCompleted {
		t.Fatalf("after full delivery: status = %s, want completed", stored.Status)
	}
}

func TestUpdateSessionStatus_RejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)
	sessions, _ := f.sessionRepo.FindByRoundtableID(context.Background(), rt.ID)

	err := f.service.UpdateSessionStatus(context.Background(), sessions[0].ID, entities.SessionStatusPlanned)
	if !errors.Is(err, usecaseErrors.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestDeleteClient_BlockedByRunningRoundtable(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)
	ctx := context.Background()

	err := f.service.DeleteClient(ctx, f.client.ID)
	if !errors.Is(err, usecaseErrors.ErrClientHasActiveWork) {
		t.Fatalf("got %v, want ErrClientHasActiveWork", err)
	}

	if err := f.service.Cancel(ctx, rt.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := f.service.DeleteClient(ctx, f.client.ID); err != nil {
		t.Fatalf("DeleteClient after cancel: %v", err)
	}
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	rt := f.createRoundtable(t)
	ctx := context.Background()
	f.addParticipants(t, 4)

	sessions, _ := f.sessionRepo.FindByRoundtableID(ctx, rt.ID)
	rt.Status = entities.RoundtableStatusScheduled
	if err := f.service.UpdateSessionStatus(ctx, sessions[0].ID, entities.SessionStatusCompleted); err != nil {
		t.Fatalf("UpdateSessionStatus: %v", err)
	}

	dashboard, err := f.service.Dashboard(ctx, rt.ID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dashboard.ActiveParticipants != 4 {
		t.Errorf("active participants = %d, want 4", dashboard.ActiveParticipants)
	}
	if dashboard.SessionsDelivered != 1 {
		t.Errorf("delivered = %d, want 1", dashboard.SessionsDelivered)
	}
	if dashboard.ProgressPercent != 10 {
		t.Errorf("progress = %d, want 10", dashboard.ProgressPercent)
	}
	if dashboard.Status != entities.RoundtableStatusInProgress {
		t.Errorf("status = %s, want in_progress", dashboard.Status)
	}
}
