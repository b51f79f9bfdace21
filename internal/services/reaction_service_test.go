package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"xconfess_backend/internal/email"
	"xconfess_backend/internal/models"
	"xconfess_backend/internal/repositories"
	"xconfess_backend/internal/services/dto"
	"xconfess_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------- Fakes ----------------

type fakeConfessionRepo struct {
	confessions map[string]*models.AnonymousConfession
}

func newFakeConfessionRepo() *fakeConfessionRepo {
	return &fakeConfessionRepo{confessions: make(map[string]*models.AnonymousConfession)}
}

func (r *fakeConfessionRepo) Create(confession *models.AnonymousConfession) error {
	if confession.ID == "" {
		confession.ID = uuid.NewString()
	}
	confession.CreatedAt = time.Now()
	r.confessions[confession.ID] = confession
	return nil
}

func (r *fakeConfessionRepo) FindByID(id string) (*models.AnonymousConfession, error) {
	confession, ok := r.confessions[id]
	if !ok {
		return nil, repositories.ErrConfessionNotFound
	}
	return confession, nil
}

func (r *fakeConfessionRepo) FindByIDWithAuthor(id string) (*models.AnonymousConfession, error) {
	return r.FindByID(id)
}

func (r *fakeConfessionRepo) FindAll(page, pageSize int) ([]models.AnonymousConfession, int64, error) {
	var all []models.AnonymousConfession
	for _, c := range r.confessions {
		all = append(all, *c)
	}
	return all, int64(len(all)), nil
}

func (r *fakeConfessionRepo) Delete(id string) error {
	if _, ok := r.confessions[id]; !ok {
		return repositories.ErrConfessionNotFound
	}
	delete(r.confessions, id)
	return nil
}

type fakeReactionRepo struct {
	reactions []*models.Reaction
	failWith  error
}

func (r *fakeReactionRepo) Create(reaction *models.Reaction) error {
	if r.failWith != nil {
		return r.failWith
	}
	if reaction.ID == "" {
		reaction.ID = uuid.NewString()
	}
	reaction.CreatedAt = time.Now()
	r.reactions = append(r.reactions, reaction)
	return nil
}

func (r *fakeReactionRepo) FindByID(id string) (*models.Reaction, error) {
	for _, reaction := range r.reactions {
		if reaction.ID == id {
			return reaction, nil
		}
	}
	return nil, repositories.ErrReactionNotFound
}

func (r *fakeReactionRepo) FindByConfessionID(confessionID string) ([]models.Reaction, error) {
	var out []models.Reaction
	for _, reaction := range r.reactions {
		if reaction.ConfessionID == confessionID {
			out = append(out, *reaction)
		}
	}
	return out, nil
}

func (r *fakeReactionRepo) CountByConfessionID(confessionID string) (int64, error) {
	reactions, _ := r.FindByConfessionID(confessionID)
	return int64(len(reactions)), nil
}

type notificationCall struct {
	To          string
	Username    string
	ReactorName string
	Content     string
	Emoji       string
}

type fakeSender struct {
	calls      []notificationCall
	resetCalls []string
	failWith   error
}

func (s *fakeSender) Send(e *email.Email) error { return s.failWith }

func (s *fakeSender) SendWelcome(to, username string) error { return s.failWith }

func (s *fakeSender) SendReactionNotification(to, username, reactorName, contentPreview, emoji string) error {
	s.calls = append(s.calls, notificationCall{
		To:          to,
		Username:    username,
		ReactorName: reactorName,
		Content:     contentPreview,
		Emoji:       emoji,
	})
	return s.failWith
}

func (s *fakeSender) SendPasswordReset(to, username, resetToken string) error {
	s.resetCalls = append(s.resetCalls, to)
	return s.failWith
}

// ---------------- Fixtures ----------------

func newReactionTestEnv() (*fakeConfessionRepo, *fakeReactionRepo, *fakeSender, ReactionService) {
	confessionRepo := newFakeConfessionRepo()
	reactionRepo := &fakeReactionRepo{}
	sender := &fakeSender{}
	svc := NewReactionService(reactionRepo, confessionRepo, sender)
	return confessionRepo, reactionRepo, sender, svc
}

func seedConfession(repo *fakeConfessionRepo, message string, author *models.User) *models.AnonymousConfession {
	confession := &models.AnonymousConfession{Message: message}
	if author != nil {
		confession.UserID = &author.ID
		confession.User = author
	}
	_ = repo.Create(confession)
	return confession
}

func testUser(username, email string) *models.User {
	user := &models.User{Username: username, Email: email}
	user.ID = uuid.NewString()
	return user
}

// ---------------- Tests ----------------

func TestCreateReaction_AnonymousNotifiesAuthor(t *testing.T) {
	confessionRepo, reactionRepo, sender, svc := newReactionTestEnv()

	author := testUser("alice", "u1@example.com")
	confession := seedConfession(confessionRepo, "I still sleep with a nightlight", author)

	reaction, err := svc.CreateReaction(&dto.CreateReactionRequest{
		ConfessionID: confession.ID,
		Emoji:        "❤️",
	}, nil)

	require.NoError(t, err)
	require.NotNil(t, reaction)
	assert.Equal(t, "❤️", reaction.Emoji)
	assert.Equal(t, confession.ID, reaction.ConfessionID)
	assert.Nil(t, reaction.UserID, "anonymous reaction must not carry a user")
	assert.NotEmpty(t, reaction.ID)
	assert.False(t, reaction.CreatedAt.IsZero())

	require.Len(t, reactionRepo.reactions, 1)
	require.Len(t, sender.calls, 1)
	call := sender.calls[0]
	assert.Equal(t, "u1@example.com", call.To)
	assert.Equal(t, "alice", call.Username)
	assert.Equal(t, "Anonymous", call.ReactorName)
	assert.Equal(t, "I still sleep with a nightlight", call.Content)
	assert.Equal(t, "❤️", call.Emoji)
}

func TestCreateReaction_AuthenticatedReactorIsRecorded(t *testing.T) {
	confessionRepo, reactionRepo, sender, svc := newReactionTestEnv()

	author := testUser("alice", "u1@example.com")
	confession := seedConfession(confessionRepo, "some confession", author)
	reactor := testUser("bob", "bob@example.com")

	reaction, err := svc.CreateReaction(&dto.CreateReactionRequest{
		ConfessionID: confession.ID,
		Emoji:        "😂",
	}, reactor)

	require.NoError(t, err)
	require.NotNil(t, reaction.UserID)
	assert.Equal(t, reactor.ID, *reaction.UserID)

	require.Len(t, reactionRepo.reactions, 1)
	require.Len(t, sender.calls, 1)
	assert.Equal(t, "bob", sender.calls[0].ReactorName)
}

func TestCreateReaction_AuthorlessConfessionSkipsNotification(t *testing.T) {
	confessionRepo, reactionRepo, sender, svc := newReactionTestEnv()

	confession := seedConfession(confessionRepo, "fully anonymous post", nil)
	reactor := testUser("bob", "bob@example.com")

	reaction, err := svc.CreateReaction(&dto.CreateReactionRequest{
		ConfessionID: confession.ID,
		Emoji:        "😂",
	}, reactor)

	require.NoError(t, err)
	require.NotNil(t, reaction.UserID)
	assert.Equal(t, reactor.ID, *reaction.UserID)
	assert.Len(t, reactionRepo.reactions, 1)
	assert.Empty(t, sender.calls, "no author means no notification attempt")
}

func TestCreateReaction_AuthorWithoutEmailSkipsNotification(t *testing.T) {
	confessionRepo, reactionRepo, sender, svc := newReactionTestEnv()

	author := testUser("quiet", "")
	confession := seedConfession(confessionRepo, "author never gave an email", author)

	reaction, err := svc.CreateReaction(&dto.CreateReactionRequest{
		ConfessionID: confession.ID,
		Emoji:        "👍",
	}, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, reaction.ID)
	assert.Len(t, reactionRepo.reactions, 1)
	assert.Empty(t, sender.calls)
}

func TestCreateReaction_ConfessionNotFound(t *testing.T) {
	_, reactionRepo, sender, svc := newReactionTestEnv()

	reaction, err := svc.CreateReaction(&dto.CreateReactionRequest{
		ConfessionID: "does-not-exist",
		Emoji:        "❤️",
	}, nil)

	require.Error(t, err)
	assert.Nil(t, reaction)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	assert.Empty(t, reactionRepo.reactions, "no row on not-found")
	assert.Empty(t, sender.calls, "no notification on not-found")
}

func TestCreateReaction_PersistenceFailurePropagatesWithoutNotification(t *testing.T) {
	confessionRepo, reactionRepo, sender, svc := newReactionTestEnv()

	author := testUser("alice", "u1@example.com")
	confession := seedConfession(confessionRepo, "some confession", author)

	storageErr := errors.New("connection reset by peer")
	reactionRepo.failWith = storageErr

	reaction, err := svc.CreateReaction(&dto.CreateReactionRequest{
		ConfessionID: confession.ID,
		Emoji:        "❤️",
	}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr)
	assert.Nil(t, reaction)
	assert.Empty(t, sender.calls, "persistence failure must abort before notification")
}

func TestCreateReaction_NotificationFailureIsSwallowed(t *testing.T) {
	confessionRepo, reactionRepo, sender, svc := newReactionTestEnv()

	author := testUser("alice", "u1@example.com")
	confession := seedConfession(confessionRepo, "some confession", author)
	sender.failWith = errors.New("smtp: 550 mailbox unavailable")

	reaction, err := svc.CreateReaction(&dto.CreateReactionRequest{
		ConfessionID: confession.ID,
		Emoji:        "❤️",
	}, nil)

	require.NoError(t, err, "a failed notification must not fail the reaction")
	require.NotNil(t, reaction)
	assert.Len(t, reactionRepo.reactions, 1)
	assert.Len(t, sender.calls, 1, "the send was still attempted")
}

func TestCreateReaction_NoDeduplication(t *testing.T) {
	confessionRepo, reactionRepo, _, svc := newReactionTestEnv()

	author := testUser("alice", "u1@example.com")
	confession := seedConfession(confessionRepo, "some confession", author)

	req := &dto.CreateReactionRequest{ConfessionID: confession.ID, Emoji: "❤️"}

	first, err := svc.CreateReaction(req, nil)
	require.NoError(t, err)
	second, err := svc.CreateReaction(req, nil)
	require.NoError(t, err)

	assert.Len(t, reactionRepo.reactions, 2)
	assert.NotEqual(t, first.ID, second.ID, "identical requests create distinct rows")
}

func TestCreateReaction_AuthorNameFallback(t *testing.T) {
	confessionRepo, _, sender, svc := newReactionTestEnv()

	author := testUser("", "noname@example.com")
	confession := seedConfession(confessionRepo, "some confession", author)

	_, err := svc.CreateReaction(&dto.CreateReactionRequest{
		ConfessionID: confession.ID,
		Emoji:        "❤️",
	}, nil)

	require.NoError(t, err)
	require.Len(t, sender.calls, 1)
	assert.Equal(t, "User", sender.calls[0].Username)
}

func TestCreateReaction_ContentPreviewTruncation(t *testing.T) {
	confessionRepo, _, sender, svc := newReactionTestEnv()

	author := testUser("alice", "u1@example.com")
	longMessage := strings.Repeat("a", 150)
	confession := seedConfession(confessionRepo, longMessage, author)

	_, err := svc.CreateReaction(&dto.CreateReactionRequest{
		ConfessionID: confession.ID,
		Emoji:        "❤️",
	}, nil)

	require.NoError(t, err)
	require.Len(t, sender.calls, 1)
	preview := sender.calls[0].Content
	assert.Equal(t, strings.Repeat("a", 100)+"...", preview)
}

func TestTruncateContent(t *testing.T) {
	assert.Equal(t, "short", truncateContent("short", 100))

	exact := strings.Repeat("x", 100)
	assert.Equal(t, exact, truncateContent(exact, 100), "content at the bound is forwarded unchanged")

	over := strings.Repeat("x", 101)
	assert.Equal(t, strings.Repeat("x", 100)+"...", truncateContent(over, 100))

	// Multi-byte content counts runes, not bytes
	cyrillic := strings.Repeat("ж", 120)
	got := truncateContent(cyrillic, 100)
	assert.Equal(t, strings.Repeat("ж", 100)+"...", got)
}

func TestGetConfessionReactions(t *testing.T) {
	confessionRepo, reactionRepo, _, svc := newReactionTestEnv()

	confession := seedConfession(confessionRepo, "some confession", nil)
	_ = reactionRepo.Create(&models.Reaction{Emoji: "❤️", ConfessionID: confession.ID})
	_ = reactionRepo.Create(&models.Reaction{Emoji: "😂", ConfessionID: confession.ID})

	reactions, err := svc.GetConfessionReactions(confession.ID)
	require.NoError(t, err)
	assert.Len(t, reactions, 2)

	_, err = svc.GetConfessionReactions("missing")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
