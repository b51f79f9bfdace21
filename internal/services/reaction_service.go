package services

import (
	"xconfess_backend/internal/email"
	"xconfess_backend/internal/logger"
	"xconfess_backend/internal/models"
	"xconfess_backend/internal/repositories"
	"xconfess_backend/internal/services/dto"

	"xconfess_backend/pkg/apperrors"
)

// contentPreviewLimit bounds how much confession text is embedded in an
// outbound notification. Longer content is cut and marked with an ellipsis.
const contentPreviewLimit = 100

type ReactionService interface {
	// CreateReaction records an emoji reaction to a confession. reactor is
	// nil for anonymous callers. The author notification is best-effort: its
	// failure is logged and never surfaces to the caller.
	CreateReaction(req *dto.CreateReactionRequest, reactor *models.User) (*dto.ReactionResponse, error)
	GetConfessionReactions(confessionID string) ([]dto.ReactionResponse, error)
}

type reactionService struct {
	reactionRepo   repositories.ReactionRepository
	confessionRepo repositories.ConfessionRepository
	emailSender    email.Sender
}

func NewReactionService(
	reactionRepo repositories.ReactionRepository,
	confessionRepo repositories.ConfessionRepository,
	emailSender email.Sender,
) ReactionService {
	return &reactionService{
		reactionRepo:   reactionRepo,
		confessionRepo: confessionRepo,
		emailSender:    emailSender,
	}
}

func (s *reactionService) CreateReaction(req *dto.CreateReactionRequest, reactor *models.User) (*dto.ReactionResponse, error) {
	confession, err := s.confessionRepo.FindByIDWithAuthor(req.ConfessionID)
	if err != nil {
		if err == repositories.ErrConfessionNotFound {
			return nil, apperrors.ErrConfessionNotFound
		}
		return nil, err
	}

	reaction := &models.Reaction{
		Emoji:        req.Emoji,
		ConfessionID: confession.ID,
	}
	if reactor != nil {
		userID := reactor.ID
		reaction.UserID = &userID
	}

	if err := s.reactionRepo.Create(reaction); err != nil {
		return nil, err
	}

	// The reaction is durable at this point. Whatever happens during
	// notification must not change the outcome the caller gets.
	s.notifyAuthor(confession, reactor, req.Emoji)

	return buildReactionResponse(reaction), nil
}

// notifyAuthor emails the confession author about a new reaction. A missing
// author and an author without an email both skip silently; a send failure is
// logged and swallowed.
func (s *reactionService) notifyAuthor(confession *models.AnonymousConfession, reactor *models.User, emoji string) {
	author := confession.User
	if author == nil || author.Email == "" {
		return
	}

	authorName := author.Username
	if authorName == "" {
		authorName = "User"
	}

	reactorName := "Anonymous"
	if reactor != nil && reactor.Username != "" {
		reactorName = reactor.Username
	}

	preview := truncateContent(confession.Message, contentPreviewLimit)

	err := s.emailSender.SendReactionNotification(author.Email, authorName, reactorName, preview, emoji)
	if err != nil {
		logger.Error("failed to send reaction notification",
			"recipient", author.Email,
			"confession_id", confession.ID,
			"error", err,
		)
		return
	}

	logger.Info("reaction notification sent", "recipient", author.Email)
}

// truncateContent cuts content to at most limit runes, appending "..." when
// something was cut.
func truncateContent(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}

func (s *reactionService) GetConfessionReactions(confessionID string) ([]dto.ReactionResponse, error) {
	if _, err := s.confessionRepo.FindByID(confessionID); err != nil {
		if err == repositories.ErrConfessionNotFound {
			return nil, apperrors.ErrConfessionNotFound
		}
		return nil, err
	}

	reactions, err := s.reactionRepo.FindByConfessionID(confessionID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReactionResponse, 0, len(reactions))
	for i := range reactions {
		responses = append(responses, *buildReactionResponse(&reactions[i]))
	}
	return responses, nil
}

func buildReactionResponse(reaction *models.Reaction) *dto.ReactionResponse {
	return &dto.ReactionResponse{
		ID:           reaction.ID,
		Emoji:        reaction.Emoji,
		ConfessionID: reaction.ConfessionID,
		UserID:       reaction.UserID,
		CreatedAt:    reaction.CreatedAt,
	}
}
