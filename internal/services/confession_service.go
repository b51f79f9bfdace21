package services

import (
	"xconfess_backend/internal/models"
	"xconfess_backend/internal/repositories"
	"xconfess_backend/internal/services/dto"

	"xconfess_backend/pkg/apperrors"
)

type ConfessionService interface {
	// CreateConfession stores a confession. authorID is nil for anonymous
	// callers; an authenticated caller may still post anonymously.
	CreateConfession(req *dto.CreateConfessionRequest, authorID *string) (*dto.ConfessionResponse, error)
	GetConfession(id string) (*dto.ConfessionResponse, error)
	ListConfessions(page, pageSize int) (*dto.ConfessionListResponse, error)
	// DeleteConfession removes the confession with all its reactions.
	DeleteConfession(id, callerID string) error
}

type confessionService struct {
	confessionRepo repositories.ConfessionRepository
}

func NewConfessionService(confessionRepo repositories.ConfessionRepository) ConfessionService {
	return &confessionService{
		confessionRepo: confessionRepo,
	}
}

func (s *confessionService) CreateConfession(req *dto.CreateConfessionRequest, authorID *string) (*dto.ConfessionResponse, error) {
	confession := &models.AnonymousConfession{
		Message: req.Message,
	}
	if authorID != nil && !req.Anonymous {
		confession.UserID = authorID
	}

	if err := s.confessionRepo.Create(confession); err != nil {
		return nil, err
	}

	return buildConfessionResponse(confession), nil
}

func (s *confessionService) GetConfession(id string) (*dto.ConfessionResponse, error) {
	confession, err := s.confessionRepo.FindByID(id)
	if err != nil {
		if err == repositories.ErrConfessionNotFound {
			return nil, apperrors.ErrConfessionNotFound
		}
		return nil, err
	}

	return buildConfessionResponse(confession), nil
}

func (s *confessionService) ListConfessions(page, pageSize int) (*dto.ConfessionListResponse, error) {
	confessions, total, err := s.confessionRepo.FindAll(page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ConfessionResponse, 0, len(confessions))
	for i := range confessions {
		responses = append(responses, *buildConfessionResponse(&confessions[i]))
	}

	return &dto.ConfessionListResponse{
		Confessions: responses,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

func (s *confessionService) DeleteConfession(id, callerID string) error {
	confession, err := s.confessionRepo.FindByIDWithAuthor(id)
	if err != nil {
		if err == repositories.ErrConfessionNotFound {
			return apperrors.ErrConfessionNotFound
		}
		return err
	}

	if confession.UserID == nil || *confession.UserID != callerID {
		return apperrors.ErrNotConfessionAuthor
	}

	return s.confessionRepo.Delete(id)
}

func buildConfessionResponse(confession *models.AnonymousConfession) *dto.ConfessionResponse {
	reactions := make([]dto.ReactionResponse, 0, len(confession.Reactions))
	for i := range confession.Reactions {
		reactions = append(reactions, *buildReactionResponse(&confession.Reactions[i]))
	}

	return &dto.ConfessionResponse{
		ID:            confession.ID,
		Message:       confession.Message,
		UserID:        confession.UserID,
		Reactions:     reactions,
		ReactionCount: len(reactions),
		CreatedAt:     confession.CreatedAt,
	}
}
