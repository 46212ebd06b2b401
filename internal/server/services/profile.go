package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/dbx"
	"github.com/dmitrijs2005/devconnector/internal/server/auth"
	"github.com/dmitrijs2005/devconnector/internal/server/models"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/repomanager"
)

type ProfileService struct {
	repomanager repomanager.RepositoryManager
}

func NewProfileService(m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{repomanager: m}
}

func (s *ProfileService) GetMine(ctx context.Context, id auth.Identity) (*models.Profile, error) {
	return s.GetByUserID(ctx, id.UserID)
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if !validID(userID) {
		return nil, common.NotFound(common.ResourceProfile)
	}

	p, err := s.repomanager.Profiles(s.repomanager.Conn()).GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, common.ResourceProfile, "getting profile")
	}
	return p, nil
}

func (s *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	list, err := s.repomanager.Profiles(s.repomanager.Conn()).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	return list, nil
}

// Upsert creates or updates the caller's profile. The owner always comes
// from the identity, never from the request.
func (s *ProfileService) Upsert(ctx context.Context, id auth.Identity, in *models.Profile) (*models.Profile, error) {
	if !validID(id.UserID) {
		return nil, common.NotFound(common.ResourceUser)
	}

	conn := s.repomanager.Conn()
	if _, err := s.repomanager.Users(conn).GetByID(ctx, id.UserID); err != nil {
		return nil, notFoundAs(err, common.ResourceUser, "getting user")
	}

	in.User = models.ProfileUser{ID: id.UserID}
	repo := s.repomanager.Profiles(conn)
	if _, err := repo.Upsert(ctx, in); err != nil {
		return nil, fmt.Errorf("error saving profile: %w", err)
	}

	p, err := repo.GetByUserID(ctx, id.UserID)
	if err != nil {
		return nil, notFoundAs(err, common.ResourceProfile, "getting profile")
	}
	return p, nil
}

// DeleteAccount removes the caller's posts, profile and user, in that order,
// inside one transaction.
func (s *ProfileService) DeleteAccount(ctx context.Context, id auth.Identity) error {
	if !validID(id.UserID) {
		return common.NotFound(common.ResourceUser)
	}

	user, err := s.repomanager.Users(s.repomanager.Conn()).GetByID(ctx, id.UserID)
	if err != nil {
		return notFoundAs(err, common.ResourceUser, "getting user")
	}
	if err := auth.Authorize(user, id); err != nil {
		return err
	}

	return s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Posts(tx).DeleteByUserID(ctx, user.ID); err != nil {
			return fmt.Errorf("error deleting posts: %w", err)
		}
		if err := s.repomanager.Profiles(tx).DeleteByUserID(ctx, user.ID); err != nil {
			return fmt.Errorf("error deleting profile: %w", err)
		}
		if err := s.repomanager.Users(tx).Delete(ctx, user.ID); err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		return nil
	})
}

// ownProfile loads the caller's profile and checks the caller may mutate it.
func (s *ProfileService) ownProfile(ctx context.Context, id auth.Identity) (*models.Profile, error) {
	p, err := s.GetByUserID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, id); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) AddExperience(ctx context.Context, id auth.Identity, e *models.Experience) (*models.Profile, error) {
	p, err := s.ownProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Profiles(s.repomanager.Conn()).AddExperience(ctx, p.ID, e); err != nil {
		return nil, notFoundAs(err, common.ResourceProfile, "adding experience")
	}
	return s.GetByUserID(ctx, id.UserID)
}

func (s *ProfileService) DeleteExperience(ctx context.Context, id auth.Identity, expID string) (*models.Profile, error) {
	p, err := s.ownProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !validID(expID) {
		return nil, common.NotFound(common.ResourceExperience)
	}

	if err := s.repomanager.Profiles(s.repomanager.Conn()).DeleteExperience(ctx, p.ID, expID); err != nil {
		return nil, notFoundAs(err, common.ResourceExperience, "deleting experience")
	}
	return s.GetByUserID(ctx, id.UserID)
}

func (s *ProfileService) AddEducation(ctx context.Context, id auth.Identity, e *models.Education) (*models.Profile, error) {
	p, err := s.ownProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Profiles(s.repomanager.Conn()).AddEducation(ctx, p.ID, e); err != nil {
		return nil, notFoundAs(err, common.ResourceProfile, "adding education")
	}
	return s.GetByUserID(ctx, id.UserID)
}

func (s *ProfileService) DeleteEducation(ctx context.Context, id auth.Identity, eduID string) (*models.Profile, error) {
	p, err := s.ownProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !validID(eduID) {
		return nil, common.NotFound(common.ResourceEducation)
	}

	if err := s.repomanager.Profiles(s.repomanager.Conn()).DeleteEducation(ctx, p.ID, eduID); err != nil {
		return nil, notFoundAs(err, common.ResourceEducation, "deleting education")
	}
	return s.GetByUserID(ctx, id.UserID)
}
