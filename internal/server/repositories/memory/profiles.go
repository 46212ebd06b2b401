package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/server/models"
)

type ProfileRepository struct {
	s *Store
}

// copyProfile returns a detached copy with the owner's current name and avatar.
func (r *ProfileRepository) copyProfile(p *models.Profile) *models.Profile {
	out := *p
	if u, ok := r.s.users[p.User.ID]; ok {
		out.User.Name = u.Name
		out.User.Avatar = u.Avatar
	}
	out.Skills = slices.Clone(p.Skills)
	out.Experience = slices.Clone(p.Experience)
	out.Education = slices.Clone(p.Education)
	if out.Skills == nil {
		out.Skills = []string{}
	}
	if out.Experience == nil {
		out.Experience = []models.Experience{}
	}
	if out.Education == nil {
		out.Education = []models.Education{}
	}
	return &out
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.copyProfile(p), nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		result = append(result, r.copyProfile(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.tick()
	existing, ok := r.s.profiles[p.User.ID]
	if !ok {
		stored := *p
		stored.ID = r.s.newID()
		stored.CreatedAt = now
		stored.UpdatedAt = now
		stored.Experience = nil
		stored.Education = nil
		r.s.profiles[p.User.ID] = &stored
		return r.copyProfile(&stored), nil
	}

	stored := *p
	stored.ID = existing.ID
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = now
	stored.Experience = existing.Experience
	stored.Education = existing.Education
	r.s.profiles[p.User.ID] = &stored
	return r.copyProfile(&stored), nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.profiles, userID)
	return nil
}

func (r *ProfileRepository) byID(profileID string) *models.Profile {
	for _, p := range r.s.profiles {
		if p.ID == profileID {
			return p
		}
	}
	return nil
}

func (r *ProfileRepository) AddExperience(ctx context.Context, profileID string, e *models.Experience) (*models.Experience, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.byID(profileID)
	if p == nil {
		return nil, common.ErrorNotFound
	}
	e.ID = r.s.newID()
	p.Experience = append([]models.Experience{*e}, p.Experience...)
	return e, nil
}

func (r *ProfileRepository) DeleteExperience(ctx context.Context, profileID, expID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.byID(profileID)
	if p == nil {
		return common.ErrorNotFound
	}
	i := slices.IndexFunc(p.Experience, func(e models.Experience) bool { return e.ID == expID })
	if i < 0 {
		return common.ErrorNotFound
	}
	p.Experience = slices.Delete(p.Experience, i, i+1)
	return nil
}

func (r *ProfileRepository) AddEducation(ctx context.Context, profileID string, e *models.Education) (*models.Education, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.byID(profileID)
	if p == nil {
		return nil, common.ErrorNotFound
	}
	e.ID = r.s.newID()
	p.Education = append([]models.Education{*e}, p.Education...)
	return e, nil
}

func (r *ProfileRepository) DeleteEducation(ctx context.Context, profileID, eduID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.byID(profileID)
	if p == nil {
		return common.ErrorNotFound
	}
	i := slices.IndexFunc(p.Education, func(e models.Education) bool { return e.ID == eduID })
	if i < 0 {
		return common.ErrorNotFound
	}
	p.Education = slices.Delete(p.Education, i, i+1)
	return nil
}
