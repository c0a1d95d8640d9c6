package user

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a new user and returns the id assigned by the store.
func (s *Service) Create(ctx context.Context, in Input) (int64, error) {
	if in.isMissingRequiredFields() {
		return 0, ErrValidation
	}
	return s.repo.Create(ctx, in.toUser(0))
}

// Update overwrites every writable field of the user with the given id.
// An unknown id is not an error; the returned count is then zero.
func (s *Service) Update(ctx context.Context, id int64, in Input) (int64, error) {
	if in.isMissingRequiredFields() {
		return 0, ErrValidation
	}
	return s.repo.Update(ctx, id, in.toUser(id))
}

// Delete removes the user with the given id, reporting how many rows went away.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	return s.repo.Delete(ctx, id)
}
