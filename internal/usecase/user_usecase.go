package usecase

import (
	"context"
	"strings"

	"foundly/internal/domain/entity"
	"foundly/internal/domain/repository"
	"foundly/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

type CompleteProfileInput struct {
	DisplayName string
	PhotoURL    string
}

// CompleteProfile writes the one durable profile document for the principal,
// flipping the explicit completion flag. The merge upsert preserves anything
// already present.
func (uc *UserUseCase) CompleteProfile(ctx context.Context, uid string, input CompleteProfileInput) (*entity.User, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return nil, errors.InputInvalid("display name is required")
	}

	user := &entity.User{
		ID:              uid,
		DisplayName:     displayName,
		PhotoURL:        input.PhotoURL,
		ProfileComplete: true,
	}

	if err := uc.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetProfile returns the stored profile, or the transient placeholder when
// the principal has not completed one yet.
func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return entity.PlaceholderUser(uid), nil
		}
		return nil, err
	}

	return user, nil
}
