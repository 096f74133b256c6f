package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"
)

// аватарки по умолчанию, когда пользователь свою не загрузил
var defaultAvatars = map[string]string{
	model.GenderMale:   "https://avatar.iran.liara.run/public/boy",
	model.GenderFemale: "https://avatar.iran.liara.run/public/girl",
	model.GenderOther:  "https://avatar.iran.liara.run/public",
}

const fallbackAvatar = "https://avatar.iran.liara.run/public"

// ProfileInput — изменяемые поля профиля.
type ProfileInput struct {
	Bio            string
	Gender         string
	ProfilePicture string
}

// ProfileService — чтение и обновление профиля пользователя.
type ProfileService struct {
	repo repo.UserRepository
}

func NewProfileService(r repo.UserRepository) *ProfileService {
	return &ProfileService{repo: r}
}

func (s *ProfileService) Get(ctx context.Context, userID int64) (*model.User, *model.Profile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, mapRepoErr(err)
	}
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, mapRepoErr(err)
	}
	return user, profile, nil
}

// Update меняет профиль. Если своя картинка не задана, подставляется
// аватар по полу.
func (s *ProfileService) Update(ctx context.Context, userID int64, in ProfileInput) (*model.Profile, error) {
	switch in.Gender {
	case "", model.GenderMale, model.GenderFemale, model.GenderOther:
	default:
		return nil, newValidationError("gender", "must be one of M, F, O")
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	profile.Bio = in.Bio
	profile.Gender = in.Gender
	if in.ProfilePicture != "" {
		profile.ProfilePicture = in.ProfilePicture
	} else if profile.ProfilePicture == "" || isDefaultAvatar(profile.ProfilePicture) {
		avatar, ok := defaultAvatars[in.Gender]
		if !ok {
			avatar = fallbackAvatar
		}
		profile.ProfilePicture = avatar
	}

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, mapRepoErr(err)
	}
	return profile, nil
}

func isDefaultAvatar(url string) bool {
	for _, v := range defaultAvatars {
		if url == v {
			return true
		}
	}
	return false
}
