package handler

import (
	"github.com/neuronet-health/neuronet/internal/core/domain"
	"github.com/neuronet-health/neuronet/internal/core/ports"
)

type profileData struct {
	FullName  *string  `json:"full_name"`
	Age       *int     `json:"age"`
	Gender    *string  `json:"gender"`
	Languages []string `json:"languages"`
	Interests []string `json:"interests"`
}

type profileResponse struct {
	ID      string      `json:"id"`
	Email   string      `json:"email"`
	Role    string      `json:"role"`
	Profile profileData `json:"profile"`
}

// updateProfileRequest carries a partial update; every field is optional but
// provided fields must pass validation.
type updateProfileRequest struct {
	FullName  *string  `json:"full_name" validate:"omitempty,min=1,max=100"`
	Age       *int     `json:"age"       validate:"omitempty,gt=0,lte=120"`
	Gender    *string  `json:"gender"    validate:"omitempty,min=1,max=20"`
	Languages []string `json:"languages" validate:"omitempty,min=1,dive,min=1"`
	Interests []string `json:"interests" validate:"omitempty,min=1,dive,min=1"`
}

func toProfileResponse(up *ports.UserProfile) profileResponse {
	resp := profileResponse{
		ID:    up.User.ID,
		Email: up.User.Email,
		Role:  up.User.Role,
	}
	if up.Profile != nil {
		resp.Profile = profileData{
			FullName:  up.Profile.FullName,
			Age:       up.Profile.Age,
			Gender:    up.Profile.Gender,
			Languages: emptyIfNil(up.Profile.Languages),
			Interests: emptyIfNil(up.Profile.Interests),
		}
	} else {
		resp.Profile = profileData{Languages: []string{}, Interests: []string{}}
	}
	return resp
}

func toProfileUpdate(req updateProfileRequest) domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FullName:  req.FullName,
		Age:       req.Age,
		Gender:    req.Gender,
		Languages: req.Languages,
		Interests: req.Interests,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
