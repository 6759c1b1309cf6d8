package utils

import (
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/dto/responses"
)

func BuildProfileResponse(profile *models.Profile) *responses.Profile {
	if profile == nil {
		return nil
	}
	return &responses.Profile{
		GorillaID:   profile.GorillaID,
		ProfileData: profile.ProfileData,
		IsImported:  profile.IsImported(),
		UpdatedAt:   profile.UpdatedAt,
	}
}

func BuildUserInfoResponse(user *models.User) responses.UserInfo {
	return responses.UserInfo{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
