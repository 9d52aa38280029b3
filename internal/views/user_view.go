package views

import (
	"time"

	"lumen/internal/models"
)

// RoleView is the projection of a role inside user responses.
type RoleView struct {
	ID       uint   `json:"id"`
	RoleName string `json:"roleName"`
}

// UserView is the admin-facing projection of a user. Credential hash and
// image blobs are stripped; rank fields are flattened.
type UserView struct {
	ID              uint      `json:"id"`
	Username        string    `json:"username"`
	FullName        string    `json:"fullName"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Description     string    `json:"description,omitempty"`
	ProfilePhotoURL string    `json:"profilePhotoUrl,omitempty"`
	CoverImageURL   string    `json:"coverImageUrl,omitempty"`
	Role            *RoleView `json:"role,omitempty"`
	RankName        string    `json:"rankName,omitempty"`
	RankLogoURL     string    `json:"rankLogoUrl,omitempty"`
	PostCount       int       `json:"postCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BuildUserView projects a user with its preloaded role, rank, and posts.
func BuildUserView(user *models.User) UserView {
	view := UserView{
		ID:              user.ID,
		Username:        user.Username,
		FullName:        user.FullName(),
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		Phone:           user.Phone,
		Description:     user.Description,
		ProfilePhotoURL: user.ProfilePhotoURL,
		CoverImageURL:   user.CoverImageURL,
		PostCount:       len(user.Posts),
		CreatedAt:       user.CreatedAt,
	}
	if user.Role != nil {
		view.Role = &RoleView{ID: user.Role.ID, RoleName: user.Role.RoleName}
	}
	if user.Rank != nil {
		view.RankName = user.Rank.RankName
		view.RankLogoURL = user.Rank.RankLogoURL
	}
	return view
}

// BuildUserViews projects a slice of users, preserving order.
func BuildUserViews(users []models.User) []UserView {
	result := make([]UserView, 0, len(users))
	for i := range users {
		result = append(result, BuildUserView(&users[i]))
	}
	return result
}

// ProfileView is the self/other profile projection: the user plus nested
// posts (media excluded) with rank fields flattened alongside.
type ProfileView struct {
	UserView
	Posts []PostView `json:"posts"`
}

// BuildProfileView projects a user profile with nested posts.
func BuildProfileView(user *models.User) ProfileView {
	view := ProfileView{
		UserView: BuildUserView(user),
		Posts:    make([]PostView, 0, len(user.Posts)),
	}
	for i := range user.Posts {
		view.Posts = append(view.Posts, BuildPostView(&user.Posts[i]))
	}
	return view
}

// UserSummaryView is the compact projection returned by user search.
type UserSummaryView struct {
	UserID          uint   `json:"userId"`
	FullName        string `json:"fullName"`
	ProfilePhotoURL string `json:"profilePhotoUrl"`
	Description     string `json:"description,omitempty"`
	TotalPosts      int    `json:"totalPost"`
}

// BuildUserSummaryView projects a user into the search result shape.
func BuildUserSummaryView(user *models.User) UserSummaryView {
	return UserSummaryView{
		UserID:          user.ID,
		FullName:        user.FullName(),
		ProfilePhotoURL: user.ProfilePhotoURL,
		Description:     user.Description,
		TotalPosts:      len(user.Posts),
	}
}
