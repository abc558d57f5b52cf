package dto

import (
	"guesthouse/internal/domains/user/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/timezone"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	if model.LastLogin != nil {
		lastLogin := model.LastLogin.Format(constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=guest receptionist owner"`
}

// Fields returns the columns written when role changes.
func (r *AssignRoleRequest) Fields(actor string) map[string]any {
	return map[string]any{
		model.FieldRole:          r.Role,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}
}
