package entity

// SyncUserRequest запрос на синхронизацию профиля
// user_id берется из токена, в теле только отображаемые поля
type SyncUserRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Email  string `json:"email" validate:"omitempty,email"`
	Avatar string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// SyncUserResponse ответ на синхронизацию профиля
type SyncUserResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

// ErrorResponse стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}
