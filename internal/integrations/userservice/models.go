package userservice

import "github.com/m04kA/SMC-CourtBooking/internal/domain"

// BatchRequest тело запроса пакетного получения профилей
type BatchRequest struct {
	IDs []int64 `json:"ids"`
}

// BatchResponse ответ пакетного получения профилей
type BatchResponse struct {
	Users []User `json:"users"`
}

// User модель пользователя из UserService
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ToDomain конвертирует пользователя в доменный профиль
func (u User) ToDomain() domain.Profile {
	return domain.Profile{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
