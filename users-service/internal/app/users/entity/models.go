package entity

import "time"

// User представляет профиль пользователя
// Аутентификация делегирована внешнему identity-провайдеру, здесь хранится
// только локальная копия профиля; _id совпадает с user_id из токена
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name" bson:"name"`
	Avatar    string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
