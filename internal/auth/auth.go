package auth

import "github.com/gin-gonic/gin"

// Ключ, под которым идентификатор пользователя лежит в контексте gin
const ContextUserIDKey = "userID"

// Middleware извлекает идентификатор пользователя из доверенного заголовка,
// который проставляет внешний identity-провайдер (reverse proxy / gateway).
// Сам сервис пользователей не аутентифицирует.
func Middleware(headerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader(headerName); userID != "" {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	}
}

// UserID возвращает идентификатор пользователя текущего запроса
func UserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}

	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}

	return userID, true
}
