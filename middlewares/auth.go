package middlewares

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"social-network/config"
	"social-network/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthError 鉴权失败，带状态码和提示信息
type AuthError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// DecodedToken 校验带前缀的 bearer token（"<prefix> <jwt>"），返回对应用户。
// HTTP 中间件和 WebSocket 网关共用这一套校验逻辑。
func DecodedToken(authorization string) (*models.User, *AuthError) {
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, &AuthError{Message: "Token is required", StatusCode: http.StatusUnauthorized}
	}
	prefix, token := parts[0], parts[1]

	// 前缀决定校验用的签名
	var signature string
	switch prefix {
	case os.Getenv("PREFIX_TOKEN_ADMIN"):
		signature = os.Getenv("ACCESS_SIGNATURE_ADMIN")
	case os.Getenv("PREFIX_TOKEN_USER"):
		signature = os.Getenv("ACCESS_SIGNATURE_USER")
	default:
		return nil, &AuthError{Message: "Invalid token prefix", StatusCode: http.StatusBadRequest}
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(signature), nil
	})
	if err != nil || !parsed.Valid {
		return nil, &AuthError{Message: "Invalid token", StatusCode: http.StatusBadRequest}
	}

	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return nil, &AuthError{Message: "Invalid token payload", StatusCode: http.StatusBadRequest}
	}
	iatClaim, ok := claims["iat"].(float64)
	if !ok {
		return nil, &AuthError{Message: "Invalid token payload", StatusCode: http.StatusBadRequest}
	}
	issuedAt := time.Unix(int64(iatClaim), 0)

	var user models.User
	if err := config.DB.First(&user, uint(id)).Error; err != nil {
		return nil, &AuthError{Message: "User not found", StatusCode: http.StatusNotFound}
	}

	// 密码或邮箱在签发之后变过，token 作废。
	// iat 只有秒级精度，变更时间也取整到秒再比较
	if user.PasswordChangedAt != nil && user.PasswordChangedAt.Truncate(time.Second).After(issuedAt) {
		return nil, &AuthError{Message: "Token expired please logIn again", StatusCode: http.StatusUnauthorized}
	}
	if user.EmailChangedAt != nil && user.EmailChangedAt.Truncate(time.Second).After(issuedAt) {
		return nil, &AuthError{Message: "Token expired please logIn again", StatusCode: http.StatusUnauthorized}
	}
	if user.IsDeleted {
		return nil, &AuthError{Message: "User Deleted", StatusCode: http.StatusUnauthorized}
	}

	return &user, nil
}

// TokenAuthMiddleware 请求鉴权中间件，成功后把用户放进上下文
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, authErr := DecodedToken(c.GetHeader("Authorization"))
		if authErr != nil {
			c.AbortWithStatusJSON(authErr.StatusCode, gin.H{"error": authErr.Message})
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

// AdminOnly 角色校验，需在 TokenAuthMiddleware 之后使用
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userInfo, ok := user.(*models.User)
		if !ok || userInfo.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}
