package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetfood/domain/dto"
	"meetfood/domain/repository"
	"meetfood/infrastructure/logger"
)

// TokenHeader is the custom header carrying the identity-provider token.
const TokenHeader = "cognito-token"

// Context keys populated on successful verification.
const (
	CtxUserSub = "user_sub"
	CtxUserID  = "user_id"
)

// Auth verifies the token and resolves the local user. The subject is always
// attached; the local user id only when a linked record exists, because the
// registration endpoint runs before the record does. Resolutions go through
// the optional cache first.
func Auth(verifier repository.ITokenVerifier, users repository.IUser, tokenCache repository.ITokenCache) gin.HandlerFunc {
	res := dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"}

	return func(ctx *gin.Context) {
		token := ctx.Request.Header.Get(TokenHeader)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		subject, err := verifier.Verify(ctx.Request.Context(), token)
		if err != nil {
			logger.GetLogger().WithField("error", err).Debug("Token verification failed")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}
		ctx.Set(CtxUserSub, subject)

		if id, ok := tokenCache.GetUserID(ctx.Request.Context(), subject); ok {
			ctx.Set(CtxUserID, id)
			ctx.Next()
			return
		}

		user, err := users.GetBySubject(ctx.Request.Context(), subject)
		if err == nil {
			ctx.Set(CtxUserID, user.ID.Hex())
			tokenCache.SetUserID(ctx.Request.Context(), subject, user.ID.Hex())
		}
		ctx.Next()
	}
}
