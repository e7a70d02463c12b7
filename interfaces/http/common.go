package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"meetfood/domain/dto"
	"meetfood/domain/repository"
	"meetfood/interfaces/middleware"
	"meetfood/usecase"
)

const ErrorUnmarshal = "Error while unmarshal"

// currentUser extracts the resolved local user id from the request context.
// It responds 401 itself when no linked user exists.
func currentUser(c *gin.Context) (bson.ObjectID, bool) {
	raw, ok := c.Get(middleware.CtxUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrs("The user is not found."))
		return bson.ObjectID{}, false
	}
	id, err := bson.ObjectIDFromHex(raw.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrs("The user is not found."))
		return bson.ObjectID{}, false
	}
	return id, true
}

// pathObjectID parses an ObjectID path parameter, responding 400 on garbage.
func pathObjectID(c *gin.Context, name string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrs("Invalid "+name+"."))
		return bson.ObjectID{}, false
	}
	return id, true
}

// statusFromError maps domain errors onto the HTTP taxonomy: missing
// resources 404, conflicts 400, ownership 401, everything else 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrPostNotFound),
		errors.Is(err, repository.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrAlreadyLiked),
		errors.Is(err, repository.ErrNotLiked),
		errors.Is(err, repository.ErrAlreadyCollected),
		errors.Is(err, repository.ErrNotCollected),
		errors.Is(err, repository.ErrDuplicateUserName),
		errors.Is(err, repository.ErrDuplicateUser):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotOwner):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), dto.NewErrs(err.Error()))
}
