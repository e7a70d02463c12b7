package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetfood/domain/dto"
	"meetfood/domain/model"
	"meetfood/infrastructure/logger"
	"meetfood/interfaces/middleware"
	"meetfood/usecase"
)

type IUserHandler interface {
	Create(c *gin.Context)
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	UpdateProfilePhoto(c *gin.Context)
	DeleteAccount(c *gin.Context)
	AddToCollection(c *gin.Context)
	RemoveFromCollection(c *gin.Context)
}

type UserHandler struct {
	userUsecase usecase.IUserUsecase
}

func NewUserHandler(userUsecase usecase.IUserUsecase) IUserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// Create registers the authenticated subject as a local user.
func (h *UserHandler) Create(c *gin.Context) {
	var req model.ReqCreateUser
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.NewErrs(err.Error()))
		return
	}

	subject := c.GetString(middleware.CtxUserSub)
	user, err := h.userUsecase.Register(c.Request.Context(), subject, req.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User account is created successfully.",
		"user":    user,
	})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	profile, err := h.userUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req model.ReqUpdateProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.NewErrs(err.Error()))
		return
	}

	subject := c.GetString(middleware.CtxUserSub)
	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), userID, subject, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User profile is updated.",
		"user":    user,
	})
}

// UpdateProfilePhoto stores the multipart image and swaps the reference,
// deleting the previous photo from storage.
func (h *UserHandler) UpdateProfilePhoto(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("imageContent")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrs("imageContent file is required."))
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrs(err.Error()))
		return
	}
	defer src.Close()

	user, err := h.userUsecase.UpdateProfilePhoto(c.Request.Context(), userID, usecase.AssetUpload{
		Filename: file.Filename,
		Body:     src,
		Size:     file.Size,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User profile photo is updated.",
		"user":    user,
	})
}

// DeleteAccount cascades the local record, owned posts, stored assets and
// the identity-provider account.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req model.ReqDeleteAccount
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.NewErrs(err.Error()))
		return
	}

	if err := h.userUsecase.DeleteAccount(c.Request.Context(), userID, req.Email); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User account delete successfully."})
}

func (h *UserHandler) AddToCollection(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "videoPostId")
	if !ok {
		return
	}

	post, err := h.userUsecase.AddToCollection(c.Request.Context(), userID, postID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Video is added to collections successfully.",
		"post":    post,
	})
}

func (h *UserHandler) RemoveFromCollection(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "videoPostId")
	if !ok {
		return
	}

	post, err := h.userUsecase.RemoveFromCollection(c.Request.Context(), userID, postID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Video is removed from collections successfully.",
		"post":    post,
	})
}
