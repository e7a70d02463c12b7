package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"meetfood/domain/dto"
	"meetfood/domain/model"
	"meetfood/infrastructure/logger"
	"meetfood/interfaces/middleware"
	"meetfood/usecase"
)

type IVideoHandler interface {
	Feed(c *gin.Context)
	GetPost(c *gin.Context)
	CreatePost(c *gin.Context)
	DeletePost(c *gin.Context)
	PostComment(c *gin.Context)
	DeleteComment(c *gin.Context)
	Like(c *gin.Context)
	Unlike(c *gin.Context)
	UploadCoverImage(c *gin.Context)
	UploadVideo(c *gin.Context)
}

type VideoHandler struct {
	videoUsecase usecase.IVideoUsecase
	feedUsecase  usecase.IFeedUsecase
}

func NewVideoHandler(videoUsecase usecase.IVideoUsecase, feedUsecase usecase.IFeedUsecase) IVideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase, feedUsecase: feedUsecase}
}

// Feed returns a page of ranked posts. Login is optional; pagination and
// sort parameters arrive as query strings.
func (h *VideoHandler) Feed(c *gin.Context) {
	query := model.FeedQuery{
		Page:      intQuery(c, "page", 0),
		Size:      intQuery(c, "size", usecase.DefaultPageSize),
		SortBy:    c.DefaultQuery("sortBy", usecase.SortByPopularity),
		SortOrder: intQuery(c, "sortOrder", -1),
	}

	items, err := h.feedUsecase.Fetch(c.Request.Context(), query)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func (h *VideoHandler) GetPost(c *gin.Context) {
	postID, ok := pathObjectID(c, "videoPostId")
	if !ok {
		return
	}
	item, err := h.videoUsecase.GetPost(c.Request.Context(), postID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *VideoHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req model.ReqCreateVideoPost
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.NewErrs(err.Error()))
		return
	}

	post, err := h.videoUsecase.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Video post is created successfully",
		"videoPost": post,
	})
}

func (h *VideoHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "videoPostId")
	if !ok {
		return
	}

	if err := h.videoUsecase.DeletePost(c.Request.Context(), userID, postID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Video is deleted successfully, and the user record is updated.",
	})
}

func (h *VideoHandler) PostComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "videoPostId")
	if !ok {
		return
	}

	var req model.ReqPostComment
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.NewErrs(err.Error()))
		return
	}

	item, err := h.videoUsecase.PostComment(c.Request.Context(), userID, postID, req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Post Comment successfully!",
		"post":    item,
	})
}

// DeleteComment removes a comment by id. Deletion is not restricted to the
// comment's author.
func (h *VideoHandler) DeleteComment(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	postID, ok := pathObjectID(c, "videoPostId")
	if !ok {
		return
	}
	commentID, ok := pathObjectID(c, "commentId")
	if !ok {
		return
	}

	if err := h.videoUsecase.DeleteComment(c.Request.Context(), postID, commentID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *VideoHandler) Like(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "videoPostId")
	if !ok {
		return
	}

	subject := c.GetString(middleware.CtxUserSub)
	item, err := h.videoUsecase.Like(c.Request.Context(), userID, subject, postID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *VideoHandler) Unlike(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "videoPostId")
	if !ok {
		return
	}

	item, err := h.videoUsecase.Unlike(c.Request.Context(), userID, postID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *VideoHandler) UploadCoverImage(c *gin.Context) {
	h.upload(c, "cover-image", h.videoUsecase.UploadCoverImage)
}

func (h *VideoHandler) UploadVideo(c *gin.Context) {
	h.upload(c, "video-content", h.videoUsecase.UploadVideo)
}

func (h *VideoHandler) upload(c *gin.Context, field string, store func(ctx context.Context, userID bson.ObjectID, asset usecase.AssetUpload) (string, error)) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrs(field+" file is required."))
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrs(err.Error()))
		return
	}
	defer src.Close()

	url, err := store(c.Request.Context(), userID, usecase.AssetUpload{
		Filename: file.Filename,
		Body:     src,
		Size:     file.Size,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "File is uploaded successfully",
		"imageUrl": url,
	})
}
