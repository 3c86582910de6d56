package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TejasJagadale/backendofficial/internal/domain"
)

// ListComments godoc
// @Summary List an article's comments, newest first
// @Tags comments
// @Produce json
// @Param articleId path string true "article id"
// @Success 200 {array} domain.Comment
// @Failure 400 {object} map[string]string
// @Router /comments/{articleId} [get]
func (h *Handler) ListComments(c *gin.Context) {
	articleID, err := primitive.ObjectIDFromHex(c.Param("articleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}
	comments, err := h.Store.ListComments(c.Request.Context(), articleID)
	if err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, comments)
}

type createCommentReq struct {
	ArticleID       string `json:"articleId"`
	ArticleCategory string `json:"articleCategory"`
	Content         string `json:"content"`
	Author          string `json:"author"`
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
}

// CreateComment godoc
// @Summary Add a comment to an article
// @Tags comments
// @Accept json
// @Produce json
// @Param payload body createCommentReq true "comment"
// @Success 201 {object} domain.Comment
// @Failure 400 {object} map[string]string
// @Router /comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	var in createCommentReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	in.Content = strings.TrimSpace(in.Content)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if in.ArticleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "articleId is required"})
		return
	}
	articleID, err := primitive.ObjectIDFromHex(in.ArticleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}
	if !domain.ValidCategory(in.ArticleCategory) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "articleCategory must be one of: " + strings.Join(domain.Categories, ", ")})
		return
	}
	if in.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	if len(in.Content) > domain.MaxCommentLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content must be at most 1000 characters"})
		return
	}
	if email == "" || !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = email
	}
	comment := &domain.Comment{
		ArticleID:       articleID,
		ArticleCategory: in.ArticleCategory,
		Content:         in.Content,
		Author:          author,
		Email:           email,
		Mobile:          strings.TrimSpace(in.Mobile),
	}
	if err := h.Store.CreateComment(c.Request.Context(), comment); err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary Delete a comment by id
// @Tags comments
// @Produce json
// @Param id path string true "comment id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}
	removed, err := h.Store.DeleteComment(c.Request.Context(), id)
	if err != nil {
		serverError(c)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
