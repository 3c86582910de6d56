package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TejasJagadale/backendofficial/internal/metrics"
	"github.com/TejasJagadale/backendofficial/pkg/clientip"
)

// ToggleLike godoc
// @Summary Like or unlike an article (one like per IP)
// @Tags likes
// @Produce json
// @Param articleId path string true "article id"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /likes/{articleId} [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	articleID, err := primitive.ObjectIDFromHex(c.Param("articleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}
	ctx := c.Request.Context()

	article, err := h.Store.FindArticleByID(ctx, articleID)
	if err != nil {
		serverError(c)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	ip := clientip.FromRequest(c.Request)
	liked, likes, err := h.Store.ToggleLike(ctx, articleID, ip)
	if err != nil {
		serverError(c)
		return
	}
	if liked {
		metrics.LikesToggled.WithLabelValues("like").Inc()
	} else {
		metrics.LikesToggled.WithLabelValues("unlike").Inc()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "liked": liked, "likes": likes})
}

// LikeStatus godoc
// @Summary Current like count and whether this IP holds a like
// @Tags likes
// @Produce json
// @Param articleId path string true "article id"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /likes/{articleId}/status [get]
func (h *Handler) LikeStatus(c *gin.Context) {
	articleID, err := primitive.ObjectIDFromHex(c.Param("articleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}
	ctx := c.Request.Context()

	article, err := h.Store.FindArticleByID(ctx, articleID)
	if err != nil {
		serverError(c)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	liked, err := h.Store.HasLike(ctx, articleID, clientip.FromRequest(c.Request))
	if err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes": article.Likes})
}
