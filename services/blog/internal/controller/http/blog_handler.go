package http

import (
	"net/http"

	"blog-api/pkg/logger"
	"blog-api/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	userUseCase usecase.UserUseCase
	postUseCase usecase.PostUseCase
	likeUseCase usecase.LikeUseCase
	logger      *logger.Logger
}

func NewBlogHandler(
	userUseCase usecase.UserUseCase,
	postUseCase usecase.PostUseCase,
	likeUseCase usecase.LikeUseCase,
	logger *logger.Logger,
) *BlogHandler {
	return &BlogHandler{
		userUseCase: userUseCase,
		postUseCase: postUseCase,
		likeUseCase: likeUseCase,
		logger:      logger,
	}
}

// RegisterRoutes mounts the blog endpoints on g.
func (h *BlogHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/user", h.CreateUser)
	g.GET("/user/find", h.FindUsers)
	g.GET("/user/:id", h.GetUser)
	g.POST("/user/:id/post", h.CreatePost)
	g.GET("/user/:id/post", h.GetUserPosts)
	g.POST("/user/:id/like/:postId", h.LikePost)
	g.GET("/post/:id", h.GetPost)
}

// CreateUser godoc
// @Summary      Register a user
// @Description  Creates a user with account status NEW
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "User data"
// @Success      201  {object}  IDResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /user [post]
func (h *BlogHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	id, err := h.userUseCase.CreateUser(c.Request.Context(), req.FirstName, req.LastName, req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  UserResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /user/{id} [get]
func (h *BlogHandler) GetUser(c *gin.Context) {
	user, err := h.userUseCase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// FindUsers godoc
// @Summary      Search users
// @Description  Case-insensitive match of searchString against first name, last name or email
// @Tags         users
// @Produce      json
// @Param        searchString query string false "Text to look for"
// @Success      200  {array}   UserResponse
// @Router       /user/find [get]
func (h *BlogHandler) FindUsers(c *gin.Context) {
	users, err := h.userUseCase.FindUsers(c.Request.Context(), c.Query("searchString"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Owner user ID"
// @Param        request body CreatePostRequest true "Post data"
// @Success      201  {object}  IDResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /user/{id}/post [post]
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	id, err := h.postUseCase.CreatePost(c.Request.Context(), c.Param("id"), req.Entry)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

// GetUserPosts godoc
// @Summary      List posts of a user
// @Tags         posts
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {array}   PostResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /user/{id}/post [get]
func (h *BlogHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.postUseCase.GetUserPosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, toPostResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// GetPost godoc
// @Summary      Get a post
// @Description  Returns the post with its like count
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /post/{id} [get]
func (h *BlogHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// LikePost godoc
// @Summary      Like a post
// @Description  Likes a post on behalf of a user. Liking an already liked post is a no-op.
// @Tags         likes
// @Produce      json
// @Param        id     path string true "Liking user ID"
// @Param        postId path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /user/{id}/like/{postId} [post]
func (h *BlogHandler) LikePost(c *gin.Context) {
	if err := h.likeUseCase.AddLike(c.Request.Context(), c.Param("id"), c.Param("postId")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post liked"})
}
