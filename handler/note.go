package handler

import (
	"net/http"

	"studybuddy/config"
	"studybuddy/middleware"
	"studybuddy/models"
	"studybuddy/pkg/context"
	"studybuddy/pkg/response"
	"studybuddy/service"
	"studybuddy/types"

	"github.com/gin-gonic/gin"
)

type Note struct {
	Config        *config.Config
	NoteService   service.INoteService
	UpvoteService service.IUpvoteService
}

func (n *Note) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(n.Config.Jwt.Secret))
	g := r.Group("/v1/notes")
	g.GET("", context.Wrap(n.List))
	g.GET("/mine", authorize, context.Wrap(n.Mine))
	g.GET("/:id", context.Wrap(n.Get))
	g.POST("", authorize, context.Wrap(n.Create))
	g.DELETE("/:id", authorize, context.Wrap(n.Delete))
	g.POST("/:id/upvote", authorize, context.Wrap(n.Upvote))
	g.GET("/:id/upvote", authorize, context.Wrap(n.UpvoteStatus))

	r.GET("/v1/subjects", context.Wrap(n.Subjects))
}

// List 全部笔记, 最新在前; 可按 user_email 过滤
func (n *Note) List(c *gin.Context) error {
	var (
		notes []*models.Note
		err   error
	)
	if email := c.Query("user_email"); email != "" {
		notes, err = n.NoteService.ListByOwner(c.Request.Context(), email)
	} else {
		notes, err = n.NoteService.List(c.Request.Context())
	}
	if err != nil {
		return bizError(err)
	}
	response.Success(c, toNotes(notes))
	return nil
}

// Mine 当前用户上传的笔记
func (n *Note) Mine(c *gin.Context) error {
	email := context.GetEmail(c)
	if email == "" {
		return response.NewError(http.StatusUnauthorized, "令牌缺少邮箱")
	}
	notes, err := n.NoteService.ListByOwner(c.Request.Context(), email)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, toNotes(notes))
	return nil
}

func (n *Note) Get(c *gin.Context) error {
	note, err := n.NoteService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, toNote(note))
	return nil
}

// Create 创建笔记, 上传者邮箱取自令牌
func (n *Note) Create(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	email := context.GetEmail(c)
	if email == "" {
		return response.NewError(http.StatusUnauthorized, "令牌缺少邮箱")
	}
	var req types.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	note, err := n.NoteService.Create(c.Request.Context(), uid, email, &req)
	if err != nil {
		return bizError(err)
	}
	middleware.NoteOperations.WithLabelValues("create", "ok").Inc()
	response.Success(c, toNote(note))
	return nil
}

// Delete 上传者或管理员
func (n *Note) Delete(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	if err := n.NoteService.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		middleware.NoteOperations.WithLabelValues("delete", "error").Inc()
		return bizError(err)
	}
	middleware.NoteOperations.WithLabelValues("delete", "ok").Inc()
	response.Success(c, nil)
	return nil
}

// Upvote 原子地 +1, 重复点赞返回 applied=false
func (n *Note) Upvote(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	applied, err := n.UpvoteService.Upvote(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		middleware.NoteOperations.WithLabelValues("upvote", "error").Inc()
		return bizError(err)
	}
	outcome := "applied"
	if !applied {
		outcome = "duplicate"
	}
	middleware.NoteOperations.WithLabelValues("upvote", outcome).Inc()
	response.Success(c, types.UpvoteResponse{Applied: applied})
	return nil
}

func (n *Note) UpvoteStatus(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	has, err := n.UpvoteService.HasUpvoted(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.UpvoteStatusResponse{HasUpvoted: has})
	return nil
}

func (n *Note) Subjects(c *gin.Context) error {
	subjects, err := n.NoteService.Subjects(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, subjects)
	return nil
}

func toNote(m *models.Note) *types.Note {
	return &types.Note{
		ID:        m.ID,
		Title:     m.Title,
		Subject:   m.Subject,
		UserEmail: m.UserEmail,
		FileURL:   m.FileURL,
		CreatedAt: m.CreatedAt,
		Upvotes:   m.Upvotes,
	}
}

func toNotes(ms []*models.Note) []*types.Note {
	notes := make([]*types.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, toNote(m))
	}
	return notes
}
