package handlers

import (
	"io"
	"net/http"
	"stickyflow-backend/internal/models"
	"stickyflow-backend/internal/services"
	"stickyflow-backend/internal/utils"
	"stickyflow-backend/pkg/validator"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) GetNotes(c *gin.Context) {
	var req models.NoteListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	notes, err := h.noteService.GetNotes(c.Request.Context(), req.Order)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{"notes": notes})
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req models.NoteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "创建成功", note)
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	noteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的便签ID")
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), uint(noteID)); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}

// StreamNotes SSE 订阅：建连先发一次全量，之后每次变化再发全量
func (h *NoteHandler) StreamNotes(c *gin.Context) {
	id, ch := h.noteService.Subscribe()
	defer h.noteService.Unsubscribe(id)

	notes, err := h.noteService.GetNotes(c.Request.Context(), "")
	if err != nil {
		utils.InternalError(c)
		return
	}
	c.SSEvent("notes", notes)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("notes", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
