package controller

import (
	"career_guide_backend/internal/service"
	"career_guide_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NoteController struct {
	NoteService *service.NoteService
}

func NewNoteController(noteService *service.NoteService) *NoteController {
	return &NoteController{NoteService: noteService}
}

// Create godoc
// @Summary 创建学习笔记
// @Tags 笔记
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.NoteRequest true "笔记内容"
// @Success 201 {object} util.Response{data=model.Note} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/notes [post]
func (c *NoteController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.NoteService.Create(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, note)
}

// List godoc
// @Summary 笔记列表
// @Tags 笔记
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/notes [get]
func (c *NoteController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	notes, total, err := c.NoteService.List(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: notes, Total: total, Page: page, Limit: limit})
}

// Update godoc
// @Summary 更新笔记
// @Tags 笔记
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "笔记ID"
// @Param   body body service.NoteRequest true "笔记内容"
// @Success 200 {object} util.Response{data=model.Note} "成功"
// @Failure 404 {object} util.Response "笔记不存在"
// @Router /api/notes/{id} [put]
func (c *NoteController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "笔记ID不合法")
		return
	}

	var req service.NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.NoteService.Update(claims.UserID, uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrNoteNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, note)
}

// Delete godoc
// @Summary 删除笔记
// @Tags 笔记
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "笔记ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "笔记不存在"
// @Router /api/notes/{id} [delete]
func (c *NoteController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "笔记ID不合法")
		return
	}

	if err := c.NoteService.Delete(claims.UserID, uint(id)); err != nil {
		if errors.Is(err, util.ErrNoteNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, nil)
}
