package controller

import (
	"career_guide_backend/internal/service"
	"career_guide_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type RoadmapController struct {
	RoadmapService *service.RoadmapService
}

func NewRoadmapController(roadmapService *service.RoadmapService) *RoadmapController {
	return &RoadmapController{RoadmapService: roadmapService}
}

// Get godoc
// @Summary 获取职业路线图
// @Description 返回当前用户的路线图及任务完成状态
// @Tags 路线图
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.RoadmapView} "成功"
// @Failure 404 {object} util.Response "尚未生成路线图"
// @Router /api/roadmap [get]
func (c *RoadmapController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.RoadmapService.GetForUser(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrRoadmapNotFound) {
			util.Error(ctx, 404, "请先完成入门问卷生成路线图")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// Regenerate godoc
// @Summary 重新生成路线图
// @Description 按当前问卷答案重新生成路线图，旧快照整体替换
// @Tags 路线图
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.RoadmapData} "成功"
// @Failure 400 {object} util.Response "尚未填写问卷"
// @Router /api/roadmap/regenerate [post]
func (c *RoadmapController) Regenerate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	roadmap, err := c.RoadmapService.GenerateForUser(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrOnboardingIncomplete) {
			util.BadRequest(ctx, "请先完成入门问卷")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, roadmap)
}

type CompleteTaskRequest struct {
	TaskID string `json:"taskId" binding:"required"`
}

// CompleteTask godoc
// @Summary 标记路线图任务完成
// @Description 按任务ID记录完成状态，重复标记幂等
// @Tags 路线图
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CompleteTaskRequest true "任务ID"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "任务不存在"
// @Router /api/roadmap/tasks/complete [post]
func (c *RoadmapController) CompleteTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.RoadmapService.CompleteTask(claims.UserID, req.TaskID); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}
