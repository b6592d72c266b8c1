package controller

import (
	"career_guide_backend/internal/service"
	"career_guide_backend/internal/util"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type QuestController struct {
	QuestService *service.QuestService
}

func NewQuestController(questService *service.QuestService) *QuestController {
	return &QuestController{QuestService: questService}
}

// GetToday godoc
// @Summary 获取当日任务
// @Description 返回当日任务列表，首次访问时按模板生成
// @Tags 每日任务
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/quests/today [get]
func (c *QuestController) GetToday(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quests, err := c.QuestService.GetTodayQuests(claims.UserID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"quests": quests})
}

// Complete godoc
// @Summary 完成任务
// @Description 推进任务进度，达成时结算积分、连击与连击加成
// @Tags 每日任务
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Success 200 {object} util.Response{data=service.CompleteResult} "成功"
// @Failure 400 {object} util.Response "任务已完成"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/quests/{id}/complete [post]
func (c *QuestController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "任务ID不合法")
		return
	}

	result, err := c.QuestService.CompleteQuest(ctx.Request.Context(), claims.UserID, uint(id), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuestAlreadyDone):
			util.BadRequest(ctx, "任务已完成，不能重复提交")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// GetStreaks godoc
// @Summary 查看连击记录
// @Tags 每日任务
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/streaks [get]
func (c *QuestController) GetStreaks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	streaks, err := c.QuestService.GetStreaks(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"streaks": streaks})
}

// UseFreeze godoc
// @Summary 使用连击冻结
// @Description 消耗一枚冻结符保护当天的连击
// @Tags 每日任务
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "冻结符已用完"
// @Router /api/streaks/freeze [post]
func (c *QuestController) UseFreeze(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.QuestService.UseFreeze(claims.UserID, time.Now()); err != nil {
		if errors.Is(err, util.ErrNoFreezesLeft) {
			util.BadRequest(ctx, "冻结符已用完")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Leaderboard godoc
// @Summary 积分排行榜
// @Description 按积分取前 N 名
// @Tags 每日任务
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "返回数量，默认10"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/leaderboard [get]
func (c *QuestController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	users, err := c.QuestService.Leaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	for i := range users {
		users[i].Password = ""
	}
	util.Success(ctx, gin.H{"leaderboard": users})
}
