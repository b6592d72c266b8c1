package controller

import (
	"career_guide_backend/internal/service"
	"career_guide_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// GetQuestions godoc
// @Summary 获取测评题目
// @Description 按方向返回题目（不含答案），方向无题时回落默认方向
// @Tags 技能测评
// @Produce  json
// @Security ApiKeyAuth
// @Param   stream query string false "测评方向"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/assessment/questions [get]
func (c *AssessmentController) GetQuestions(ctx *gin.Context) {
	stream, questions, err := c.AssessmentService.QuestionsForStream(ctx.Query("stream"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"stream":       stream,
		"questions":    questions,
		"timeLimitSec": int(service.AssessmentTimeLimit.Seconds()),
	})
}

// Submit godoc
// @Summary 提交测评答卷
// @Description 评分并评定技能等级，结果写回用户档案
// @Tags 技能测评
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubmitRequest true "答卷"
// @Success 200 {object} util.Response{data=model.AssessmentSubmission} "成功"
// @Failure 400 {object} util.Response "答题超时或参数错误"
// @Router /api/assessment/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.Submit(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrAssessmentExpired) {
			util.BadRequest(ctx, "测评已超时，请重新开始")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// LatestResult godoc
// @Summary 查看最近一次测评结果
// @Tags 技能测评
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.AssessmentSubmission} "成功"
// @Failure 404 {object} util.Response "尚未参加测评"
// @Router /api/assessment/result [get]
func (c *AssessmentController) LatestResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.AssessmentService.LatestResult(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
