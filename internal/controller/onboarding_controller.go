package controller

import (
	"career_guide_backend/internal/service"
	"career_guide_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OnboardingController struct {
	OnboardingService *service.OnboardingService
	RoadmapService    *service.RoadmapService
}

func NewOnboardingController(onboardingService *service.OnboardingService, roadmapService *service.RoadmapService) *OnboardingController {
	return &OnboardingController{
		OnboardingService: onboardingService,
		RoadmapService:    roadmapService,
	}
}

// Submit godoc
// @Summary 提交入门问卷
// @Description 保存职业目标问卷并触发路线图生成，重复提交整条覆盖并重新生成
// @Tags 入门问卷
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.OnboardingRequest true "问卷答案"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/onboarding [post]
func (c *OnboardingController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.OnboardingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	onboarding, err := c.OnboardingService.Save(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	roadmap, err := c.RoadmapService.GenerateForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"onboarding": onboarding, "roadmap": roadmap})
}

// Get godoc
// @Summary 查看问卷答案
// @Tags 入门问卷
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.CareerOnboarding} "成功"
// @Failure 404 {object} util.Response "尚未填写问卷"
// @Router /api/onboarding [get]
func (c *OnboardingController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	onboarding, err := c.OnboardingService.Get(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, onboarding)
}
