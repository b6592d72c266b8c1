package controller

import (
	"career_guide_backend/internal/service"
	"career_guide_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type SkillGapController struct {
	SkillGapService *service.SkillGapService
}

func NewSkillGapController(skillGapService *service.SkillGapService) *SkillGapController {
	return &SkillGapController{SkillGapService: skillGapService}
}

// Roles godoc
// @Summary 支持差距分析的岗位列表
// @Tags 技能差距
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/skill-gap/roles [get]
func (c *SkillGapController) Roles(ctx *gin.Context) {
	util.Success(ctx, gin.H{"roles": c.SkillGapService.Roles()})
}

// Analyze godoc
// @Summary 目标岗位技能差距分析
// @Description 按最近一次测评结果推算当前熟练度，对照岗位要求给出差距与优先级
// @Tags 技能差距
// @Produce  json
// @Security ApiKeyAuth
// @Param   role query string true "目标岗位"
// @Success 200 {object} util.Response{data=service.GapReport} "成功"
// @Failure 400 {object} util.Response "岗位不支持"
// @Router /api/skill-gap/analyze [get]
func (c *SkillGapController) Analyze(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	role := ctx.Query("role")
	if role == "" {
		util.BadRequest(ctx, "请指定目标岗位")
		return
	}

	report, err := c.SkillGapService.Analyze(claims.UserID, role)
	if err != nil {
		if errors.Is(err, util.ErrUnknownRole) {
			util.BadRequest(ctx, "暂不支持该岗位的差距分析")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}
