package controller

import (
	"career_guide_backend/internal/service"
	"career_guide_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FriendshipController struct {
	FriendshipService *service.FriendshipService
}

func NewFriendshipController(friendshipService *service.FriendshipService) *FriendshipController {
	return &FriendshipController{FriendshipService: friendshipService}
}

// SearchUsers godoc
// @Summary 搜索用户
// @Description 按邮箱精确查找或按姓名/邮箱模糊搜索
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   email query string false "邮箱精确查找"
// @Param   q query string false "模糊搜索关键词"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/friends/search [get]
func (c *FriendshipController) SearchUsers(ctx *gin.Context) {
	if email := ctx.Query("email"); email != "" {
		user, err := c.FriendshipService.SearchUserByEmail(email)
		if err != nil {
			util.NotFound(ctx)
			return
		}
		util.Success(ctx, gin.H{"users": []interface{}{user}})
		return
	}

	q := ctx.Query("q")
	if q == "" {
		util.BadRequest(ctx, "请提供搜索关键词")
		return
	}

	users, err := c.FriendshipService.FuzzySearchUsers(q)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"users": users})
}

type FriendRequestBody struct {
	ReceiverID uint   `json:"receiverId" binding:"required"`
	Message    string `json:"message"`
}

// SendRequest godoc
// @Summary 发送好友申请
// @Description 对方已先发出申请时直接互相成为好友
// @Tags 好友
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body FriendRequestBody true "申请信息"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "已经是好友或重复申请"
// @Router /api/friends/requests [post]
func (c *FriendshipController) SendRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req FriendRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.FriendshipService.SendFriendRequest(claims.UserID, req.ReceiverID, req.Message); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, nil)
}

type HandleRequestBody struct {
	Accept bool `json:"accept"`
}

// HandleRequest godoc
// @Summary 处理好友申请
// @Tags 好友
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "申请ID"
// @Param   body body HandleRequestBody true "是否同意"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "申请不存在或已处理"
// @Router /api/friends/requests/{id} [put]
func (c *FriendshipController) HandleRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req HandleRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.FriendshipService.HandleFriendRequest(ctx.Param("id"), claims.UserID, req.Accept); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}

// GetPendingRequests godoc
// @Summary 待处理的好友申请
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/friends/requests [get]
func (c *FriendshipController) GetPendingRequests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	requests, err := c.FriendshipService.GetPendingRequests(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"requests": requests})
}

// GetFriends godoc
// @Summary 好友列表
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   q query string false "按姓名或邮箱过滤"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/friends [get]
func (c *FriendshipController) GetFriends(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	friends, err := c.FriendshipService.GetFriends(claims.UserID, ctx.Query("q"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"friends": friends})
}

// DeleteFriend godoc
// @Summary 删除好友
// @Description 双向解除好友关系
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "好友用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "不是好友关系"
// @Router /api/friends/{id} [delete]
func (c *FriendshipController) DeleteFriend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "用户ID不合法")
		return
	}

	if err := c.FriendshipService.DeleteFriend(claims.UserID, uint(id)); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}
