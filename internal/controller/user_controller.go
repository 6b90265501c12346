package controller

import (
	"dating_app_backend/internal/service"
	"dating_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// Explore godoc
// @Summary 浏览用户
// @Description 返回除自己以外的所有用户
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.PublicProfile} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/users/explore [get]
func (c *UserController) Explore(ctx *gin.Context) {
	profiles, err := c.UserService.Explore(ctx.Request.Context(), util.CurrentUserID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profiles)
}

// GetMe godoc
// @Summary 当前用户资料
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.PublicProfile} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	profile, err := c.UserService.GetMe(ctx.Request.Context(), util.CurrentUserID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// GetProfile godoc
// @Summary 查看用户资料
// @Description Instagram 信息仅对已匹配用户可见
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "用户ID"
// @Success 200 {object} util.Response{data=model.PublicProfile} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	profile, err := c.UserService.GetProfile(ctx.Request.Context(), util.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// UpdateMe godoc
// @Summary 更新个人资料
// @Description 局部更新，username 与 password 不可修改
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.UpdateProfileInput true "要更新的字段"
// @Success 200 {object} util.Response{data=model.PublicProfile} "更新成功"
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/users/me [put]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	var req service.UpdateProfileInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body, swipeImages must be an array of image URLs")
		return
	}

	profile, err := c.UserService.UpdateMe(ctx.Request.Context(), util.CurrentUserID(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Profile updated successfully", profile)
}

// Search godoc
// @Summary 搜索用户
// @Description 按用户名或昵称模糊搜索，不区分大小写
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   term path string true "关键词"
// @Success 200 {object} util.Response{data=[]model.PublicProfile} "成功"
// @Failure 404 {object} util.Response "没有匹配的用户"
// @Router /api/users/search/{term} [get]
func (c *UserController) Search(ctx *gin.Context) {
	profiles, err := c.UserService.Search(ctx.Request.Context(), util.CurrentUserID(ctx), ctx.Param("term"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profiles)
}

// DeleteMe godoc
// @Summary 注销账号
// @Description 同时删除该用户的全部请求和消息
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "删除成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/me [delete]
func (c *UserController) DeleteMe(ctx *gin.Context) {
	if err := c.UserService.DeleteMe(ctx.Request.Context(), util.CurrentUserID(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Account deleted successfully", nil)
}
