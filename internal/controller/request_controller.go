package controller

import (
	"dating_app_backend/internal/service"
	"dating_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RequestController struct {
	MatchService *service.MatchService
}

func NewRequestController(matchService *service.MatchService) *RequestController {
	return &RequestController{MatchService: matchService}
}

// Send godoc
// @Summary 发送约会请求
// @Tags 约会请求
// @Produce  json
// @Security ApiKeyAuth
// @Param   receiverId path string true "接收方ID"
// @Success 201 {object} util.Response{data=model.DatingRequest} "已发送"
// @Failure 400 {object} util.Response "不能向自己发送或已存在请求"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/requests/send/{receiverId} [post]
func (c *RequestController) Send(ctx *gin.Context) {
	req, err := c.MatchService.CreateRequest(ctx.Request.Context(), util.CurrentUserID(ctx), ctx.Param("receiverId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Dating request sent successfully", req)
}

// Accept godoc
// @Summary 接受约会请求
// @Tags 约会请求
// @Produce  json
// @Security ApiKeyAuth
// @Param   requestId path string true "请求ID"
// @Success 200 {object} util.Response{data=model.DatingRequest} "已接受"
// @Failure 400 {object} util.Response "请求已处理"
// @Failure 403 {object} util.Response "无权处理"
// @Failure 404 {object} util.Response "请求不存在"
// @Router /api/requests/accept/{requestId} [post]
func (c *RequestController) Accept(ctx *gin.Context) {
	req, err := c.MatchService.Accept(ctx.Request.Context(), util.CurrentUserID(ctx), ctx.Param("requestId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Dating request accepted", req)
}

// Reject godoc
// @Summary 拒绝约会请求
// @Tags 约会请求
// @Produce  json
// @Security ApiKeyAuth
// @Param   requestId path string true "请求ID"
// @Success 200 {object} util.Response{data=model.DatingRequest} "已拒绝"
// @Failure 403 {object} util.Response "无权处理"
// @Router /api/requests/reject/{requestId} [post]
func (c *RequestController) Reject(ctx *gin.Context) {
	req, err := c.MatchService.Reject(ctx.Request.Context(), util.CurrentUserID(ctx), ctx.Param("requestId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Dating request rejected", req)
}

// Cancel godoc
// @Summary 撤回约会请求
// @Tags 约会请求
// @Produce  json
// @Security ApiKeyAuth
// @Param   requestId path string true "请求ID"
// @Success 200 {object} util.Response "已撤回"
// @Failure 403 {object} util.Response "只有发送方可以撤回"
// @Router /api/requests/cancel/{requestId} [delete]
func (c *RequestController) Cancel(ctx *gin.Context) {
	if err := c.MatchService.CancelRequest(ctx.Request.Context(), util.CurrentUserID(ctx), ctx.Param("requestId")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Dating request cancelled", nil)
}

// Sent godoc
// @Summary 我发出的请求
// @Tags 约会请求
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.RequestView} "成功"
// @Router /api/requests/sent [get]
func (c *RequestController) Sent(ctx *gin.Context) {
	views, err := c.MatchService.ListSent(ctx.Request.Context(), util.CurrentUserID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// Received godoc
// @Summary 我收到的请求
// @Tags 约会请求
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.RequestView} "成功"
// @Router /api/requests/received [get]
func (c *RequestController) Received(ctx *gin.Context) {
	views, err := c.MatchService.ListReceived(ctx.Request.Context(), util.CurrentUserID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// Matches godoc
// @Summary 已匹配用户
// @Tags 约会请求
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.MatchView} "成功"
// @Router /api/requests/matches [get]
func (c *RequestController) Matches(ctx *gin.Context) {
	matches, err := c.MatchService.ListMatches(ctx.Request.Context(), util.CurrentUserID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, matches)
}

// Unmatch godoc
// @Summary 解除匹配
// @Description 消息记录保留，但双方无法再收发消息
// @Tags 约会请求
// @Produce  json
// @Security ApiKeyAuth
// @Param   matchedUserId path string true "对方ID"
// @Success 200 {object} util.Response{data=model.DatingRequest} "已解除"
// @Failure 404 {object} util.Response "没有有效的匹配"
// @Router /api/requests/unmatch/{matchedUserId} [post]
func (c *RequestController) Unmatch(ctx *gin.Context) {
	req, err := c.MatchService.Unmatch(ctx.Request.Context(), util.CurrentUserID(ctx), ctx.Param("matchedUserId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Successfully unmatched", req)
}
