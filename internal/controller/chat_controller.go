package controller

import (
	"dating_app_backend/internal/service"
	"dating_app_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// SendMessageRequest 发送消息请求体
type SendMessageRequest struct {
	Text string `json:"text"`
}

// ListMessages godoc
// @Summary 聊天记录
// @Description 按时间正序返回，需要双方当前处于匹配状态
// @Tags 聊天
// @Produce  json
// @Security ApiKeyAuth
// @Param   matchedUserId path string true "对方ID"
// @Success 200 {object} util.Response{data=[]model.Message} "成功"
// @Failure 403 {object} util.Response "未匹配"
// @Router /api/chat/messages/{matchedUserId} [get]
func (c *ChatController) ListMessages(ctx *gin.Context) {
	msgs, err := c.ChatService.ListMessages(ctx.Request.Context(), util.CurrentUserID(ctx), ctx.Param("matchedUserId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, msgs)
}

// Send godoc
// @Summary 发送消息
// @Tags 聊天
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   receiverId path string true "接收方ID"
// @Param   body body SendMessageRequest true "消息内容"
// @Success 201 {object} util.Response{data=model.Message} "已发送"
// @Failure 400 {object} util.Response "消息为空"
// @Failure 403 {object} util.Response "未匹配"
// @Router /api/chat/send/{receiverId} [post]
func (c *ChatController) Send(ctx *gin.Context) {
	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	msg, err := c.ChatService.SendMessage(ctx.Request.Context(), util.CurrentUserID(ctx), ctx.Param("receiverId"), req.Text)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, "Message sent", msg)
}

// MarkRead godoc
// @Summary 标记消息已读
// @Tags 聊天
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "消息ID"
// @Success 200 {object} util.Response{data=model.Message} "成功"
// @Failure 403 {object} util.Response "不是接收方或已读"
// @Failure 404 {object} util.Response "消息不存在"
// @Router /api/chat/messages/{id}/markAsRead [post]
func (c *ChatController) MarkRead(ctx *gin.Context) {
	msg, err := c.ChatService.MarkRead(ctx.Request.Context(), util.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Message marked as read", msg)
}

// MarkAllRead godoc
// @Summary 全部标记已读
// @Tags 聊天
// @Produce  json
// @Security ApiKeyAuth
// @Param   matchedUserId path string true "对方ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/chat/messages/markAllAsRead/{matchedUserId} [post]
func (c *ChatController) MarkAllRead(ctx *gin.Context) {
	n, err := c.ChatService.MarkAllRead(ctx.Request.Context(), util.CurrentUserID(ctx), ctx.Param("matchedUserId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "All messages marked as read", gin.H{"updated": n})
}
