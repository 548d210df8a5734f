package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"respondo.app/backend/internal/http/handler"
	"respondo.app/backend/internal/service"
)

type RouterConfig struct {
	Info handler.ServiceInfo
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	metaHandler := handler.NewMetaHandler(services.Instructions(), cfg.Info)
	MetaRouter(router, metaHandler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	replyHandler := handler.NewReplyHandler(services.Replies())
	ReplyRouter(router.Group("/api"), replyHandler)
}

func MetaRouter(router *gin.Engine, h *handler.MetaHandler) {
	router.GET("/", h.Status)
	router.GET("/health", h.Health)
	router.POST("/reload-prompt", h.ReloadPrompt)
}

func ReplyRouter(rg *gin.RouterGroup, h *handler.ReplyHandler) {
	rg.POST("/suggest-reply", h.SuggestReply)
	rg.POST("/test", h.Test)
}
