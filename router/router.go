package router

import (
	"DocVault/internal/handler"
	"DocVault/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/register", handler.Register)
		api.GET("/activate", handler.Activate)
		api.POST("/login", handler.Login)

		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		folder := auth.Group("/folder")
		{
			folder.POST("/create", handler.CreateFolder)
			folder.POST("/list", handler.ListMembers)
			folder.POST("/share", handler.ShareFolder)
			folder.POST("/delete", handler.DeleteFolder)
			folder.GET("/:folderID", handler.FolderDetail)
		}

		document := auth.Group("/document")
		{
			document.POST("/upload", utils.UploadRateMiddleware(), handler.UploadDocument)
			document.POST("/delete", handler.DeleteDocument)
			document.GET("/:documentID", handler.DocumentDetail)
			document.GET("/:documentID/download", handler.DownloadDocument)
		}

		auth.GET("/storage", handler.StorageStatus)
	}
	return r
}
