package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondSuccess 统一的成功返回结构
func RespondSuccess(c *gin.Context, data interface{}, meta interface{}) {
	resp := gin.H{
		"code":    200,
		"message": "success",
		"data":    data,
	}
	if meta != nil {
		resp["meta"] = meta
	}
	c.JSON(http.StatusOK, resp)
}
