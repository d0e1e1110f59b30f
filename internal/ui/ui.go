// Package ui serves the single-page front end for the evaluate and rank
// workflows.
package ui

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML []byte

// RegisterRoutes serves the page at "/".
func RegisterRoutes(r gin.IRoutes) {
	r.GET("/", index)
}

func index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}
