package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt lê um query param inteiro com default e piso em 1.
func QueryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
