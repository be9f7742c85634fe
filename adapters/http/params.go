package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/me-api/pkg/apperror"
)

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.NewInvalidInput("id must be an integer", err)
	}
	return id, nil
}

// queryInt returns nil when the parameter is absent.
func queryInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.NewInvalidInput(key+" must be an integer", err)
	}
	return &v, nil
}

func pagination(c *gin.Context) (limit *int, offset int, err error) {
	if limit, err = queryInt(c, "limit"); err != nil {
		return nil, 0, err
	}
	off, err := queryInt(c, "offset")
	if err != nil {
		return nil, 0, err
	}
	if off != nil {
		offset = *off
	}
	return limit, offset, nil
}
