package controllers

import (
	"errors"
	"math"
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// แปลงเงินระหว่างบาท (API) กับสตางค์ (DB)
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100.0
}

func parseID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// map service error -> HTTP status
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidParams):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyExists):
		resp.Conflict(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
