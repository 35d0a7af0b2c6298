package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// pathID parses a UUID path parameter, writing a 400 with code on failure.
func pathID(ctx *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		respondBadRequest(ctx, "Invalid "+name, code, err)
		return uuid.Nil, false
	}
	return id, true
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(ctx *gin.Context, name, code string) (*valueobject.Date, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	date, err := valueobject.ParseDate(raw)
	if err != nil {
		respondBadRequest(ctx, "Invalid "+name+", expected YYYY-MM-DD", code, err)
		return nil, false
	}
	return &date, true
}
