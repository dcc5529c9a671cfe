package requestdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/types"
)

var requestDataKey = struct{}{}

// RequestData carries the authenticated caller through the request context.
// Weight resolution and the permission gate read from here instead of any
// process-global cache, so nothing leaks between requests.
type RequestData struct {
	TokenString string
	UserID      uuid.UUID
	CompanyID   uuid.UUID
	Role        types.Role
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
