package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestDataKey ctxKey = "request_data"
	traceDataKey   ctxKey = "trace_data"
)

// RequestData carries the authenticated caller through a request.
type RequestData struct {
	UserID      uuid.UUID
	Role        string
	TokenString string
}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, _ := ctx.Value(requestDataKey).(*RequestData)
	return rd
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	td, _ := ctx.Value(traceDataKey).(*TraceData)
	return td
}
