package grpc

import (
	"bytes"
	"context"
	"testing"

	"github.com/arshan09/AuthenticationApp/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	var buf bytes.Buffer
	s := NewHealthServer("", logging.NewJSONLogger(&buf, "debug"))

	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	handlerCalled := false
	h := func(ctx context.Context, req any) (any, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.loggingInterceptor(context.Background(), nil, info, h)
	require.NoError(t, err)
	assert.True(t, handlerCalled)
	assert.Equal(t, "ok", resp)
	assert.Contains(t, buf.String(), `"method":"/grpc.health.v1.Health/Check"`)
	assert.Contains(t, buf.String(), `"code":"OK"`)
}

func TestLoggingInterceptor_KeepsError(t *testing.T) {
	var buf bytes.Buffer
	s := NewHealthServer("", logging.NewJSONLogger(&buf, "debug"))

	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	h := func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.NotFound, "unknown service")
	}

	_, err := s.loggingInterceptor(context.Background(), nil, info, h)
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Contains(t, buf.String(), `"code":"NotFound"`)
}
