package grpc

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophqa/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(&buf, logging.FormatJSON, "debug")
	require.NoError(t, err)

	s := NewGRPCServer("", l)
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := s.loggingInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Contains(t, buf.String(), `"method":"/grpc.health.v1.Health/Check"`)
	assert.Contains(t, buf.String(), `"code":"OK"`)
}

func TestLoggingInterceptor_KeepsError(t *testing.T) {
	s := NewGRPCServer("", logging.Nop{})
	info := &grpc.UnaryServerInfo{FullMethod: "/x.Y/Z"}
	want := status.Error(codes.NotFound, "nope")

	_, err := s.loggingInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, want
	})
	assert.True(t, errors.Is(err, want))
	assert.Equal(t, codes.NotFound, status.Code(err))
}
