/*
   Copyright 2025 The OGuild Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package grpcx adapts intercepted failures to gRPC status errors.
//
// The interceptor recognizes *police.Failure values (directly or wrapped),
// maps their kind and channel to a gRPC status via apis.Mapper, and attaches
// a google.rpc.ErrorInfo detail carrying the failure kind, the channel and
// the sanitized detail map.
package grpcx

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"

	"oguild.dev/police"
	"oguild.dev/police/apis"
	"oguild.dev/police/channel"
	"oguild.dev/police/sanitize"
)

// ChannelFn derives the logging channel for a failing RPC. It receives the
// request context and the full gRPC method name ("/pkg.Service/Method").
//
// Returning channel.Empty lets the mapper fall back to per-kind defaults.
type ChannelFn func(ctx context.Context, fullMethod string) channel.Channel

// MethodChannel is the default ChannelFn: it normalizes the full gRPC method
// name into channel form ("/oguild.calc.v1.Calc/Divide" becomes
// "oguild.calc.v1.calc.divide"). Invalid results degrade to channel.Unknown.
func MethodChannel(_ context.Context, fullMethod string) channel.Channel {
	c, err := channel.Parse(fullMethod)
	if err != nil || c == channel.Empty {
		return channel.Unknown
	}
	return c
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// *police.Failure errors into gRPC status errors with ErrorInfo details.
//
// The provided apis.Mapper turns (kind, channel) pairs into transport codes.
// chFn derives the channel used for mapping and for the ErrorInfo domain;
// pass nil to use MethodChannel. Failure details pass through the sanitizer
// before leaving the process; pass nil to use sanitize.Default().
//
// Errors that are not failures are returned unchanged.
func UnaryServerInterceptor(m apis.Mapper, chFn ChannelFn, s *sanitize.Sanitizer) grpc.UnaryServerInterceptor {
	if chFn == nil {
		chFn = MethodChannel
	}
	if s == nil {
		s = sanitize.Default()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var f *police.Failure
		if !errors.As(err, &f) {
			// Not ours — return as-is.
			return nil, err
		}

		ch := chFn(ctx, info.FullMethod)
		st := m.Status(f.Kind, ch)

		base := gstatus.New(st.GRPC, f.Message)

		// Try to attach ErrorInfo as a detail. If anything fails — return base.
		if with, err := base.WithDetails(errorInfo(f, ch, s)); err == nil {
			return nil, with.Err()
		}
		return nil, base.Err()
	}
}

// errorInfo builds the google.rpc.ErrorInfo detail for a failure.
// Reason carries the failure kind, Domain the channel, Metadata the
// sanitized and flattened detail map.
func errorInfo(f *police.Failure, ch channel.Channel, s *sanitize.Sanitizer) *errdetails.ErrorInfo {
	info := &errdetails.ErrorInfo{
		Reason: string(f.Kind),
		Domain: string(ch),
	}
	details := f.Details
	if clean, ok := s.Sanitize(details).(map[string]any); ok {
		details = clean
	}
	if flat := apis.FlattenDetails(details); len(flat) > 0 {
		md := make(map[string]string, len(flat))
		for _, d := range flat {
			md[d.Key] = d.Value
		}
		info.Metadata = md
	}
	return info
}

// ExtractErrorInfo pulls google.rpc.ErrorInfo out of a gRPC error, if present.
// Useful in tests and client code.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			return ei, true
		}
	}
	return nil, false
}
