package grpcx

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"oguild.dev/police"
	"oguild.dev/police/kind"
	"oguild.dev/police/mapper"
)

func testInterceptor(t *testing.T) grpc.UnaryServerInterceptor {
	t.Helper()
	m, err := mapper.New()
	if err != nil {
		t.Fatalf("mapper.New: %v", err)
	}
	return UnaryServerInterceptor(m, nil, nil)
}

func invoke(t *testing.T, ic grpc.UnaryServerInterceptor, method string, h grpc.UnaryHandler) (any, error) {
	t.Helper()
	info := &grpc.UnaryServerInfo{FullMethod: method}
	return ic(context.Background(), struct{}{}, info, h)
}

func TestInterceptor_Success_PassThrough(t *testing.T) {
	ic := testInterceptor(t)
	resp, err := invoke(t, ic, "/oguild.calc.v1.Calc/Identity", func(ctx context.Context, req any) (any, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != 42 {
		t.Fatalf("response altered: %v", resp)
	}
}

func TestInterceptor_Failure_MapsStatusAndErrorInfo(t *testing.T) {
	ic := testInterceptor(t)
	f := police.F(kind.DivisionByZero, "division by zero",
		police.WithDetailOption("a", 10),
		police.WithDetailOption("b", 0),
	)
	_, err := invoke(t, ic, "/oguild.calc.v1.Calc/Divide", func(ctx context.Context, req any) (any, error) {
		return nil, f
	})
	if err == nil {
		t.Fatalf("expected error")
	}

	st, ok := gstatus.FromError(err)
	if !ok {
		t.Fatalf("not a status error: %v", err)
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("code = %v, want InvalidArgument", st.Code())
	}
	if st.Message() != "division by zero" {
		t.Fatalf("message = %q", st.Message())
	}

	info, ok := ExtractErrorInfo(err)
	if !ok {
		t.Fatalf("ErrorInfo detail missing")
	}
	want := &errdetails.ErrorInfo{
		Reason:   "division_by_zero",
		Domain:   "oguild.calc.v1.calc.divide",
		Metadata: map[string]string{"a": "10", "b": "0"},
	}
	if !proto.Equal(info, want) {
		t.Fatalf("ErrorInfo = %v, want %v", info, want)
	}
}

func TestInterceptor_Failure_SanitizesMetadata(t *testing.T) {
	ic := testInterceptor(t)
	f := police.F(kind.Unauthenticated, "bad credentials",
		police.WithDetailOption("user", "alice"),
		police.WithDetailOption("password", "hunter2"),
	)
	_, err := invoke(t, ic, "/oguild.auth.v1.Auth/Login", func(ctx context.Context, req any) (any, error) {
		return nil, f
	})
	info, ok := ExtractErrorInfo(err)
	if !ok {
		t.Fatalf("ErrorInfo detail missing")
	}
	if info.Metadata["password"] != "***" {
		t.Fatalf("password leaked: %q", info.Metadata["password"])
	}
	if info.Metadata["user"] != "alice" {
		t.Fatalf("benign field mangled: %q", info.Metadata["user"])
	}
}

func TestInterceptor_Failure_Wrapped(t *testing.T) {
	ic := testInterceptor(t)
	inner := police.F(kind.NotFound, "guild not found")
	_, err := invoke(t, ic, "/oguild.guilds.v1.Guilds/Get", func(ctx context.Context, req any) (any, error) {
		return nil, errors.Join(errors.New("lookup"), inner)
	})
	st, ok := gstatus.FromError(err)
	if !ok {
		t.Fatalf("not a status error: %v", err)
	}
	if st.Code() != codes.NotFound {
		t.Fatalf("code = %v, want NotFound", st.Code())
	}
}

func TestInterceptor_ForeignError_PassThrough(t *testing.T) {
	ic := testInterceptor(t)
	sentinel := errors.New("plain failure")
	_, err := invoke(t, ic, "/oguild.calc.v1.Calc/Divide", func(ctx context.Context, req any) (any, error) {
		return nil, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("foreign error rewritten: %v", err)
	}
}

func TestMethodChannel_Fallback(t *testing.T) {
	if got := MethodChannel(context.Background(), "///"); got != "unknown" {
		t.Fatalf("MethodChannel(///) = %q, want unknown", got)
	}
	if got := MethodChannel(context.Background(), "/oguild.calc.v1.Calc/Divide"); got != "oguild.calc.v1.calc.divide" {
		t.Fatalf("MethodChannel = %q", got)
	}
}

func TestExtractErrorInfo_NilAndPlain(t *testing.T) {
	if _, ok := ExtractErrorInfo(nil); ok {
		t.Fatalf("nil error must not carry ErrorInfo")
	}
	if _, ok := ExtractErrorInfo(gstatus.Error(codes.Internal, "boom")); ok {
		t.Fatalf("bare status must not carry ErrorInfo")
	}
}
