package adapter

import (
	"reflect"
	"testing"

	"google.golang.org/grpc/codes"

	"oguild.dev/police"
	"oguild.dev/police/apis"
	"oguild.dev/police/channel"
	"oguild.dev/police/kind"
)

func TestToDescriptor(t *testing.T) {
	f := police.F(kind.DivisionByZero, "division by zero")
	st := apis.Status{HTTP: 400, GRPC: codes.InvalidArgument}

	d := ToDescriptor(f, channel.MustParse("oguild.calc.divide"), st)
	want := apis.ErrorDescriptor{
		Kind:       "division_by_zero",
		Channel:    "oguild.calc.divide",
		HTTPStatus: 400,
		GRPCCode:   int(codes.InvalidArgument),
		Message:    "division by zero",
	}
	if d != want {
		t.Fatalf("ToDescriptor = %+v, want %+v", d, want)
	}
}

func TestToDescriptor_Nil(t *testing.T) {
	if d := ToDescriptor(nil, channel.Unknown, apis.Status{}); d != (apis.ErrorDescriptor{}) {
		t.Fatalf("nil failure must yield zero descriptor, got %+v", d)
	}
}

func TestToView_DeterministicDetails(t *testing.T) {
	f := police.F(kind.Invalid, "bad input",
		police.WithDetailOption("b", 0),
		police.WithDetailOption("a", 10),
	)
	v := ToView(f, channel.MustParse("oguild.calc.divide"))

	if v.Kind != "invalid" || v.Channel != "oguild.calc.divide" || v.Message != "bad input" {
		t.Fatalf("view header wrong: %+v", v)
	}
	want := []apis.Detail{{Key: "a", Value: "10"}, {Key: "b", Value: "0"}}
	if !reflect.DeepEqual(v.Details, want) {
		t.Fatalf("details = %+v, want %+v", v.Details, want)
	}
}

func TestToView_Nil(t *testing.T) {
	v := ToView(nil, channel.Unknown)
	if v.Kind != "" || v.Details != nil {
		t.Fatalf("nil failure must yield zero view, got %+v", v)
	}
}
