package router

import (
	"errors"
	"testing"
)

type codedErr struct{}

func (codedErr) Error() string { return "coded" }
func (codedErr) Code() string  { return "pool exhausted" }

type plainErr struct{}

func (*plainErr) Error() string { return "plain" }

func TestHandlerName(t *testing.T) {
	cases := map[string]string{
		"/Interview": "interview",
		"  ":         "unknown",
		"/next step": "next_step",
	}
	for in, want := range cases {
		if got := handlerName(in); got != want {
			t.Fatalf("handlerName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestErrorCode(t *testing.T) {
	if got := errorCode(nil); got != "" {
		t.Fatalf("nil error code = %q", got)
	}
	if got := errorCode(codedErr{}); got != "POOL_EXHAUSTED" {
		t.Fatalf("coded = %q", got)
	}
	if got := errorCode(&plainErr{}); got != "PLAINERR" {
		t.Fatalf("plain = %q", got)
	}
	if got := errorCode(errors.New("x")); got != "ERRORSTRING" {
		t.Fatalf("errors.New = %q", got)
	}
}

func TestSummaryStatus(t *testing.T) {
	if st, out := (summary{}).statusFor(nil); st != "ok" || out != "ok" {
		t.Fatalf("nil err = %s/%s", st, out)
	}
	if st, out := (summary{}).statusFor(errors.New("x")); st != "fail" || out != "fail" {
		t.Fatalf("err = %s/%s", st, out)
	}
	if st, out := (summary{status: "skip"}).statusFor(nil); st != "skip" || out != "ok" {
		t.Fatalf("override = %s/%s", st, out)
	}
}
