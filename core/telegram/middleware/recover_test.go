package middleware

import (
	"errors"
	"testing"

	tele "gopkg.in/telebot.v4"
)

type stubContext struct {
	tele.Context
	store map[string]any
}

func newStubContext() *stubContext { return &stubContext{store: map[string]any{}} }

func (s *stubContext) Update() tele.Update   { return tele.Update{ID: 1} }
func (s *stubContext) Sender() *tele.User    { return &tele.User{ID: 10} }
func (s *stubContext) Chat() *tele.Chat      { return &tele.Chat{ID: 10} }
func (s *stubContext) Get(key string) any    { return s.store[key] }
func (s *stubContext) Set(key string, v any) { s.store[key] = v }

func TestRecoverMiddleware(t *testing.T) {
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })
	err := h(newStubContext())
	if !errors.Is(err, ErrHandlerPanic) {
		t.Fatalf("err = %v, want ErrHandlerPanic", err)
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	called := false
	next := func(tele.Context) error { called = true; return nil }

	if err := AdminOnlyMiddleware(AdminOptions{AdminID: 0})(next)(newStubContext()); err != nil || called {
		t.Fatalf("no admin configured: err = %v, called = %v", err, called)
	}
	if err := AdminOnlyMiddleware(AdminOptions{AdminID: 10})(next)(newStubContext()); err != nil || !called {
		t.Fatalf("admin: err = %v, called = %v", err, called)
	}
}
