package auth

import (
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/liminalpurple/sticker-gallery/internal/api"
	"github.com/liminalpurple/sticker-gallery/internal/host"
	"github.com/liminalpurple/sticker-gallery/internal/session"
)

// fakeBridge serves credential values from memory
type fakeBridge struct {
	initData string
	embedded bool
}

func (b *fakeBridge) Embedded() bool   { return b.embedded }
func (b *fakeBridge) InitData() string { return b.initData }
func (b *fakeBridge) Identity() (host.Identity, bool) {
	return host.ParseIdentity(b.initData)
}
func (b *fakeBridge) Theme() host.Theme          { return host.Theme{} }
func (b *fakeBridge) Ready()                     {}
func (b *fakeBridge) Expand()                    {}
func (b *fakeBridge) OpenLink(string) error      { return nil }
func (b *fakeBridge) Share(string, string) error { return nil }
func (b *fakeBridge) ShowAlert(string)           {}
func (b *fakeBridge) OnBack(func())              {}

// fakeStatus is a scripted auth-status backend
type fakeStatus struct {
	verdict *api.AuthVerdict
	err     error
	calls   int
}

func (f *fakeStatus) AuthStatus(ctx context.Context, credential string) (*api.AuthVerdict, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.verdict, nil
}

func credentialAged(seconds int64) string {
	values := url.Values{}
	values.Set("user", `{"id":7,"first_name":"Test"}`)
	values.Set("auth_date", fmt.Sprintf("%d", time.Now().Unix()-seconds))
	values.Set("hash", "abc")
	return values.Encode()
}

// TestCheck_MissingCredential verifies no network call happens without a credential
func TestCheck_MissingCredential(t *testing.T) {
	bridge := &fakeBridge{embedded: true}
	status := &fakeStatus{}
	gate := NewGate(session.NewManager(bridge), status, 600)

	result := gate.Check(context.Background())

	if result.State != Unauthenticated || result.Reason != ReasonMissingCredential {
		t.Errorf("Expected Unauthenticated/MissingCredential, got %v/%v", result.State, result.Reason)
	}
	if status.calls != 0 {
		t.Errorf("Expected no backend calls, got %d", status.calls)
	}
}

// TestCheck_AnonymousMode verifies the public short-circuit outside a host environment
func TestCheck_AnonymousMode(t *testing.T) {
	bridge := &fakeBridge{embedded: false}
	status := &fakeStatus{}
	gate := NewGate(session.NewManager(bridge), status, 600)

	result := gate.Check(context.Background())

	if !result.Authorized() || !result.Anonymous {
		t.Errorf("Expected anonymous authenticated result, got %+v", result)
	}
	if status.calls != 0 {
		t.Errorf("Expected no backend calls in anonymous mode, got %d", status.calls)
	}
}

// TestCheck_StaleWithFailedRefresh verifies no listing happens and the reason is expiry
func TestCheck_StaleWithFailedRefresh(t *testing.T) {
	// 700 seconds old, host has nothing fresher
	bridge := &fakeBridge{initData: credentialAged(700), embedded: true}
	status := &fakeStatus{}
	gate := NewGate(session.NewManager(bridge), status, 600)

	result := gate.Check(context.Background())

	if result.Reason != ReasonExpiredCredential {
		t.Errorf("Expected ReasonExpiredCredential, got %v", result.Reason)
	}
	if !result.CanRetry {
		t.Error("Expired credential should carry a manual-retry affordance")
	}
	if status.calls != 0 {
		t.Errorf("Expected no backend calls when refresh fails, got %d", status.calls)
	}
}

// TestCheck_StaleWithSuccessfulRefresh verifies exactly one automatic retry
func TestCheck_StaleWithSuccessfulRefresh(t *testing.T) {
	bridge := &fakeBridge{initData: credentialAged(700), embedded: true}
	status := &fakeStatus{verdict: &api.AuthVerdict{Authenticated: true, Role: "USER"}}
	sess := session.NewManager(bridge)
	gate := NewGate(sess, status, 600)

	// The host has a fresh credential ready for the refresh.
	bridge.initData = credentialAged(10)

	result := gate.Check(context.Background())

	if !result.Authorized() {
		t.Fatalf("Expected Authenticated after refresh, got %+v", result)
	}
	if result.Role != "USER" {
		t.Errorf("Expected role USER, got %q", result.Role)
	}
	if status.calls != 1 {
		t.Errorf("Expected exactly one backend call, got %d", status.calls)
	}
}

// TestCheck_StaleTwice verifies a second staleness verdict surfaces without looping
func TestCheck_StaleTwice(t *testing.T) {
	bridge := &fakeBridge{initData: credentialAged(700), embedded: true}
	status := &fakeStatus{}
	sess := session.NewManager(bridge)
	gate := NewGate(sess, status, 600)

	// Refresh succeeds (differing value) but the fresh credential is stale too.
	bridge.initData = credentialAged(800)

	result := gate.Check(context.Background())

	if result.Reason != ReasonExpiredCredential {
		t.Errorf("Expected ReasonExpiredCredential after one retry, got %v", result.Reason)
	}
	if status.calls != 0 {
		t.Errorf("Expected no backend calls, got %d", status.calls)
	}
	// The single refresh did happen.
	if sess.Credential() != bridge.initData {
		t.Error("Expected the one bounded refresh to have swapped the credential")
	}
}

// TestCheck_BackendRejects verifies a 2xx authenticated=false verdict
func TestCheck_BackendRejects(t *testing.T) {
	bridge := &fakeBridge{initData: credentialAged(10), embedded: true}
	status := &fakeStatus{verdict: &api.AuthVerdict{Authenticated: false, Message: "No authentication data provided"}}
	gate := NewGate(session.NewManager(bridge), status, 600)

	result := gate.Check(context.Background())

	if result.Reason != ReasonRejected {
		t.Errorf("Expected ReasonRejected, got %v", result.Reason)
	}
	if result.Message != "No authentication data provided" {
		t.Errorf("Expected backend message to surface, got %q", result.Message)
	}
}

// TestCheck_BackendError verifies transport and server failures carry the status
func TestCheck_BackendError(t *testing.T) {
	bridge := &fakeBridge{initData: credentialAged(10), embedded: true}
	status := &fakeStatus{err: &api.StatusError{Code: 503, Text: "Service Unavailable"}}
	gate := NewGate(session.NewManager(bridge), status, 600)

	result := gate.Check(context.Background())

	if result.Reason != ReasonNetworkOrServerError {
		t.Errorf("Expected ReasonNetworkOrServerError, got %v", result.Reason)
	}
	if result.Message == "" || !result.CanRetry {
		t.Errorf("Expected retryable result with the error message, got %+v", result)
	}
}

// TestCheck_Authenticated verifies the happy path ends Authenticated
func TestCheck_Authenticated(t *testing.T) {
	bridge := &fakeBridge{initData: credentialAged(0), embedded: true}
	status := &fakeStatus{verdict: &api.AuthVerdict{Authenticated: true, Role: "ADMIN"}}
	gate := NewGate(session.NewManager(bridge), status, 600)

	result := gate.Check(context.Background())

	if !result.Authorized() || result.Role != "ADMIN" {
		t.Errorf("Expected authenticated ADMIN, got %+v", result)
	}
	if gate.State() != Authenticated {
		t.Errorf("Expected terminal Authenticated state, got %v", gate.State())
	}
}
