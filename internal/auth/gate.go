// Package auth decides whether the gallery may talk to the backend. It
// combines the local credential freshness check with the backend's
// authoritative verdict.
package auth

import (
	"context"
	"log"

	"github.com/liminalpurple/sticker-gallery/internal/api"
	"github.com/liminalpurple/sticker-gallery/internal/session"
)

// State is the gate's position in a gallery-load cycle. It is terminal per
// cycle and re-entered on every load.
type State int

const (
	Unchecked State = iota
	Checking
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Reason explains an Unauthenticated verdict.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonMissingCredential
	ReasonExpiredCredential
	ReasonRejected
	ReasonNetworkOrServerError
)

func (r Reason) String() string {
	switch r {
	case ReasonMissingCredential:
		return "credential missing"
	case ReasonExpiredCredential:
		return "credential expired"
	case ReasonRejected:
		return "rejected by server"
	case ReasonNetworkOrServerError:
		return "network or server error"
	default:
		return ""
	}
}

// Result is the outcome of a gate check.
type Result struct {
	State   State
	Reason  Reason
	Role    string
	Message string

	// Anonymous marks the public preview mode entered when no host
	// environment and no credential exist at all. The gallery then fetches
	// without auth headers.
	Anonymous bool

	// CanRetry marks failures that deserve a manual-retry affordance.
	CanRetry bool
}

// Authorized reports whether data operations may proceed.
func (r Result) Authorized() bool {
	return r.State == Authenticated
}

// StatusClient is the backend auth-status call the gate depends on.
type StatusClient interface {
	AuthStatus(ctx context.Context, credential string) (*api.AuthVerdict, error)
}

// Gate gates all data operations behind a verified auth state.
type Gate struct {
	session *session.Manager
	client  StatusClient
	maxAge  int64
	state   State
}

// NewGate creates a gate. maxAge is the freshness window in seconds; zero or
// negative falls back to session.DefaultMaxAge.
func NewGate(sess *session.Manager, client StatusClient, maxAge int64) *Gate {
	if maxAge <= 0 {
		maxAge = session.DefaultMaxAge
	}
	return &Gate{session: sess, client: client, maxAge: maxAge}
}

// State returns the gate's current state.
func (g *Gate) State() State {
	return g.state
}

// Check runs the gate: local freshness first, then the backend verdict. A
// stale credential gets exactly one automatic refresh-and-retry; a second
// consecutive staleness verdict surfaces without further retries.
func (g *Gate) Check(ctx context.Context) Result {
	result := g.check(ctx, true)
	g.state = result.State
	return result
}

func (g *Gate) check(ctx context.Context, allowRetry bool) Result {
	g.state = Checking

	credential := g.session.Credential()

	if credential == "" {
		if !g.session.Embedded() {
			log.Println("No host environment detected, serving public gallery")
			return Result{State: Authenticated, Anonymous: true}
		}
		return Result{
			State:   Unauthenticated,
			Reason:  ReasonMissingCredential,
			Message: "no credential provided by the host",
		}
	}

	if !session.Valid(credential, g.maxAge) {
		if allowRetry && g.session.Refresh() {
			log.Println("Credential stale, refreshed from host, rechecking")
			return g.check(ctx, false)
		}
		return Result{
			State:    Unauthenticated,
			Reason:   ReasonExpiredCredential,
			Message:  "credential is older than the freshness window",
			CanRetry: true,
		}
	}

	verdict, err := g.client.AuthStatus(ctx, credential)
	if err != nil {
		return Result{
			State:    Unauthenticated,
			Reason:   ReasonNetworkOrServerError,
			Message:  err.Error(),
			CanRetry: true,
		}
	}

	if !verdict.Authenticated {
		message := verdict.Message
		if message == "" {
			message = "authentication rejected"
		}
		return Result{
			State:   Unauthenticated,
			Reason:  ReasonRejected,
			Message: message,
		}
	}

	return Result{State: Authenticated, Role: verdict.Role}
}
