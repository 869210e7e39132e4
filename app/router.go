package app

import (
	"fmt"
	"regexp"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/errors"
)

// isPath is the RegExp to ensure the routes make sense.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux.
type Router struct {
	routes map[string]ledger.Handler
}

var _ ledger.Registry = (*Router)(nil)
var _ ledger.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]ledger.Handler, 10),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h ledger.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is
// found, returns a noSuchPath Handler. This method never returns nil.
func (r *Router) handler(path string) ledger.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path.
func (r *Router) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (ledger.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return ledger.CheckResult{}, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return ledger.CheckResult{}, errors.Wrap(errors.ErrMsg, "no message")
	}
	return r.handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path.
func (r *Router) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (ledger.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return ledger.DeliverResult{}, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return ledger.DeliverResult{}, errors.Wrap(errors.ErrMsg, "no message")
	}
	return r.handler(msg.Path()).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments.
type notFoundHandler string

func (path notFoundHandler) Check(ledger.Context, ledger.KVStore, ledger.Tx) (ledger.CheckResult, error) {
	return ledger.CheckResult{}, errors.Wrapf(errors.ErrNotFound, "unrecognized operation %q", string(path))
}

func (path notFoundHandler) Deliver(ledger.Context, ledger.KVStore, ledger.Tx) (ledger.DeliverResult, error) {
	return ledger.DeliverResult{}, errors.Wrapf(errors.ErrNotFound, "unrecognized operation %q", string(path))
}
