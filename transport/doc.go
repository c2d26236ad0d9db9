// Package transport describes the services an application exposes
// and holds what every protocol needs to serve them: the request and
// response codec and the mapping from errors to status codes. Each
// protocol lives in its own frontend so that adding a protocol does
// not touch the applications.
package transport
