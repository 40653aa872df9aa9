// Package middleware adapts the credential service to net/http. Guard
// authenticates bearer tokens and stores the resolved user on the request
// context; WriteError flattens service errors into the status codes and
// messages a JSON API should expose.
package middleware
