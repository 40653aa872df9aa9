// Package audit carries the structured audit event model and asynchronous
// dispatching used by the credential service. Flows emit one event per
// outcome; a buffered dispatcher forwards them to a caller-provided sink so
// slow sinks never sit on the request path.
package audit
