// Package proxy holds the HTTP edge of the chat backend: request decoding,
// response bodies and the mapping from errors to status codes.
//
// The success body of POST /api/chat is
//
//	{"reply": "..."}
//
// A validation failure is a 400 with only an error field:
//
//	{"error": "userQuestion is required"}
//
// Any other failure is a 500 that carries the underlying error text:
//
//	{"error": "Internal Server Error", "message": "provider \"groq\" authentication failed: Invalid API Key"}
//
// Subpackages provide the chat handler (handlers) and the middleware chain
// (middleware). The server package wires them onto a chi router.
package proxy
