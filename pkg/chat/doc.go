// Package chat turns an incoming AirCause question into the prompt pair sent
// to the completion provider.
//
// A request is classified first-match-wins:
//
//  1. Greeting: the question starts with hi, hello, hey, hii or hy
//     (case-insensitive, whole word). District data is ignored.
//  2. District: districtData is present.
//  3. Generic: everything else.
//
// District contributors keep the order in which they appear in the JSON
// body, since the rendered "name: value%" list is shown to the model as-is.
package chat
