// Package types defines the JSON bodies exchanged on the /api/ endpoints.
//
// Field names follow the browser client (camelCase). Every error answer is
// {"error": "<message>"}, except the /api/ not-found answer which also
// lists the path and the available endpoints.
package types
