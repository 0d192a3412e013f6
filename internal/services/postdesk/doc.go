// Package postdesk serves the operator pages for the content workflow.
//
// Handlers translate browser actions into store reads and writes and
// generation webhook calls, then render templ pages or HTMX fragments. All
// post state lives in the external store; the handler keeps only the shared
// list snapshot.
package postdesk
