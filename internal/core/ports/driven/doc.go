// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the content store backing the folder
// state machine, text extraction, the generation backend, the publish
// destination, notifications, and the run journal.
package driven
