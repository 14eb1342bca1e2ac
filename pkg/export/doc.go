// Package export renders a site's routes ahead of time and writes the
// result to a Sink.
//
// Each path becomes <path>/index.html. Paths whose render ends in a
// redirect produce no page; they are collected into a _redirects manifest
// with one "from to status" line per redirect, the format understood by
// most static hosts.
//
// Sinks are provided for a local directory, an S3 bucket and memory.
package export
