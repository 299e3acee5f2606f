// Package config resolves ViFi's base directory and the path of the log
// file kept in it — the only ambient state a local
// manifest-reconciliation tool needs; the logger itself is set up by the
// command. Unlike the teacher's config.C, there is no encryption key, no
// S3 bucket, no FUSE mount path and no 9P listener address: none of
// those concepts exist outside a networked, content-addressed file
// system (see DESIGN.md for the accounting of what was dropped and why).
//
// ViFi commands append their log lines to a file within a dedicated base
// directory, resolved once at startup via Load.
package config
