// Package server hosts the Fiber HTTP service that fronts the portal shell.
// Every non-diagnostics request goes through the asset interception handler
// (cache-first with network fallback); the /-/ namespace is reserved for the
// collaborator endpoints the UI layer calls (status, gating, settings, sync).
// Keep exports narrow and accept explicit dependencies.
package server
