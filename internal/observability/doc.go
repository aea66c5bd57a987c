// Package observability provides event logging, metrics calculation, and
// alerting for InboxPilot. It uses structured JSON Lines (JSONL) for event
// persistence and derives triage metrics on-demand from the event log.
package observability
