// Package steps contains the concrete provisioning steps: tooling and
// project preflight, API enablement, the connection secret, the service
// identity and its role bindings, the warehouse table, the three
// build/deploy strategy segments, and the post-deploy health probe.
//
// Every step follows the same check/remediate/verify contract; Plan
// assembles the ordered list for a run from the configured deployment
// strategy.
package steps
