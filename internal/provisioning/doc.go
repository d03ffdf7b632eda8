// Package provisioning implements the deployment orchestration engine.
//
// A run executes an ordered list of idempotent steps. Each step carries a
// check (is the resource already there?), a remediation (create it) and a
// verification (did remediation actually work?). Remediation only runs when
// the check reports the resource absent, and the run aborts on the first
// unrecoverable failure because later steps depend on earlier resources.
//
// Concrete steps live in the steps/ subpackage; this package contains the
// runner, the shared context and state, the run result, and the observer
// used for structured progress output.
package provisioning
