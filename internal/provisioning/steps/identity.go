package steps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wallettrack/deployctl/internal/provisioning"
)

// IdentityStep ensures the runtime service identity exists.
type IdentityStep struct {
	cloud CloudClient
}

// NewIdentityStep creates the service identity step.
func NewIdentityStep(cloud CloudClient) *IdentityStep {
	return &IdentityStep{cloud: cloud}
}

// Name implements provisioning.Step.
func (s *IdentityStep) Name() string { return "service-identity" }

// Check implements provisioning.Step.
func (s *IdentityStep) Check(ctx *provisioning.Context) (bool, string, error) {
	email := ctx.Config.Identity.Email(ctx.Config.Project)
	exists, err := s.cloud.ServiceIdentityExists(ctx, email)
	if err != nil {
		return false, "", err
	}
	if exists {
		provisioning.LogResourceExists(ctx.Observer, s.Name(), "service account", email)
		return true, email, nil
	}
	return false, email + " absent", nil
}

// Remediate implements provisioning.Step.
func (s *IdentityStep) Remediate(ctx *provisioning.Context) error {
	name := ctx.Config.Identity.Name
	provisioning.LogResourceCreating(ctx.Observer, s.Name(), "service account", name)
	if err := s.cloud.CreateServiceIdentity(ctx, name, ctx.Config.Service.Name+" runtime identity"); err != nil {
		return err
	}
	provisioning.LogResourceCreated(ctx.Observer, s.Name(), "service account", name)
	return nil
}

// Verify implements provisioning.Step.
func (s *IdentityStep) Verify(ctx *provisioning.Context) error {
	email := ctx.Config.Identity.Email(ctx.Config.Project)
	exists, err := s.cloud.ServiceIdentityExists(ctx, email)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("service account %s still absent after creation", email)
	}
	return nil
}

// RoleBindingsStep ensures the service identity holds every required role.
// Remediation computes the set difference between required and currently
// bound roles and binds only the missing subset; roles already present are
// never re-bound.
type RoleBindingsStep struct {
	cloud CloudClient

	missing []string
}

// NewRoleBindingsStep creates the role bindings step.
func NewRoleBindingsStep(cloud CloudClient) *RoleBindingsStep {
	return &RoleBindingsStep{cloud: cloud}
}

// Name implements provisioning.Step.
func (s *RoleBindingsStep) Name() string { return "role-bindings" }

// member returns the IAM member string for the configured identity.
func (s *RoleBindingsStep) member(ctx *provisioning.Context) string {
	return "serviceAccount:" + ctx.Config.Identity.Email(ctx.Config.Project)
}

// Check implements provisioning.Step.
func (s *RoleBindingsStep) Check(ctx *provisioning.Context) (bool, string, error) {
	member := s.member(ctx)
	bound, err := s.cloud.RoleBindings(ctx, member)
	if err != nil {
		return false, "", err
	}

	s.missing = missingRoles(ctx.Config.Identity.Roles, bound)
	if len(s.missing) == 0 {
		return true, fmt.Sprintf("all %d roles bound", len(ctx.Config.Identity.Roles)), nil
	}
	return false, "missing roles: " + strings.Join(s.missing, ", "), nil
}

// Remediate implements provisioning.Step.
func (s *RoleBindingsStep) Remediate(ctx *provisioning.Context) error {
	member := s.member(ctx)
	for _, role := range s.missing {
		provisioning.LogResourceCreating(ctx.Observer, s.Name(), "role binding", role)
		if err := s.cloud.AddRoleBinding(ctx, member, role); err != nil {
			return err
		}
		provisioning.LogResourceCreated(ctx.Observer, s.Name(), "role binding", role)
	}
	return nil
}

// Verify implements provisioning.Step.
func (s *RoleBindingsStep) Verify(ctx *provisioning.Context) error {
	member := s.member(ctx)
	bound, err := s.cloud.RoleBindings(ctx, member)
	if err != nil {
		return err
	}
	if still := missingRoles(ctx.Config.Identity.Roles, bound); len(still) > 0 {
		return fmt.Errorf("roles still missing after binding: %s", strings.Join(still, ", "))
	}
	return nil
}

// missingRoles returns required \ bound, sorted for stable output.
func missingRoles(required []string, bound map[string]bool) []string {
	var missing []string
	for _, role := range required {
		if !bound[role] {
			missing = append(missing, role)
		}
	}
	sort.Strings(missing)
	return missing
}
