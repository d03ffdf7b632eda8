package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/wallettrack/deployctl/internal/config"
	"github.com/wallettrack/deployctl/internal/provisioning/steps"
	"github.com/wallettrack/deployctl/internal/ui"
)

// lookPath is swappable for tests.
var lookPath = exec.LookPath

// Doctor runs every checklist check in read-only mode and prints what a
// deploy would find. Nothing is mutated.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	deps, err := newDeps(ctx, cfg)
	if err != nil {
		return err
	}

	report := buildDoctorReport(ctx, cfg, deps)

	if jsonOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(ui.RenderDoctorReport(report, ui.Interactive()))
	return nil
}

// buildDoctorReport collects the read-only diagnostic checks.
func buildDoctorReport(ctx context.Context, cfg *config.Config, deps steps.Deps) *ui.DoctorReport {
	report := &ui.DoctorReport{Project: cfg.Project, Service: cfg.Service.Name}
	add := func(section, name string, ok bool, detail string) {
		report.Checks = append(report.Checks, ui.DoctorCheck{
			Section: section, Name: name, OK: ok, Detail: detail,
		})
	}

	// Tooling
	tools := []string{"gcloud", "bq"}
	if cfg.Strategy == config.StrategyLocalBuild {
		tools = append(tools, "docker")
	}
	for _, tool := range tools {
		_, err := lookPath(tool)
		add("Tooling", tool, err == nil, "")
	}

	account, err := deps.Cloud.ActiveAccount(ctx)
	switch {
	case err != nil:
		add("Tooling", "authentication", false, err.Error())
	case account == "":
		add("Tooling", "authentication", false, "no active account; run 'gcloud auth login'")
	default:
		add("Tooling", "authentication", true, account)
	}

	// Project
	if err := deps.Cloud.ProjectAccessible(ctx); err != nil {
		add("Project", cfg.Project, false, err.Error())
		return report
	}
	add("Project", cfg.Project, true, "")

	// APIs
	enabled, err := deps.Cloud.ListEnabledAPIs(ctx)
	if err != nil {
		add("APIs", "listing", false, err.Error())
	} else {
		for _, api := range cfg.APIs {
			add("APIs", api, enabled[api], "")
		}
	}

	// Resources
	secretExists, err := deps.Secrets.Exists(ctx, cfg.Secret.Name)
	add("Resources", "secret "+cfg.Secret.Name, err == nil && secretExists, errDetail(err, secretExists, "absent"))

	email := cfg.Identity.Email(cfg.Project)
	identityExists, err := deps.Cloud.ServiceIdentityExists(ctx, email)
	add("Resources", "identity "+cfg.Identity.Name, err == nil && identityExists, errDetail(err, identityExists, "absent"))

	if identityExists {
		bound, err := deps.Cloud.RoleBindings(ctx, "serviceAccount:"+email)
		if err != nil {
			add("Resources", "role bindings", false, err.Error())
		} else {
			missing := 0
			for _, role := range cfg.Identity.Roles {
				if !bound[role] {
					missing++
				}
			}
			add("Resources", "role bindings", missing == 0,
				fmt.Sprintf("%d/%d bound", len(cfg.Identity.Roles)-missing, len(cfg.Identity.Roles)))
		}
	}

	ref := cfg.Warehouse.TableRef(cfg.Project)
	tableExists, err := deps.Cloud.TableExists(ctx, ref)
	add("Resources", "table "+cfg.Warehouse.Table, err == nil && tableExists, errDetail(err, tableExists, "absent"))

	// Service
	url, err := deps.Cloud.DescribeService(ctx, cfg.Service.Name, cfg.Region)
	switch {
	case err != nil:
		add("Service", cfg.Service.Name, false, err.Error())
	case url == "":
		add("Service", cfg.Service.Name, false, "not deployed")
	default:
		add("Service", cfg.Service.Name, true, url)
	}

	return report
}

// errDetail picks the detail string for an existence check.
func errDetail(err error, exists bool, whenAbsent string) string {
	if err != nil {
		return err.Error()
	}
	if !exists {
		return whenAbsent
	}
	return ""
}
