package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	mashub "github.com/mashub/sdk-go"
)

func (a *app) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			if !client.Ping(cmd.Context()) {
				return errors.New("MasHub API is unreachable")
			}
			base, _ := client.BaseURL()
			return a.printer().print(map[string]any{"ok": true, "baseUrl": base}, keyValues("status", "ok", "url", base))
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration with the API key masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.clientConfig(cmd)
			if err != nil {
				return err
			}
			cfg = cfg.Redacted()
			return a.printer().print(cfg, keyValues(
				"apiKey", cfg.APIKey,
				"baseUrl", cfg.BaseURL,
				"environment", cfg.Environment,
				"timeout", cfg.Timeout,
				"maxRetries", cfg.MaxRetries,
				"retryPolicy", cfg.RetryPolicy,
				"debug", cfg.Debug,
			))
		},
	}
}

func (a *app) projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Smart contract projects",
	}

	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			res, err := client.Contracts.ListProjects(cmd.Context(), page)
			if err != nil {
				return err
			}
			return a.printer().print(res, func(t *uitable.Table) {
				t.AddRow("SLUG", "NAME", "VERSION", "LAST DEPLOYED")
				for _, p := range res.Result {
					t.AddRow(p.Slug, p.ProjectName, p.Version, p.LastDeployedAt)
				}
			})
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")

	get := &cobra.Command{
		Use:   "get <slug>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			p, err := client.Contracts.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer().print(p, keyValues(
				"id", p.ID,
				"slug", p.Slug,
				"name", p.ProjectName,
				"description", p.Description,
				"version", p.Version,
				"created", p.CreatedAt,
				"updated", p.UpdatedAt,
			))
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func (a *app) deployedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deployed",
		Short: "Deployed contracts",
	}

	var filter mashub.DeployedFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List deployed contracts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			res, err := client.Contracts.ListDeployed(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return a.printer().print(res, func(t *uitable.Table) {
				t.AddRow("ADDRESS", "CONTRACT", "PROJECT", "VERSION", "DEPLOYED")
				for _, c := range res.Result {
					t.AddRow(c.ContractAddress, c.ContractName, c.ProjectName, c.Version, c.DeployedAt)
				}
			})
		},
	}
	list.Flags().StringVar(&filter.Version, "version", "", "filter by version")
	list.Flags().StringVar(&filter.DeploymentID, "deployment-id", "", "filter by deployment ID")

	cmd.AddCommand(list)
	return cmd
}

func (a *app) tokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Tokenized assets",
	}

	var assetType, status string
	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			res, err := client.Tokens.List(cmd.Context(), mashub.TokenFilter{
				AssetType: mashub.AssetType(assetType),
				Status:    mashub.TokenStatus(status),
				Page:      page,
			})
			if err != nil {
				return err
			}
			return a.printer().print(res, func(t *uitable.Table) {
				t.AddRow("ID", "NAME", "TYPE", "QUANTITY", "STATUS")
				for _, tok := range res.Result {
					t.AddRow(tok.ID, tok.Metadata.Name, tok.AssetType, tok.Metadata.Quantity, tok.Status)
				}
			})
		},
	}
	list.Flags().StringVar(&assetType, "asset-type", "", "PHYSICAL, DIGITAL or FINANCIAL")
	list.Flags().StringVar(&status, "status", "", "pending, confirmed or failed")
	list.Flags().IntVar(&page, "page", 0, "page number")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			tok, err := client.Tokens.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer().print(tok, keyValues(
				"id", tok.ID,
				"name", tok.Metadata.Name,
				"type", tok.AssetType,
				"quantity", tok.Metadata.Quantity,
				"status", tok.Status,
				"tx", tok.TxHash,
			))
		},
	}

	var waitTimeout, pollInterval time.Duration
	wait := &cobra.Command{
		Use:   "wait <id>",
		Short: "Wait until a token is confirmed or failed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			tok, err := client.Tokens.WaitForConfirmation(cmd.Context(), args[0],
				mashub.WithWaitTimeout(waitTimeout),
				mashub.WithPollInterval(pollInterval),
			)
			if err != nil {
				return err
			}
			if err := a.printer().print(tok, keyValues(
				"id", tok.ID,
				"status", tok.Status,
				"tx", tok.TxHash,
			)); err != nil {
				return err
			}
			if tok.Status == mashub.TokenFailed {
				return fmt.Errorf("token %s failed", tok.ID)
			}
			return nil
		},
	}
	wait.Flags().DurationVar(&waitTimeout, "wait-timeout", 5*time.Minute, "maximum time to wait")
	wait.Flags().DurationVar(&pollInterval, "poll-interval", 2*time.Second, "initial delay between polls")

	cmd.AddCommand(list, get, wait)
	return cmd
}

func (a *app) kycCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kyc",
		Short: "KYC verification",
	}

	status := &cobra.Command{
		Use:   "status <wallet>",
		Short: "Show the KYC status of a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			res, err := client.Compliance.GetKYCStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer().print(res, keyValues(
				"wallet", res.WalletAddress,
				"verified", res.Verified,
				"risk", res.RiskLevel,
				"score", res.RiskScore,
				"verification", res.VerificationID,
			))
		},
	}

	cmd.AddCommand(status)
	return cmd
}

func (a *app) auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit logs",
	}

	var filter mashub.AuditFilter
	export := &cobra.Command{
		Use:   "export",
		Short: "Export audit logs as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			res, err := client.Compliance.ExportAuditLogs(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return a.printer().print(res, nil)
		},
	}
	export.Flags().StringVar(&filter.StartDate, "start", "", "start date")
	export.Flags().StringVar(&filter.EndDate, "end", "", "end date")
	export.Flags().StringVar(&filter.Action, "action", "", "filter by action")
	export.Flags().StringVar(&filter.UserID, "user", "", "filter by user ID")

	cmd.AddCommand(export)
	return cmd
}

func (a *app) analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Platform analytics",
	}

	var timeframe string
	overview := &cobra.Command{
		Use:   "overview",
		Short: "Show every metric over a timeframe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			ov, err := client.Analytics.Overview(cmd.Context(), mashub.Timeframe(timeframe))
			if err != nil {
				return err
			}
			return a.printer().print(ov, func(t *uitable.Table) {
				t.AddRow("METRIC", "VALUE", "CHANGE")
				for _, r := range []struct {
					name string
					res  mashub.AnalyticsResult
				}{
					{"transactions", ov.Transactions},
					{"contracts", ov.Contracts},
					{"tokens", ov.Tokens},
					{"users", ov.Users},
				} {
					t.AddRow(r.name, r.res.Value, r.res.Change)
				}
			})
		},
	}
	overview.Flags().StringVar(&timeframe, "timeframe", string(mashub.Timeframe24h), "1h, 24h, 7d, 30d or 90d")

	cmd.AddCommand(overview)
	return cmd
}
