package mashub

import (
	"context"
	"encoding/json"
	"net/url"
)

// ComplianceService runs KYC verification and manages the audit log.
type ComplianceService struct {
	client *Client
}

// PerformKYC submits a wallet for verification.
func (s *ComplianceService) PerformKYC(ctx context.Context, req KYCRequest) (*KYCResult, error) {
	return post[*KYCResult](ctx, s.client, "/compliance/kyc", req)
}

// GetKYCStatus returns the latest verification of a wallet.
func (s *ComplianceService) GetKYCStatus(ctx context.Context, wallet string) (*KYCResult, error) {
	return call[*KYCResult](ctx, s.client, "/compliance/kyc/"+pathSegment(wallet))
}

// LogAuditEvent records an audit event.
func (s *ComplianceService) LogAuditEvent(ctx context.Context, event AuditEvent) (json.RawMessage, error) {
	return post[json.RawMessage](ctx, s.client, "/audit/log", event)
}

// ExportAuditLogs exports audit logs matching filter.
func (s *ComplianceService) ExportAuditLogs(ctx context.Context, filter AuditFilter) (json.RawMessage, error) {
	q := url.Values{}
	addIf(q, "start_date", filter.StartDate)
	addIf(q, "end_date", filter.EndDate)
	addIf(q, "action", filter.Action)
	addIf(q, "user_id", filter.UserID)
	return call[json.RawMessage](ctx, s.client, withQuery("/audit/export", q))
}
