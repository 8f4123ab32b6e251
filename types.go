package mashub

import "encoding/json"

// Page is one page of a list endpoint. Result and Pagination are never nil.
type Page[T any] struct {
	Result     []T
	Pagination map[string]any
}

// listBody is the wire shape of list endpoints.
type listBody[T any] struct {
	Result     []T            `json:"result"`
	Pagination map[string]any `json:"pagination"`
}

func (b listBody[T]) page() *Page[T] {
	p := &Page[T]{Result: b.Result, Pagination: b.Pagination}
	if p.Result == nil {
		p.Result = []T{}
	}
	if p.Pagination == nil {
		p.Pagination = map[string]any{}
	}
	return p
}

// Project is a smart contract project.
type Project struct {
	ID             string `json:"id"`
	ProjectName    string `json:"project_name"`
	Slug           string `json:"slug"`
	Description    string `json:"description,omitempty"`
	Version        string `json:"version,omitempty"`
	LastDeployedAt string `json:"last_deployed_at,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// CreateProjectRequest creates a project.
type CreateProjectRequest struct {
	ProjectName string `json:"project_name"`
	Description string `json:"description,omitempty"`
}

// VersionStatus is the compile state of a contract version.
type VersionStatus string

// Version statuses.
const (
	VersionDraft     VersionStatus = "draft"
	VersionCompiling VersionStatus = "compiling"
	VersionCompiled  VersionStatus = "compiled"
	VersionDeployed  VersionStatus = "deployed"
	VersionFailed    VersionStatus = "failed"
)

// CompilerSettings configures contract compilation.
type CompilerSettings struct {
	Solidity SoliditySettings `json:"solidity"`
}

// SoliditySettings selects the solc version and its options.
type SoliditySettings struct {
	Version  string           `json:"version"`
	Settings *SolidityOptions `json:"settings,omitempty"`
}

// SolidityOptions are solc settings.
type SolidityOptions struct {
	Optimizer *Optimizer `json:"optimizer,omitempty"`
}

// Optimizer configures the solc optimizer.
type Optimizer struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs"`
}

// ContractFile is an uploaded source file reference.
type ContractFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Artifact is a compiled contract.
type Artifact struct {
	ID           int             `json:"id"`
	ContractName string          `json:"contract_name"`
	ContractABI  json.RawMessage `json:"contract_abi"`
	Bytecode     string          `json:"bytecode"`
	SourceCode   string          `json:"source_code"`
}

// Version is a compiled or compiling version of a project.
type Version struct {
	ID               string           `json:"id"`
	Status           VersionStatus    `json:"status"`
	CompileType      string           `json:"compile_type"`
	Version          string           `json:"version"`
	Slug             string           `json:"slug"`
	CompilerSettings CompilerSettings `json:"compiler_settings"`
	Packages         []string         `json:"packages"`
	ContractFiles    []ContractFile   `json:"contract_files,omitempty"`
	Artifacts        []Artifact       `json:"artifacts,omitempty"`
	CreatedAt        string           `json:"created_at"`
	UpdatedAt        string           `json:"updated_at"`
}

// SourceFile is a contract source uploaded with a new version.
type SourceFile struct {
	Filename string
	Content  []byte
}

// CreateVersionRequest creates a project version. It is sent as a
// multipart form.
type CreateVersionRequest struct {
	Version          string
	CompilerSettings CompilerSettings
	ContractFiles    []SourceFile
	Packages         []string
}

// WalletType selects who signs a transaction.
type WalletType string

// Wallet types.
const (
	WalletOrganisation WalletType = "organisation"
	WalletEndUser      WalletType = "end_user"
	WalletNonCustodial WalletType = "non_custodial"
)

// WalletOptions identifies the signing wallet.
type WalletOptions struct {
	Type    WalletType `json:"type"`
	Address string     `json:"address"`
}

// DeploymentParam deploys one artifact.
type DeploymentParam struct {
	ArtifactID int            `json:"sc_artifact_id"`
	Params     map[string]any `json:"params,omitempty"`
	Order      int            `json:"order"`
	SignedTrx  string         `json:"signed_trx,omitempty"`
}

// DeploymentRequest deploys a version.
type DeploymentRequest struct {
	WalletOptions    WalletOptions     `json:"wallet_options"`
	DeploymentParams []DeploymentParam `json:"deployment_params"`
	CallbackURL      string            `json:"callback_url,omitempty"`
}

// DeployedContract is a contract on chain.
type DeployedContract struct {
	ContractAddress  string            `json:"contract_address"`
	DeploymentParams []json.RawMessage `json:"deployment_params"`
	ContractName     string            `json:"contract_name"`
	ProjectName      string            `json:"project_name"`
	Version          string            `json:"version"`
	DeployedAt       string            `json:"deployed_at"`
}

// DeployedFilter narrows ListDeployed.
type DeployedFilter struct {
	Version      string
	DeploymentID string
}

// CallRequest invokes a read-only contract method.
type CallRequest struct {
	From        string          `json:"from"`
	MethodName  string          `json:"method_name"`
	ContractABI json.RawMessage `json:"contract_abi,omitempty"`
	Params      map[string]any  `json:"params,omitempty"`
}

// ExecuteRequest invokes a state-changing contract method.
type ExecuteRequest struct {
	WalletOptions WalletOptions   `json:"wallet_options"`
	MethodName    string          `json:"method_name"`
	ContractABI   json.RawMessage `json:"contract_abi,omitempty"`
	Params        map[string]any  `json:"params,omitempty"`
	SignedTrx     string          `json:"signed_trx,omitempty"`
	CallbackURL   string          `json:"callback_url,omitempty"`
}

// AssetType classifies a tokenized asset.
type AssetType string

// Asset types.
const (
	AssetPhysical  AssetType = "PHYSICAL"
	AssetDigital   AssetType = "DIGITAL"
	AssetFinancial AssetType = "FINANCIAL"
)

// Attribute is a token trait. Value is a string or a number.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// TokenMetadata describes a tokenized asset.
type TokenMetadata struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Image          string         `json:"image,omitempty"`
	Attributes     []Attribute    `json:"attributes,omitempty"`
	Quantity       float64        `json:"quantity"`
	CustomMetadata map[string]any `json:"custom_metadata,omitempty"`
}

// TokenizationRequest creates a token.
type TokenizationRequest struct {
	AssetType AssetType     `json:"asset_type"`
	Metadata  TokenMetadata `json:"metadata"`
	TenantID  string        `json:"tenant_id,omitempty"`
}

// TokenStatus is the on-chain state of a token.
type TokenStatus string

// Token statuses.
const (
	TokenPending   TokenStatus = "pending"
	TokenConfirmed TokenStatus = "confirmed"
	TokenFailed    TokenStatus = "failed"
)

// Token is a tokenized asset.
type Token struct {
	ID        string        `json:"id"`
	TenantID  string        `json:"tenant_id"`
	AssetType AssetType     `json:"asset_type"`
	Metadata  TokenMetadata `json:"metadata"`
	TxHash    string        `json:"tx_hash"`
	Status    TokenStatus   `json:"status"`
	CreatedAt string        `json:"created_at"`
}

// TokenFilter narrows List. Zero fields are omitted.
type TokenFilter struct {
	AssetType AssetType
	Status    TokenStatus
	Page      int
}

// TransferRequest moves token units.
type TransferRequest struct {
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Memo   string  `json:"memo,omitempty"`
}

// DocumentType is a KYC identity document.
type DocumentType string

// Document types.
const (
	DocumentPassport       DocumentType = "passport"
	DocumentDriversLicense DocumentType = "drivers_license"
	DocumentNationalID     DocumentType = "national_id"
)

// KYCRequest submits a wallet for verification.
type KYCRequest struct {
	WalletAddress  string       `json:"wallet_address"`
	UserID         string       `json:"user_id,omitempty"`
	DocumentType   DocumentType `json:"document_type,omitempty"`
	DocumentNumber string       `json:"document_number,omitempty"`
	FullName       string       `json:"full_name,omitempty"`
	DateOfBirth    string       `json:"date_of_birth,omitempty"`
}

// RiskLevel grades a KYC result.
type RiskLevel string

// Risk levels.
const (
	RiskLow    RiskLevel = "low_risk"
	RiskMedium RiskLevel = "medium_risk"
	RiskHigh   RiskLevel = "high_risk"
)

// KYCResult is the outcome of a verification.
type KYCResult struct {
	WalletAddress  string    `json:"wallet_address"`
	RiskScore      float64   `json:"risk_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Verified       bool      `json:"verified"`
	VerificationID string    `json:"verification_id"`
	CreatedAt      string    `json:"created_at"`
}

// AuditEvent is written to the audit log.
type AuditEvent struct {
	Action    string         `json:"action"`
	UserID    string         `json:"user_id,omitempty"`
	Details   map[string]any `json:"details"`
	IPAddress string         `json:"ip_address,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
}

// AuditFilter narrows ExportAuditLogs. Zero fields are omitted.
type AuditFilter struct {
	StartDate string
	EndDate   string
	Action    string
	UserID    string
}

// Metric is an analytics series.
type Metric string

// Metrics.
const (
	MetricTransactions Metric = "transactions"
	MetricContracts    Metric = "contracts"
	MetricTokens       Metric = "tokens"
	MetricUsers        Metric = "users"
)

// Timeframe is an analytics window.
type Timeframe string

// Timeframes.
const (
	Timeframe1h  Timeframe = "1h"
	Timeframe24h Timeframe = "24h"
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
	Timeframe90d Timeframe = "90d"
)

// AnalyticsQuery selects a metric over a timeframe.
type AnalyticsQuery struct {
	Metric    Metric         `json:"metric"`
	Timeframe Timeframe      `json:"timeframe"`
	Filters   map[string]any `json:"filters,omitempty"`
}

// DataPoint is one sample of a series.
type DataPoint struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// AnalyticsResult is a metric value with its trend.
type AnalyticsResult struct {
	Metric     string      `json:"metric"`
	Value      float64     `json:"value"`
	Change     float64     `json:"change"`
	Timeframe  string      `json:"timeframe"`
	DataPoints []DataPoint `json:"data_points"`
}

// Overview summarizes every metric over one timeframe.
type Overview struct {
	Transactions AnalyticsResult `json:"transactions"`
	Contracts    AnalyticsResult `json:"contracts"`
	Tokens       AnalyticsResult `json:"tokens"`
	Users        AnalyticsResult `json:"users"`
}

// WebhookEvent is a notification delivered to a callback URL.
type WebhookEvent struct {
	ID              string         `json:"id"`
	EventType       string         `json:"event_type"`
	TransactionHash string         `json:"transaction_hash,omitempty"`
	ContractAddress string         `json:"contract_address,omitempty"`
	Payload         map[string]any `json:"payload"`
	Timestamp       string         `json:"timestamp"`
}
