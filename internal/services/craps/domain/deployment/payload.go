package deployment

// ConfigPayload captures the payload for deployment.initialize and
// deployment.update commands and their events.
type ConfigPayload struct {
	OracleProgram    string `json:"oracle_program"`
	OracleSigner     string `json:"oracle_signer"`
	Treasury         string `json:"treasury"`
	TaxBps           uint32 `json:"tax_bps"`
	JoinTimeoutTicks uint64 `json:"join_timeout_ticks"`
	RollTimeoutTicks uint64 `json:"roll_timeout_ticks"`
	MaxFaders        uint8  `json:"max_faders"`
	MaxRollRetries   uint32 `json:"max_roll_retries"`
}

// InitializedPayload captures the payload for deployment.initialized events.
type InitializedPayload struct {
	Authority string        `json:"authority"`
	Config    ConfigPayload `json:"config"`
}

// FrozenSetPayload captures the payload for deployment.set_frozen commands and
// deployment.frozen_set events.
type FrozenSetPayload struct {
	Frozen bool `json:"frozen"`
}

// FundAccountPayload captures the payload for deployment.fund_account commands
// and deployment.account_funded events.
type FundAccountPayload struct {
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
}

func (p ConfigPayload) apply(cfg Config) Config {
	cfg.OracleProgram = p.OracleProgram
	cfg.OracleSigner = p.OracleSigner
	cfg.Treasury = p.Treasury
	cfg.TaxBps = p.TaxBps
	cfg.JoinTimeoutTicks = p.JoinTimeoutTicks
	cfg.RollTimeoutTicks = p.RollTimeoutTicks
	cfg.MaxFaders = p.MaxFaders
	cfg.MaxRollRetries = p.MaxRollRetries
	return cfg
}

func (p ConfigPayload) normalized() ConfigPayload {
	p.OracleProgram = trim(p.OracleProgram)
	p.OracleSigner = trim(p.OracleSigner)
	p.Treasury = trim(p.Treasury)
	return p
}
