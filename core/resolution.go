package core

// ResolutionKind tags the outcome of a strategy resolver.
type ResolutionKind int

const (
	// ResolutionAuthenticated: input matched an existing account.
	ResolutionAuthenticated ResolutionKind = iota
	// ResolutionNeedsCreation: input is valid but no account exists yet;
	// Seed carries the account to create.
	ResolutionNeedsCreation
	// ResolutionRejected: input failed validation or comparison.
	ResolutionRejected
)

// RejectReason classifies a rejection so the engine can decide how much to
// reveal. Missing/malformed input is reported precisely; the
// identity-sensitive reasons (NotFound, BadSecret, StrategyMismatch) are
// collapsed into one generic error before reaching a caller.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectMissingField
	RejectInvalidFormat
	RejectStrategyMismatch
	RejectNotFound
	RejectBadSecret
)

// Resolution is the uniform resolver outcome. Exactly one of Account, Seed,
// or Reason is meaningful, keyed by Kind.
type Resolution struct {
	Kind    ResolutionKind
	Account *Account
	Seed    *Account
	Reason  RejectReason
	Detail  error // precise sentinel for the validation classes
}

func authenticated(account *Account) Resolution {
	return Resolution{Kind: ResolutionAuthenticated, Account: account}
}

func needsCreation(seed *Account) Resolution {
	return Resolution{Kind: ResolutionNeedsCreation, Seed: seed}
}

func rejected(reason RejectReason, detail error) Resolution {
	return Resolution{Kind: ResolutionRejected, Reason: reason, Detail: detail}
}
