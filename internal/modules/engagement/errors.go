package engagement

import "errors"

var (
	ErrUnknownTag    = errors.New("unknown engagement tag")
	ErrNotFound      = errors.New("ledger entry not found")
	ErrNotCastEntry  = errors.New("entry does not track a cast engagement")
	ErrPolicyMissing = errors.New("pricing policy required for a fee tag")
)
