package taxes

import "errors"

// ErrUndefinedRate is returned by EffectiveRate when no combined rate was
// extracted and total income is zero.
var ErrUndefinedRate = errors.New("effective rate undefined for zero income")
