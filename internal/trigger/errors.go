package trigger

import "errors"

var ErrUnknownKind = errors.New("no handler registered for trigger kind")
