package cnst

import "errors"

// ErrNotHydrated is returned when a persisted store is read before hydration
var ErrNotHydrated = errors.New("session store not hydrated")
