package i18n

// Common error instances for API responses
var (
	// General errors
	ErrInternalServer = NewErrorWithCode("Errors.General.InternalError", ErrorInternal)
	ErrBadRequest     = NewErrorWithCode("Errors.General.BadRequest", ErrorBadRequest)
	ErrNotFound       = NewErrorWithCode("Errors.General.NotFound", ErrorNotFound)
	ErrUnauthorized   = NewErrorWithCode("Errors.General.Unauthorized", ErrorUnauthorized)
	ErrForbidden      = NewErrorWithCode("Errors.General.Forbidden", ErrorForbidden)

	// Auth errors
	ErrInvalidCredentials = NewErrorWithCode("Errors.Auth.InvalidCredentials", ErrorUnauthorized)
	ErrUserDisabled       = NewErrorWithCode("Errors.Auth.UserDisabled", ErrorForbidden)
	ErrInvalidOldPassword = NewErrorWithCode("Errors.Auth.InvalidOldPassword", ErrorBadRequest)
	ErrAdminRequired      = NewErrorWithCode("Errors.Auth.AdminRequired", ErrorForbidden)

	// User errors
	ErrUserNotFound   = NewErrorWithCode("Errors.User.NotFound", ErrorNotFound)
	ErrUsernameExists = NewErrorWithCode("Errors.User.UsernameExists", ErrorConflict)

	// Role errors
	ErrRoleNotFound       = NewErrorWithCode("Errors.Role.NotFound", ErrorNotFound)
	ErrRoleCodeExists     = NewErrorWithCode("Errors.Role.CodeExists", ErrorConflict)
	ErrInvalidRoleCode    = NewErrorWithCode("Errors.Role.InvalidCode", ErrorBadRequest)
	ErrRoleCodeImmutable  = NewErrorWithCode("Errors.Role.CodeImmutable", ErrorConflict)
	ErrSystemRoleReadOnly = NewErrorWithCode("Errors.Role.SystemReadOnly", ErrorConflict)
	ErrRoleInUse          = NewErrorWithCode("Errors.Role.InUse", ErrorConflict)
	ErrUnknownMenuCode    = NewErrorWithCode("Errors.Role.UnknownMenuCode", ErrorBadRequest)

	// Equipment errors
	ErrEquipmentNotFound = NewErrorWithCode("Errors.Equipment.NotFound", ErrorNotFound)
	ErrPMPlanNotFound    = NewErrorWithCode("Errors.Equipment.PMPlanNotFound", ErrorNotFound)

	// Lot errors
	ErrLotNotFound     = NewErrorWithCode("Errors.Lot.NotFound", ErrorNotFound)
	ErrLotSerialExists = NewErrorWithCode("Errors.Lot.SerialExists", ErrorConflict)
	ErrLotNotInStock   = NewErrorWithCode("Errors.Lot.NotInStock", ErrorConflict)

	// OQC errors
	ErrOQCNotFound      = NewErrorWithCode("Errors.OQC.NotFound", ErrorNotFound)
	ErrOQCAlreadyJudged = NewErrorWithCode("Errors.OQC.AlreadyJudged", ErrorConflict)

	// Shipment errors
	ErrShipmentNotFound       = NewErrorWithCode("Errors.Shipment.NotFound", ErrorNotFound)
	ErrShipmentAlreadyShipped = NewErrorWithCode("Errors.Shipment.AlreadyShipped", ErrorConflict)

	// Scan session errors
	ErrScanSessionNotFound = NewErrorWithCode("Errors.Scan.SessionNotFound", ErrorNotFound)

	// Tab errors
	ErrTabStateUnavailable = NewErrorWithCode("Errors.Tab.StateUnavailable", ErrorInternal)
)
