package cnst

const (
	// XLang is the header/context key carrying the client language preference
	XLang = "X-Lang"

	// LangEN is the default language
	LangEN = "en"
	// LangKO is the factory-floor language
	LangKO = "ko"
)

const (
	// AdminRoleCode is the reserved administrator role. It is implicitly
	// granted every menu code and its permission set is never editable.
	AdminRoleCode = "ADMIN"
)
