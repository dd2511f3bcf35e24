package store

// Keys of the local persistent store, one namespace per concern.
const (
	KeySavePrimary      = "save.primary"
	KeySaveLastGood     = "save.last_good"
	KeySyncWatermark    = "sync.watermark"
	KeyAutoSyncEnabled  = "sync.auto_enabled"
	KeyAuthAccessToken  = "auth.access_token"
	KeyAuthCSRFToken    = "auth.csrf_token"
	KeyAuthRefreshToken = "auth.refresh_token"
	KeyAuthEmail        = "auth.email"
)
