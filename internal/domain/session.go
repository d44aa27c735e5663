package domain

// SessionKeySavedPDFPath is the session key holding the uploaded PDF reference.
const SessionKeySavedPDFPath = "saved_pdf_path"

// SessionStore is per-caller key/value state persisted across requests.
type SessionStore interface {
	Get(sessionID, key string) (string, bool, error)
	Set(sessionID, key, value string) error
	Delete(sessionID, key string) error
	Close() error
}
