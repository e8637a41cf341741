package entity

// Response shapes of the Apps Script web-app endpoint. The script reports
// application-level failure via success=false with an error string, so HTTP
// 200 alone does not mean the call worked.

// MasterResponse is returned by ?sheet=<name>&action=fetch.
type MasterResponse struct {
	Success bool       `json:"success"`
	Data    [][]string `json:"data"`
	Error   string     `json:"error,omitempty"`
}

// SerialsResponse is returned by ?action=getNextSerials.
type SerialsResponse struct {
	Success     bool           `json:"success"`
	NextSerials SerialCounters `json:"nextSerials"`
	Error       string         `json:"error,omitempty"`
}

// UploadResponse is returned by the uploadImage action.
type UploadResponse struct {
	Success bool   `json:"success"`
	FileURL string `json:"fileUrl"`
	Error   string `json:"error,omitempty"`
}

// ScriptResponse is the minimal envelope for actions that return no payload
// (insert, updateSerials).
type ScriptResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
