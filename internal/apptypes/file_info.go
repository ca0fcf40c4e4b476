// internal/apptypes/file_info.go
package apptypes

// FileInfo describes a stored upload.
type FileInfo struct {
	URL      string `json:"url"`      // publicly reachable URL
	Path     string `json:"path"`     // local path or object key
	Size     int64  `json:"size"`     // bytes
	MimeType string `json:"mimeType"` //
	FileName string `json:"fileName"` // original file name
}
