package model

// UploadTicket is a short-lived authorization to write one file into a
// single folder of the storage provider.
type UploadTicket struct {
	CloudName string `json:"cloud_name"`
	APIKey    string `json:"api_key"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	Folder    string `json:"folder"`
}
