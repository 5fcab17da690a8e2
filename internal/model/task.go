package model

// Task is a single todo entry as persisted in the store file.
// Field order here is the field order on disk.
type Task struct {
	ID   uint32 `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}
