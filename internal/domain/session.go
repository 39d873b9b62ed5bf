package domain

// View is the screen the session currently shows.
type View string

const (
	ViewHome         View = "home"
	ViewCourseDetail View = "course_detail"
	ViewChat         View = "chat"
)

// Status is the session's current operation status. While Processing or
// FileProcessing, new send/upload triggers are ignored at the boundary.
type Status string

const (
	StatusIdle           Status = "idle"
	StatusFileProcessing Status = "file_processing"
	StatusProcessing     Status = "processing"
	StatusError          Status = "error"
)

// Session is the controller-owned view state. It is re-derived from user
// input and gateway results and never persisted.
type Session struct {
	View         View   `json:"view"`
	CourseID     string `json:"course_id,omitempty"`
	ChapterFocus string `json:"chapter_focus,omitempty"`
	Status       Status `json:"status"`
}
