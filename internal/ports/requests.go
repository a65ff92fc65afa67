package ports

// AddTaskRequest is the payload for adding an ad-hoc task to a course.
type AddTaskRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// CreateCourseRequest is the payload for registering a new course.
type CreateCourseRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	ExamDate string `json:"examDate" validate:"required"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
	NotesURL string `json:"notesUrl" validate:"omitempty,url"`
	ExamsURL string `json:"examsUrl" validate:"omitempty,url"`
}
