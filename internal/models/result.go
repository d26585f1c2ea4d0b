package models

type PromptRequest struct {
	Text           string         `json:"text"`
	TargetRole     string         `json:"targetRole,omitempty"`
	IsChat         bool           `json:"isChat,omitempty"`
	JobDescription string         `json:"jobDescription,omitempty"`
	History        []HistoryEntry `json:"history,omitempty"`
}

type UploadResponse struct {
	AnalysisID  string    `json:"analysisId"`
	RedirectURL string    `json:"redirectUrl"`
	Analysis    *Analysis `json:"analysis"`
	TextLength  *int      `json:"textLength,omitempty"`
	FileType    string    `json:"fileType,omitempty"`
	FileName    string    `json:"fileName,omitempty"`
}

type ResultResponse struct {
	Result *Analysis `json:"result"`
}

type ChatReply struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

type GenerateResponse struct {
	Success           bool   `json:"success"`
	Result            any    `json:"result"`
	RawGeminiResponse string `json:"rawGeminiResponse"`
}

type ChatAppendRequest struct {
	UserID    string      `json:"userId"`
	SessionID string      `json:"sessionId"`
	Message   ChatMessage `json:"message"`
}

type ChatAskRequest struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

type ChatHistory struct {
	UserID    string        `json:"userId"`
	SessionID string        `json:"sessionId"`
	Messages  []ChatMessage `json:"messages"`
}

type ResumeUpdateRequest struct {
	ResumeID   string         `json:"resumeId"`
	UpdateData map[string]any `json:"updateData"`
}

type UsageResponse struct {
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
	Limit     int `json:"limit"`
}
