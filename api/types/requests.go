package types

// TranscribeRequest represents a transcription request
type TranscribeRequest struct {
	AudioURL     string `json:"audioUrl" example:"https://raw.githubusercontent.com/user/repo/main/sample.mp3"`
	SpeechModel  string `json:"speechModel,omitempty" example:"best"` // best or fast
	LanguageCode string `json:"languageCode,omitempty" example:"zh"`  // ISO code or auto
}

// TranslateRequest represents a translation request
type TranslateRequest struct {
	Text    string `json:"text" example:"Hello world. How are you?"`
	Details bool   `json:"details,omitempty" example:"false"` // Include per-segment results
}
