package types

// ChatResponse is the success body of POST /api/chat. Response is either
// the model reply verbatim or the fixed unavailable-service text.
type ChatResponse struct {
	Response string `json:"response"`
}

// TranslateResponse is the success body of POST /api/translate.
type TranslateResponse struct {
	TranslatedText string `json:"translatedText"`
	SourceLang     string `json:"sourceLang"`
	TargetLang     string `json:"targetLang"`
}
