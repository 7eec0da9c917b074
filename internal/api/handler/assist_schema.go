package handler

// Request types for the task endpoints. Validation happens before any
// provider call: a request failing these tags never reaches the model.

type generateRequest struct {
	Prompt    string `json:"prompt"     validate:"required"`
	Language  string `json:"language"   validate:"omitempty,max=40"`
	Context   string `json:"context"    validate:"omitempty,max=10000"`
	MaxTokens int    `json:"max_tokens" validate:"omitempty,min=1,max=4096"`
}

type debugRequest struct {
	Code         string `json:"code"          validate:"required"`
	Language     string `json:"language"      validate:"omitempty,max=40"`
	ErrorMessage string `json:"error_message" validate:"omitempty,max=10000"`
}

type securityScanRequest struct {
	Code     string `json:"code"     validate:"required"`
	Language string `json:"language" validate:"omitempty,max=40"`
}

type reviewRequest struct {
	Code     string `json:"code"     validate:"required"`
	Language string `json:"language" validate:"omitempty,max=40"`
	Context  string `json:"context"  validate:"omitempty,max=10000"`
}

type refactorRequest struct {
	Code         string `json:"code"          validate:"required"`
	Language     string `json:"language"      validate:"omitempty,max=40"`
	RefactorType string `json:"refactor_type" validate:"omitempty,oneof=general performance clean_code design_patterns simplify"`
}

type testGenerateRequest struct {
	Code          string `json:"code"           validate:"required"`
	Language      string `json:"language"       validate:"omitempty,max=40"`
	TestFramework string `json:"test_framework" validate:"omitempty,max=40"`
}

type optimizeRequest struct {
	Code     string `json:"code"     validate:"required"`
	Language string `json:"language" validate:"omitempty,max=40"`
	Context  string `json:"context"  validate:"omitempty,max=10000"`
}

type documentRequest struct {
	Code     string `json:"code"     validate:"required"`
	Language string `json:"language" validate:"omitempty,max=40"`
	DocType  string `json:"doc_type" validate:"omitempty,oneof=comprehensive inline api readme tutorial"`
}

type clearChatRequest struct {
	ConversationID string `json:"conversation_id" validate:"omitempty,max=64"`
}

type chatRequest struct {
	Message        string `json:"message"         validate:"required"`
	Language       string `json:"language"        validate:"omitempty,max=40"`
	Code           string `json:"code"            validate:"omitempty,max=100000"`
	ConversationID string `json:"conversation_id" validate:"omitempty,max=64"`
}

type languagesResponse struct {
	Languages []string `json:"languages"`
}

type searchResponse struct {
	Results []searchResultItem `json:"results"`
}

type searchResultItem struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Language    string  `json:"language"`
	Score       float64 `json:"score"`
}
