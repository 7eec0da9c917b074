package domain

import "time"

// TaskKind identifies one assistant capability.
type TaskKind string

const (
	TaskGenerate     TaskKind = "generate"
	TaskDebug        TaskKind = "debug"
	TaskSecurityScan TaskKind = "security-scan"
	TaskReview       TaskKind = "review"
	TaskRefactor     TaskKind = "refactor"
	TaskTestGenerate TaskKind = "test-generate"
	TaskOptimize     TaskKind = "optimize"
	TaskDocument     TaskKind = "document"
	TaskSearch       TaskKind = "semantic-search"
	TaskChat         TaskKind = "chat"
)

// LanguageAuto is used when the caller does not name a language.
const LanguageAuto = "auto"

// SupportedLanguages is the fixed set exposed via GET /api/languages.
var SupportedLanguages = []string{
	"python", "javascript", "typescript", "java", "csharp", "go",
	"rust", "cpp", "ruby", "php", "swift", "kotlin",
}

// Severity and risk levels. OverallRisk of a scan is always one of these.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// GenerationResult is the structured reply for a generate task.
type GenerationResult struct {
	Code             string   `json:"code"`
	Explanation      string   `json:"explanation"`
	OptimizationTips []string `json:"optimization_tips"`
	Documentation    string   `json:"documentation"`
}

// DebugResult is the structured reply for a debug task.
type DebugResult struct {
	Analysis   string   `json:"analysis"`
	Suggestions []string `json:"suggestions"`
	FixedCode  string   `json:"fixed_code,omitempty"`
	Severity   string   `json:"severity"`
}

// SecurityIssue is one finding inside a SecurityResult.
type SecurityIssue struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Line           int    `json:"line"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// SecurityResult is the structured reply for a security-scan task.
// Issues may legitimately be empty but is always present.
type SecurityResult struct {
	Issues          []SecurityIssue `json:"issues"`
	OverallRisk     string          `json:"overall_risk"`
	Recommendations []string        `json:"recommendations"`
}

// ReviewResult is the structured reply for a review task.
type ReviewResult struct {
	OverallScore int      `json:"overall_score"`
	Review       string   `json:"review"`
	Issues       []string `json:"issues"`
	Suggestions  []string `json:"suggestions"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// RefactorResult is the structured reply for a refactor task.
type RefactorResult struct {
	RefactoredCode string   `json:"refactored_code"`
	Explanation    string   `json:"explanation"`
	Changes        []string `json:"changes"`
	Benefits       []string `json:"benefits"`
	DiffSummary    string   `json:"diff_summary"`
}

// TestResult is the structured reply for a test-generate task.
type TestResult struct {
	TestCode          string   `json:"test_code"`
	Explanation       string   `json:"explanation"`
	TestCases         []string `json:"test_cases"`
	CoverageEstimate  int      `json:"coverage_estimate"`
	Framework         string   `json:"framework"`
	SetupInstructions string   `json:"setup_instructions"`
}

// OptimizationResult is the structured reply for an optimize task.
type OptimizationResult struct {
	OptimizedCode      string   `json:"optimized_code"`
	Analysis           string   `json:"analysis"`
	Bottlenecks        []string `json:"bottlenecks"`
	Improvements       []string `json:"improvements"`
	ComplexityAnalysis string   `json:"complexity_analysis"`
	PerformanceGain    string   `json:"performance_gain"`
}

// DocumentationResult is the structured reply for a document task.
type DocumentationResult struct {
	Documentation  string   `json:"documentation"`
	InlineComments string   `json:"inline_comments"`
	Examples       []string `json:"examples"`
	Markdown       string   `json:"markdown"`
	DocType        string   `json:"doc_type"`
}

// CodeExample is a fenced code block extracted from a chat reply.
type CodeExample struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// ChatResult is the structured reply for a chat turn.
type ChatResult struct {
	Response       string        `json:"response"`
	Suggestions    []string      `json:"suggestions"`
	CodeExamples   []CodeExample `json:"code_examples"`
	References     []string      `json:"references"`
	ConversationID string        `json:"conversation_id"`
}

// Snippet is a stored code snippet, persisted for history and indexed for
// semantic search.
type Snippet struct {
	ID          string    `json:"id"`
	Prompt      string    `json:"description"`
	Code        string    `json:"code"`
	Language    string    `json:"language"`
	Explanation string    `json:"-"`
	UserID      string    `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// SearchMatch pairs a snippet with its similarity score.
type SearchMatch struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Language    string  `json:"language"`
	Score       float64 `json:"score"`
}

// DebugSession records one debug invocation for an authenticated user.
type DebugSession struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	OriginalCode string    `json:"original_code"`
	FixedCode    string    `json:"fixed_code,omitempty"`
	Language     string    `json:"language"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Suggestions  []string  `json:"suggestions"`
	CreatedAt    time.Time `json:"created_at"`
}

// SecurityScanRecord logs one completed scan for an authenticated user.
type SecurityScanRecord struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Code        string          `json:"code"`
	Language    string          `json:"language"`
	Issues      []SecurityIssue `json:"issues"`
	OverallRisk string          `json:"overall_risk"`
	CreatedAt   time.Time       `json:"created_at"`
}
