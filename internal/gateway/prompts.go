package gateway

import (
	"fmt"
	"strings"
)

// Prompt templates, one per task kind. Each builds the full text sent to the
// provider in a single completion call.

func generatePrompt(prompt, language, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert %s developer and coding assistant.
Generate clean, efficient, and well-documented code based on the user's request.
Include:
1. Working code implementation
2. Step-by-step explanation of the algorithm
3. Optimization suggestions
4. Auto-generated documentation/comments

`, language)
	fmt.Fprintf(&b, "Request: %s\n", prompt)
	if context != "" {
		fmt.Fprintf(&b, "\nExisting context:\n%s\n", context)
	}
	fmt.Fprintf(&b, "\nGenerate %s code for this request.", language)
	return b.String()
}

func debugPrompt(code, language, errorMessage string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert debugger for %s.
Analyze the code and provide:
1. Potential bugs or issues
2. Detailed explanations of problems
3. Fixed version of the code
4. Best practices recommendations

`, language)
	fmt.Fprintf(&b, "Code to debug:\n```%s\n%s\n```\n", language, code)
	if errorMessage != "" {
		fmt.Fprintf(&b, "\nError message: %s\n", errorMessage)
	}
	b.WriteString("\nProvide debugging analysis and suggestions.")
	return b.String()
}

func securityPrompt(code, language string) string {
	return fmt.Sprintf(`You are a security expert analyzing %s code.
Identify security vulnerabilities including:
- SQL injection
- XSS attacks
- CSRF vulnerabilities
- Authentication issues
- Data exposure
- Insecure dependencies
For each issue found, provide: type, severity (critical/high/medium/low), description, and recommendation.
Format as bullet points with clear structure.

Analyze this %s code for security issues:
`+"```%s\n%s\n```", language, language, language, code)
}

func reviewPrompt(code, language, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a senior %s code reviewer.
Perform a thorough code review covering:
1. Code quality and readability
2. Best practices and design patterns
3. Performance considerations
4. Potential bugs or edge cases
5. Security implications
6. Maintainability concerns
7. Testing recommendations

Provide specific, actionable feedback with examples.

`, language)
	fmt.Fprintf(&b, "Review this %s code:\n```%s\n%s\n```", language, language, code)
	if context != "" {
		fmt.Fprintf(&b, "\n\nContext: %s", context)
	}
	return b.String()
}

var refactorGoals = map[string]string{
	"general":         "Refactor for overall code quality, readability, and maintainability",
	"performance":     "Optimize for better performance and efficiency",
	"clean_code":      "Apply clean code principles and best practices",
	"design_patterns": "Apply appropriate design patterns",
	"simplify":        "Simplify and reduce complexity",
}

func refactorPrompt(code, language, refactorType string) string {
	goal, ok := refactorGoals[refactorType]
	if !ok {
		goal = refactorGoals["general"]
	}
	return fmt.Sprintf(`You are an expert %s developer specializing in code refactoring.
%s

Provide:
1. Refactored code
2. Explanation of changes made
3. Benefits of the refactoring
4. Migration notes if applicable

Refactor this %s code:
`+"```%s\n%s\n```", language, goal, language, language, code)
}

var defaultFrameworks = map[string]string{
	"python":     "pytest",
	"javascript": "jest",
	"typescript": "jest",
	"java":       "junit",
	"go":         "testing",
	"ruby":       "rspec",
}

// frameworkFor resolves the test framework for a language when the caller
// did not name one.
func frameworkFor(language, requested string) string {
	if requested != "" {
		return requested
	}
	if fw, ok := defaultFrameworks[strings.ToLower(language)]; ok {
		return fw
	}
	return "unittest"
}

func testsPrompt(code, language, framework string) string {
	return fmt.Sprintf(`You are an expert in %s testing using %s.
Generate comprehensive test cases including:
1. Unit tests for individual functions
2. Edge cases and boundary conditions
3. Error handling tests
4. Integration test suggestions
5. Test data examples
6. Mock/stub recommendations where needed

Follow %s best practices and conventions.

Generate tests for this %s code:
`+"```%s\n%s\n```", language, framework, framework, language, language, code)
}

func optimizePrompt(code, language, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a performance optimization expert for %s.
Analyze the code and provide:
1. Performance bottlenecks identification
2. Time complexity analysis (Big O notation)
3. Space complexity analysis
4. Optimized version of the code
5. Specific optimization techniques applied
6. Benchmarking recommendations
7. Caching strategies if applicable
8. Database query optimizations if applicable

`, language)
	fmt.Fprintf(&b, "Analyze and optimize this %s code:\n```%s\n%s\n```", language, language, code)
	if context != "" {
		fmt.Fprintf(&b, "\n\nContext: %s", context)
	}
	return b.String()
}

var docGoals = map[string]string{
	"comprehensive": "Full documentation with examples and API references",
	"inline":        "Inline code comments and docstrings",
	"api":           "API documentation in OpenAPI/Swagger format",
	"readme":        "README documentation for the project",
	"tutorial":      "Tutorial-style documentation with examples",
}

func documentPrompt(code, language, docType string) string {
	goal, ok := docGoals[docType]
	if !ok {
		goal = docGoals["comprehensive"]
	}
	return fmt.Sprintf(`You are a technical documentation expert for %s.
Generate %s including:
1. Overview and purpose
2. Function/class descriptions
3. Parameter documentation
4. Return value documentation
5. Usage examples
6. Error handling notes
7. Best practices

Follow %s documentation conventions (JSDoc, docstrings, JavaDoc, etc.).

Generate documentation for this %s code:
`+"```%s\n%s\n```", language, goal, language, language, language, code)
}

const chatSystemContext = `You are an expert AI coding assistant integrated into a development environment.
You help developers with:
- Writing and explaining code in any programming language
- Debugging and troubleshooting issues
- Best practices and design patterns
- Performance optimization
- Security recommendations
- Code review feedback
- Learning programming concepts

Provide clear, practical, and actionable responses. Include code examples when relevant.
Format your responses with markdown for better readability.`

func chatPrompt(message, language, code string, history []chatTurn) string {
	var b strings.Builder
	b.WriteString(chatSystemContext)

	if language != "" || code != "" {
		b.WriteString("\n\nCurrent Context:\n")
		if language != "" {
			fmt.Fprintf(&b, "- Language: %s\n", language)
		}
		if code != "" {
			fmt.Fprintf(&b, "- Code Snippet:\n```%s\n%s\n```\n", language, code)
		}
	}

	for _, turn := range history {
		role := "User"
		if turn.Role == "assistant" {
			role = "Assistant"
		}
		fmt.Fprintf(&b, "\n%s: %s", role, turn.Content)
	}

	fmt.Fprintf(&b, "\n\nUser: %s\n\nAssistant:", message)
	return b.String()
}
