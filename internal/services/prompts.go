package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rahul4469/compiler-craft/internal/models"
)

const analyzeSystemInstruction = `You are an expert compiler design assistant. Your task is to analyze the provided source code and explain its compilation process step-by-step.
- If the code has errors, set 'isValidCode' to false, and detail the error in the 'error' object, specifying the phase, message, and a suggested fix. The 'phases' array can be empty or partially filled up to the error point.
- If the code is valid, set 'isValidCode' to true, 'error' to null, and explain all 6 phases of compilation: Lexical Analysis, Syntax Analysis, Semantic Analysis, Intermediate Code Generation, Optimization, and Code Generation.
- For each phase, provide:
  1. 'explanation': A concise description of the phase's purpose.
  2. 'inputDescription': What this phase takes as input, in the context of the provided code.
  3. 'outputDescription': The result of this phase's processing on the input.
- Specific output formats:
  - Lexical Analysis output should be a markdown table of tokens.
  - Syntax Analysis output MUST be a JSON string that can be parsed into a tree structure (e.g., {"name": "Program", "children": [{"name": "Statement"}]}). The JSON string should not be inside a markdown code block.
  - Intermediate Code Generation output should be a simple representation like Three-Address Code.
- You MUST respond ONLY with a valid JSON object matching the provided schema. Do not include any markdown formatting like ` + "```json."

const explainSystemInstruction = `You are an expert and friendly compiler design professor. 
Your task is to provide a detailed, easy-to-understand explanation for a specific compiler phase based on the provided source code and initial context.
- Use simple analogies to explain complex concepts.
- Break down the process for the specific code snippet provided.
- Keep the tone helpful and educational.
- Respond only with the explanation text, formatted in markdown for clarity.`

const (
	chatWithAnalysis    = "You have already performed a code analysis. Use the provided context (original code, the JSON analysis, and conversation history) to give an accurate and relevant answer."
	chatWithoutAnalysis = "The user has not performed an analysis yet. Answer general questions. You can encourage them to analyze some code to get more specific help."
)

const fence = "```"

func analyzePrompt(code string) string {
	return fmt.Sprintf("Analyze the following code snippet:\n\n%s\n%s\n%s", fence, code, fence)
}

func explainPrompt(code, phaseName, phaseContext string) string {
	var b strings.Builder
	b.WriteString("Here is the source code:\n")
	b.WriteString(fence + "\n" + code + "\n" + fence + "\n")
	fmt.Fprintf(&b, "A user wants a more detailed explanation of the **%s** phase.\n", phaseName)
	b.WriteString("Here is the current context they have for this phase:\n---\n")
	b.WriteString(phaseContext)
	b.WriteString("\n---\n")
	b.WriteString("Please provide a more in-depth, beginner-friendly explanation. Explain what's happening step-by-step with reference to the source code. Use a simple analogy if it helps clarify the concept.")
	return b.String()
}

func chatSystemInstruction(hasAnalysis bool) string {
	scope := chatWithoutAnalysis
	if hasAnalysis {
		scope = chatWithAnalysis
	}
	return "You are an expert and friendly compiler design professor. \n" +
		"Your role is to answer a user's questions about compilers, programming languages, and code analysis.\n" +
		scope + "\n" +
		"- Keep the tone helpful, concise, and educational.\n" +
		"- Format your response using markdown for clarity.\n" +
		"- Do not re-explain an entire analysis unless asked, only answer the specific question."
}

// chatPrompt wraps question with the source and analysis. Without an
// analysis the question is sent as is.
func chatPrompt(code string, analysis *models.AnalysisResult, question string) (string, error) {
	if analysis == nil {
		return question, nil
	}

	summary, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis: %w", err)
	}

	var b strings.Builder
	b.WriteString("\nCONTEXT FOR THIS CONVERSATION:\n---\n")
	b.WriteString("**Original Source Code:**\n")
	b.WriteString(fence + "\n" + code + "\n" + fence + "\n")
	b.WriteString("**Full Compiler Analysis Summary:**\n")
	b.WriteString(fence + "json\n")
	b.Write(summary)
	b.WriteString("\n" + fence + "\n---\n")
	b.WriteString("Based on the context above and our conversation so far, please answer my next question.\n")
	b.WriteString("My question is: " + question)
	return b.String(), nil
}
