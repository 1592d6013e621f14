// Package llm holds the structured-output contract with the generative
// model: prompt rendering, the Model port and lenient JSON extraction.
package llm

import (
	"fmt"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

// BuildQuizPrompt renders the multiple-choice question prompt for a topic.
// Any topic string is accepted; difficulty is advisory framing only.
func BuildQuizPrompt(topic string, difficulty domain.Difficulty) string {
	return fmt.Sprintf(`You are a PSLE Science tutor creating a multiple-choice question for Singapore Primary School students.

Topic: %[1]s
Difficulty Level: %[2]s

Create a PSLE Science multiple-choice question with exactly 4 options (A, B, C, D).
The question should be appropriate for Primary 5-6 students in Singapore.

Respond in JSON format only:
{
    "question": "The question text here",
    "options": {
        "A": "Option A text",
        "B": "Option B text",
        "C": "Option C text",
        "D": "Option D text"
    },
    "correct_answer": "A",
    "explanation": "A clear, educational explanation suitable for primary school students explaining why the answer is correct and why other options are wrong"
}

Ensure the question tests understanding of key concepts in %[1]s that are relevant to the PSLE Science syllabus.`, topic, difficulty)
}

const markingPrompt = `You are a strict, veteran Singapore PSLE Science Marker. Your job is not to be a friend, but to grade rigorously based on the MOE Syllabus.

**Your Marking Rubric:**
1.  **Keyword Supremacy:** You must award ZERO marks if the student explains the concept correctly but misses the specific scientific keyword.
    * *Example:* If they say "The water dried up," mark it WRONG. The required phrase is "The water gained heat and evaporated."
    * *Example:* If they say "The object is heavy," mark it WRONG. They must discuss "Gravitational Potential Energy."
    * *Example:* Never accept "rubbing"; demand "Friction."
    * *Example:* Never accept "size"; demand "Exposed Surface Area."

2.  **The "CER" Check:**
    * **C**laim: Did they answer the question directly?
    * **E**vidence: Did they quote data from the table/graph?
    * **R**easoning: Did they link the evidence to the scientific concept?
    * *If any part is missing, deduct marks.*

**Task:**
Analyze the student's handwritten answer in the image.
1.  Transcribe what they wrote.
2.  Identify the missing keywords immediately.
3.  Provide a strict score (e.g., 0/2, 1/2, or 2/2).
4.  Draft the "Model Answer" that would get full marks.

**Output Format (JSON Only):**
{
    "transcription": "Student's exact words...",
    "score": "X/2",
    "verdict": "Strict/Lenient/Correct",
    "missing_keywords": ["List", "Of", "Missing", "Keywords"],
    "feedback_text": "You lost marks because you said 'X' instead of 'Y'. In Section B, we do not accept general descriptions.",
    "model_answer": "The perfect answer showing exactly how to phrase it."
}

Analyze the image carefully and provide your assessment.`

// BuildMarkingPrompt returns the fixed worksheet rubric. The image is sent
// alongside the prompt, not embedded in it.
func BuildMarkingPrompt() string {
	return markingPrompt
}
