// Package prompt assembles the grounded prompt sent to the language
// model. It is a pure string substitution over a fixed template.
package prompt

import "strings"

// Template is the fixed prompt the assistant answers from. Retrieved
// context, user profile, cached summary and the new question are
// substituted into the named fields; nothing is escaped or truncated.
const Template = `You are Vua AI Assistant, the friendly and knowledgeable chatbot for Vua. At Vua, we are dedicated to empowering underserved communities with seamless financial services. Our mission is to help individuals take control of their finances and create financially sustainable lifestyles. We offer savings accounts, loans, and investment opportunities to help our customers achieve financial freedom.

Answer the question based on the following context and the user's profile:

Context: {context}
User Profile: {profile}

Previous Conversation Summary: {summary}

Question: {question}
`

// Build substitutes the four fields into the template. Missing values
// substitute as empty strings rather than failing.
func Build(context, profile, summary, question string) string {
	r := strings.NewReplacer(
		"{context}", context,
		"{profile}", profile,
		"{summary}", summary,
		"{question}", question,
	)
	return r.Replace(Template)
}
