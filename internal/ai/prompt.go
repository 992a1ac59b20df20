package ai

var reviewSystemPrompt = `You are a senior code reviewer.

Respond ONLY with JSON of this shape, no prose around it:

{"issues":[{"line":<new-file line number>,"severity":"critical|high|medium|low","title":"<short>","suggestion":"<actionable fix>"}]}

Return {"issues":[]} when the change is fine.`

var testGenSystemPrompt = `You are a senior engineer writing tests.

Given a file name and its diff, produce a complete test file covering the
changed behavior. Respond ONLY with the test file source, inside a single
code fence.`

func buildReviewPrompt(r ReviewRequest) string {
	return `File: ` + r.File + `

Changes:
` + r.Content + `

Provide a concise but deep review.`
}

func buildTestPrompt(r TestRequest) string {
	return `File: ` + r.File + `

Changes:
` + r.Content + `

Write tests for the changed behavior.`
}
