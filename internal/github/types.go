package github

type PullRequestEvent struct {
	Action      string      `json:"action"`
	PullRequest PullRequest `json:"pull_request"`
	Repository  Repository  `json:"repository"`
}

type PullRequest struct {
	Number int  `json:"number"`
	Draft  bool `json:"draft"`

	User struct {
		Login string `json:"login"`
	} `json:"user"`

	Head struct {
		SHA string `json:"sha"`
	} `json:"head"`

	Base struct {
		Ref string `json:"ref"`
	} `json:"base"`

	Title string `json:"title"`
	Body  string `json:"body"`
}

type Repository struct {
	FullName string `json:"full_name"`
}

type LineComment struct {
	Body string `json:"body"`
	Path string `json:"path"`
	Line int    `json:"line"`
	Side string `json:"side"` // RIGHT = new code
}
