package github

import (
	"encoding/json"
	"net/http"
)

// handlePullRequest enqueues a review job for interesting PR actions. All
// heavy work (diff fetch, segmentation, AI calls) happens in the worker so
// the webhook responds inside GitHub's delivery timeout.
func (h *WebhookHandler) handlePullRequest(r *http.Request, payload []byte) {
	var event PullRequestEvent

	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Error("failed to parse pr event", "error", err)
		return
	}

	if event.Action != "opened" && event.Action != "synchronize" {
		h.logger.Info("pr action ignored", "action", event.Action)
		return
	}

	if event.PullRequest.Draft {
		h.logger.Info("draft pr skipped",
			"repo", event.Repository.FullName,
			"pr", event.PullRequest.Number,
		)
		return
	}

	err := h.queue.Enqueue(
		r.Context(),
		event.Repository.FullName,
		event.PullRequest.Number,
	)
	if err != nil {
		h.logger.Error("failed to enqueue review job",
			"error", err,
			"repo", event.Repository.FullName,
			"pr", event.PullRequest.Number,
		)
		return
	}

	h.logger.Info("review job enqueued",
		"repo", event.Repository.FullName,
		"pr", event.PullRequest.Number,
	)
}
