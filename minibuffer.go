package adclient

import "strings"

// SelectFromMinibuffer asks the user to pick one of candidates through the
// editor's minibuffer. An empty prompt leaves the editor's default label.
//
// The exchange is write-then-read against the minibuffer file: the
// newline-delimited candidate list is written first, the prompt (if any)
// is set via ctl strictly between the write and the read, then a blocking
// read returns the user's selection. The editor serializes minibuffer use;
// this client adds no concurrency guard of its own, so callers must not
// overlap selections.
//
// Returns ErrCancelled when the user dismisses the selection.
func (c *Client) SelectFromMinibuffer(candidates []string, prompt string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	payload := strings.Join(candidates, "\n") + "\n"
	if err := c.writeFile("minibuffer", []byte(payload)); err != nil {
		return "", err
	}

	// Prompt ordering matters: issued before the candidate write it labels
	// a stale request, after the read it labels nothing.
	if prompt != "" {
		if err := c.Ctl(MinibufferPrompt{Text: prompt}); err != nil {
			return "", err
		}
	}

	data, err := c.readFile("minibuffer")
	if err != nil {
		return "", err
	}

	selected := strings.TrimSuffix(string(data), "\n")
	if selected == "" {
		return "", ErrCancelled
	}
	return selected, nil
}
