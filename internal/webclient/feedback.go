package webclient

import (
	"context"
	"strings"

	"campfire/internal/shared/util"
)

const msgVoteRejected = "Your vote could not be recorded."

// FeedbackPanel is the community suggestion board. The server owns scores;
// the list is reloaded after every successful action.
type FeedbackPanel struct {
	Backend Backend
	Panel[FeedbackItem]

	// Draft is the suggestion text box.
	Draft string
}

func NewFeedbackPanel(b Backend) *FeedbackPanel {
	return &FeedbackPanel{Backend: b}
}

// Open loads the board. A name is optional and only marks the viewer's votes.
func (p *FeedbackPanel) Open(ctx context.Context, name string) error {
	name = util.SanitizeName(name)
	return p.Load(ctx, func(ctx context.Context) ([]FeedbackItem, error) {
		return p.Backend.Feedback(ctx, name)
	})
}

// Vote sends an up (+1) or down (-1) vote. On a reply without success the
// visible list is left as it was.
func (p *FeedbackPanel) Vote(ctx context.Context, name string, suggestionID int64, vote int) error {
	name = util.SanitizeName(name)
	if name == "" {
		return &AlertError{Message: msgNameForVote, Err: ErrNameRequired}
	}
	res, err := p.Backend.VoteFeedback(ctx, name, suggestionID, vote)
	if err != nil {
		return alert(err)
	}
	if !res.Success {
		return &AlertError{Message: msgVoteRejected}
	}
	return p.Open(ctx, name)
}

// Submit posts content as a new suggestion. Blank content is ignored.
func (p *FeedbackPanel) Submit(ctx context.Context, name, content string) error {
	name = util.SanitizeName(name)
	if name == "" {
		return &AlertError{Message: msgNameFirst, Err: ErrNameRequired}
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	p.Draft = content
	if _, err := p.Backend.SubmitFeedback(ctx, name, content); err != nil {
		return alert(err)
	}
	p.Draft = ""
	return p.Open(ctx, name)
}
