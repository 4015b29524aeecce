package mailer

import (
	"context"
	"errors"
	"strings"

	"github.com/oksasatya/vendor-vault/pkg/mailer/templates"
)

var (
	ErrNoRecipient = errors.New("email job has no recipient")
	ErrEmptyBody   = errors.New("email job has neither template nor body")
)

// Prepare renders a job into subject, text and html. Jobs without a
// recipient fall back to the Email field of their template data.
func Prepare(job *EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		if v, ok := job.Data["RecipientEmail"].(string); ok && v != "" {
			job.To = v
		} else if v, ok := job.Data["Email"].(string); ok && v != "" {
			job.To = v
		}
	}
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", ErrNoRecipient
	}
	if job.Template != "" {
		return templates.Render(job.Template, job.Data)
	}
	if job.Text == "" && job.HTML == "" {
		return "", "", "", ErrEmptyBody
	}
	return job.Subject, job.Text, job.HTML, nil
}

// Deliver renders job and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	subject, text, html, err := Prepare(&job)
	if err != nil {
		return err
	}
	return s.Send(ctx, job.To, subject, text, html)
}
