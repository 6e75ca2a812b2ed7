// Package jobs defines the queue jobs the marketplace dispatches. Each job
// registers itself by its %T name so workers can rebuild it from JSON.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/campuskart/pkg/mail"
	"github.com/shashiranjanraj/campuskart/pkg/queue"
)

func init() {
	queue.Register("jobs.WelcomeEmail", func() queue.Job { return &WelcomeEmail{} })
}

// WelcomeEmail greets a freshly registered account.
type WelcomeEmail struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (j WelcomeEmail) Handle() error {
	body := fmt.Sprintf(
		"<h2>Welcome to CampusKart, %s!</h2><p>Browse what your hostel is selling and place your first order.</p>",
		j.Name,
	)
	return mail.To(j.Email).
		Subject("Welcome to CampusKart").
		Body(body).
		Send()
}
