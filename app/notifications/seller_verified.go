// Package notifications defines the multi-channel notifications the
// marketplace sends. In-app bell notifications are not defined here; those
// are persisted documents owned by the notifications service.
package notifications

import (
	"fmt"

	"github.com/shashiranjanraj/campuskart/pkg/notification"
)

// SellerVerified congratulates a seller whose account an admin just verified.
type SellerVerified struct {
	Name string
}

func (n *SellerVerified) Via() []string { return []string{"mail"} }

func (n *SellerVerified) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Your seller account is verified",
		Body: fmt.Sprintf(
			"<h2>Congratulations, %s!</h2><p>Your seller account has been verified. You can now list products and receive orders.</p>",
			n.Name,
		),
	}
}
