package jobs

import (
	"fmt"
	"strings"

	"github.com/shashiranjanraj/campuskart/pkg/mail"
	"github.com/shashiranjanraj/campuskart/pkg/queue"
)

func init() {
	queue.Register("jobs.SellerOrderEmail", func() queue.Job { return &SellerOrderEmail{} })
}

// OrderLine is one purchased line in the seller's email.
type OrderLine struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// SellerOrderEmail tells a seller about the lines a checkout just created for
// them. One email per seller per checkout, however many lines it contained.
type SellerOrderEmail struct {
	SellerEmail string      `json:"seller_email"`
	SellerName  string      `json:"seller_name"`
	BuyerName   string      `json:"buyer_name"`
	Lines       []OrderLine `json:"lines"`
	Amount      float64     `json:"amount"`
}

func (j SellerOrderEmail) Handle() error {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>New order from %s</h2><ul>", j.BuyerName)
	for _, line := range j.Lines {
		fmt.Fprintf(&b, "<li>%d × %s — ₹%.2f</li>", line.Quantity, line.ProductName, line.Total)
	}
	fmt.Fprintf(&b, "</ul><p>Total: ₹%.2f</p>", j.Amount)

	return mail.To(j.SellerEmail).
		Subject(fmt.Sprintf("New order: %d item(s)", len(j.Lines))).
		Body(b.String()).
		Send()
}
