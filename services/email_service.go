package services

import (
	"fmt"
	"sync"
	"vendora_server/lib"
	"vendora_server/structs"
	"vendora_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

// EmailService notifies vendors about order activity. It never emails
// customers: they are identified by phone number only.
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendOrderPaidEmail tells the vendor a customer has reported payment, so
// the order is waiting to be accepted or rejected.
func (es *EmailService) SendOrderPaidEmail(store *tables.Store, order *tables.Order) error {
	if !es.cfg.Email.Enabled {
		return nil
	}

	subject := fmt.Sprintf("Payment reported for order %s", order.OrderNumber)

	var items string
	for _, item := range order.Items {
		items += fmt.Sprintf("<li>%dx %s</li>", item.Quantity, item.ItemName)
	}

	body := fmt.Sprintf(`
		<h2>New paid order at %s</h2>
		<p>Order <strong>%s</strong> (token <strong>%s</strong>) reports payment of ₹%d.%02d.</p>
		<ul>%s</ul>
		<p>Open your dashboard to accept or reject it.</p>`,
		store.Name,
		order.OrderNumber,
		lib.Token(order.OrderNumber),
		order.TotalAmount/100, order.TotalAmount%100,
		items,
	)

	return es.SendEmail([]string{store.Email}, subject, body)
}
