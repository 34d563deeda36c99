package services

import (
	"context"
	"fmt"
	"log"

	"invoices-dashboard/models"
	"invoices-dashboard/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSNotifier texts the finance phone when an invoice is paid or removed.
type SMSNotifier struct {
	client messageSender
	from   string
	to     string
}

func NewSMSNotifier(accountSID, authToken, from, to string) *SMSNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSNotifier{client: client.Api, from: from, to: to}
}

func (n *SMSNotifier) Publish(_ context.Context, event models.InvoiceEvent) error {
	body := smsBody(event)
	if body == "" {
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.client.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send sms for invoice %s: %w", event.InvoiceID, err)
	}
	if resp.Sid != nil {
		log.Printf("Invoice %s: sms sent, SID: %s", event.InvoiceID, *resp.Sid)
	}
	return nil
}

// smsBody returns the alert text for event, or "" when the event is not worth a text.
func smsBody(event models.InvoiceEvent) string {
	switch event.Type {
	case models.InvoiceCreated, models.InvoiceUpdated:
		if event.Status != models.StatusPaid {
			return ""
		}
		return fmt.Sprintf("Invoice %s marked paid: %s", event.InvoiceID, utils.FormatCurrency(event.Amount))
	case models.InvoiceDeleted:
		return fmt.Sprintf("Invoice %s was deleted", event.InvoiceID)
	}
	return ""
}
