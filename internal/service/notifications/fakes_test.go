package notifications

import (
	"context"
	"sync"

	"github.com/mamadbah2/livestock/pkg/clients"
	emailclient "github.com/mamadbah2/livestock/pkg/clients/email"
)

type fakeEmail struct {
	mu   sync.Mutex
	sent []emailclient.Message
	fail map[string]bool
}

func (f *fakeEmail) Send(_ context.Context, msg emailclient.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[msg.To] {
		return "", &clients.ProviderError{Provider: "email", StatusCode: 422, Message: "invalid recipient", Raw: `{"message":"invalid recipient"}`}
	}
	f.sent = append(f.sent, msg)
	return "email-" + msg.To, nil
}

type whatsappMessage struct {
	to, body string
}

type fakeWhatsApp struct {
	mu   sync.Mutex
	sent []whatsappMessage
	err  error
}

func (f *fakeWhatsApp) SendText(_ context.Context, to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, whatsappMessage{to: to, body: body})
	return "wamid.1", nil
}
