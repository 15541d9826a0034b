package mailer

import "sync"

// RecordedEmail captures one Send call made against a MockMailer.
type RecordedEmail struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer satisfies the Mailer interface without talking to an SMTP
// server. Handlers dispatch mail from goroutines, so access is locked.
type MockMailer struct {
	mu   sync.Mutex
	sent []RecordedEmail
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, RecordedEmail{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

// Sent returns a snapshot of every recorded email, in send order.
func (m *MockMailer) Sent() []RecordedEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]RecordedEmail, len(m.sent))
	copy(out, m.sent)

	return out
}

// SentTo returns the emails recorded for a single recipient.
func (m *MockMailer) SentTo(recipient string) []RecordedEmail {
	var out []RecordedEmail
	for _, email := range m.Sent() {
		if email.Recipient == recipient {
			out = append(out, email)
		}
	}

	return out
}
