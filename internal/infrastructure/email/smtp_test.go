package email

import (
	"bytes"
	"errors"
	"mime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSendExpiryReminder(t *testing.T) {
	d := &recordingDialer{}
	svc := &SMTPEmailService{config: SMTPConfig{FromAddress: "gym@f3.mx", FromName: "F3"}, dialer: d}

	err := svc.SendExpiryReminder(Reminder{
		To: "ana@example.com", MemberName: "Ana", PlanName: "Mensual", EndDate: "2025-03-12", DaysLeft: 2,
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("To"))
	assert.Equal(t, "Tu membresía vence en 2 días", subjectOf(t, m))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Mensual")
}

func TestSendExpiryReminder_DialError(t *testing.T) {
	svc := &SMTPEmailService{config: SMTPConfig{FromAddress: "gym@f3.mx"}, dialer: &recordingDialer{err: errors.New("refused")}}

	err := svc.SendExpiryReminder(Reminder{To: "ana@example.com", DaysLeft: 0})
	assert.ErrorContains(t, err, "refused")
}

func TestBuildReminder_Wording(t *testing.T) {
	svc := &SMTPEmailService{config: SMTPConfig{FromAddress: "gym@f3.mx"}}
	assert.Equal(t, "Tu membresía vence hoy", subjectOf(t, svc.buildReminder(Reminder{DaysLeft: 0})))
	assert.Equal(t, "Tu membresía vence mañana", subjectOf(t, svc.buildReminder(Reminder{DaysLeft: 1})))
}

// subjectOf decodes the RFC 2047 words gomail writes for non-ASCII subjects.
func subjectOf(t *testing.T, m *gomail.Message) string {
	t.Helper()
	raw := m.GetHeader("Subject")
	require.Len(t, raw, 1)
	subject, err := new(mime.WordDecoder).DecodeHeader(raw[0])
	require.NoError(t, err)
	return subject
}
