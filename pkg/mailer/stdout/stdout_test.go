package stdout_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heraldmail/herald/pkg/attachment"
	"github.com/heraldmail/herald/pkg/mailer"
	"github.com/heraldmail/herald/pkg/mailer/stdout"
)

func TestSender_Send(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	sender := stdout.NewWithWriter(&buf)

	err := sender.Send(context.Background(), &mailer.Email{
		From:    "Team <team@example.com>",
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Hello",
		Text:    "body text",
		Attachments: []*attachment.Part{
			{Filename: "report.pdf", ContentType: "application/pdf", Kind: attachment.KindBinary, Content: make([]byte, 2048)},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "From: Team <team@example.com>")
	assert.Contains(t, out, "To: a@example.com, b@example.com")
	assert.Contains(t, out, "Subject: Hello")
	assert.Contains(t, out, "body text")
	assert.Contains(t, out, "report.pdf (2.0 KB)")
	assert.Equal(t, "stdout", sender.Name())
	assert.NoError(t, sender.Close())
}
