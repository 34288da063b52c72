package ses

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	smtperr "github.com/heraldmail/herald/pkg/mailer/smtp"
)

// wrapSESError maps SES API failures onto the transport error taxonomy so
// campaign code can treat providers uniformly. Uses %v for the original
// error: callers match with errors.Is on the sentinels, not errors.As on
// AWS types.
func wrapSESError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "InvalidClientTokenId", "SignatureDoesNotMatch", "UnrecognizedClientException", "AccessDeniedException":
			return fmt.Errorf("%w: %v", smtperr.ErrAuthentication, err)
		case "MessageRejected", "MailFromDomainNotVerifiedException", "BadRequestException", "SendingPausedException":
			return fmt.Errorf("%w: %v", smtperr.ErrProtocol, err)
		}
	}
	return fmt.Errorf("%w: %v", smtperr.ErrConnection, err)
}
