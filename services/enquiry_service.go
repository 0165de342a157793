package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"lumarise-backend/apperrors"
	"lumarise-backend/logger"
	"lumarise-backend/utils"
)

// DefaultEnquiryRecipient receives enquiries when no recipient is configured.
const DefaultEnquiryRecipient = "lumarisehotels@gmail.com"

type EnquiryService struct {
	mailer    utils.Mailer
	recipient string
	validate  *validator.Validate
	log       *logger.Logger
}

func NewEnquiryService(mailer utils.Mailer, recipient string, logg *logger.Logger) *EnquiryService {
	if strings.TrimSpace(recipient) == "" {
		recipient = DefaultEnquiryRecipient
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &EnquiryService{mailer: mailer, recipient: recipient, validate: validator.New(), log: logg}
}

// Send relays the enquiry to the hotel inbox with Reply-To set to the
// submitter, when an address was given.
func (s *EnquiryService) Send(ctx context.Context, e utils.Enquiry) error {
	e.Email = strings.TrimSpace(e.Email)
	if e.Email != "" {
		if err := s.validate.Var(e.Email, "email"); err != nil {
			return apperrors.New(apperrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"email": "Enter a valid email address."})
		}
	}

	err := s.mailer.Send(ctx, utils.Mail{
		To:      s.recipient,
		ReplyTo: e.Email,
		Subject: utils.EnquirySubject(e),
		Body:    utils.EnquiryBody(e),
	})
	if err != nil {
		s.log.Error(ctx, "enquiry.send_failed", err)
		return apperrors.Wrap(apperrors.CodeDependency, err, "Failed to send email")
	}
	return nil
}
