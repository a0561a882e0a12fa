package services

import (
	"context"
	"fmt"
	"strings"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/domain/entities"
	Iservices "collection-connector/internal/domain/interfaces/services"
	"collection-connector/internal/infra/logger"
)

const unsupportedContentReply = "No puedo ayudarte con el procesamiento de este tipo de contenido"

// FragmentParser reduces one inbound delivery to a Fragment. Dispatch is a
// closed switch over the message kind; media kinds route through the OCR
// collaborator and report extraction failures on the fragment itself, never
// as an error, so one bad image does not lose the rest of a burst.
type FragmentParser struct {
	Logger *logger.Logger
	OCR    Iservices.IOCRService
}

func NewFragmentParser(logger *logger.Logger, ocr Iservices.IOCRService) *FragmentParser {
	return &FragmentParser{Logger: logger, OCR: ocr}
}

func (fp *FragmentParser) Parse(ctx context.Context, payload *dto.InboundMessage, user entities.User) (entities.Fragment, error) {
	data := payload.Data
	kind := entities.MessageKind(data.Type)
	if data.Type == "" {
		kind = entities.KindText
	}

	switch kind {
	case entities.KindText:
		return entities.NewTextFragment(data.Text), nil
	case entities.KindAudio:
		return entities.NewAudioFragment(data.Text, data.MediaURL), nil
	case entities.KindContacts:
		return entities.NewContactsFragment(renderContacts(data.Contacts)), nil
	case entities.KindImage:
		return fp.parseImage(ctx, data, user)
	case entities.KindFile:
		return fp.parseFile(ctx, data, user)
	default:
		return entities.Fragment{}, fmt.Errorf("parser: unsupported message type %q", data.Type)
	}
}

func (fp *FragmentParser) parseImage(ctx context.Context, data dto.MessageData, user entities.User) (entities.Fragment, error) {
	if user.Type != entities.UserCreditor && user.Type != entities.UserEnterprise {
		return entities.NewMediaFragment(entities.KindImage, unsupportedContentReply, data.MediaURL), nil
	}

	result, err := fp.OCR.ProcessImage(ctx, data.MediaURL, data.Caption, user)
	if err != nil {
		return entities.Fragment{}, fmt.Errorf("parser: image OCR: %w", err)
	}
	if !result.Success {
		return entities.NewFailedMediaFragment(entities.KindImage, result.Message, result.Context, data.MediaURL), nil
	}
	return entities.NewMediaFragment(entities.KindImage, result.Message, data.MediaURL), nil
}

func (fp *FragmentParser) parseFile(ctx context.Context, data dto.MessageData, user entities.User) (entities.Fragment, error) {
	if user.Type != entities.UserEnterprise {
		return entities.NewMediaFragment(entities.KindFile, unsupportedContentReply, data.MediaURL), nil
	}

	result, err := fp.OCR.ProcessFile(ctx, data.MediaURL, data.MimeType, user)
	if err != nil {
		return entities.Fragment{}, fmt.Errorf("parser: file OCR: %w", err)
	}
	if !result.Success {
		return entities.NewFailedMediaFragment(entities.KindFile, result.Message, result.Context, data.MediaURL), nil
	}
	return entities.NewMediaFragment(entities.KindFile, result.Message, data.MediaURL), nil
}

func renderContacts(contacts []dto.InboundContact) string {
	rendered := make([]string, 0, len(contacts))
	for _, contact := range contacts {
		phone := ""
		if len(contact.Phones) > 0 {
			phone = strings.ReplaceAll(contact.Phones[0].Phone, " ", "")
		}
		if strings.HasPrefix(phone, "+51") {
			phone = "+51 " + strings.TrimPrefix(phone, "+51")
		}
		rendered = append(rendered, fmt.Sprintf("Aqui esta el contacto con nombre: %s y numero de celular: %s", contact.Name, phone))
	}
	return strings.Join(rendered, " y ")
}
