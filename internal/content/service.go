// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/lumen/internal/platform/apperr"
	"github.com/taibuivan/lumen/internal/platform/locale"
	"github.com/taibuivan/lumen/internal/platform/metrics"
	"github.com/taibuivan/lumen/pkg/pagination"
)

// Retrieval operations, as reported to metrics.
const (
	OperationGetByID = "get_by_id"
	OperationGetPage = "get_page"
)

// pageMessages are the client messages of pagination input errors.
var pageMessages = map[error]string{
	pagination.ErrMissingPage:       "Missing page query parameter",
	pagination.ErrMissingPerPage:    "Missing perPage query parameter",
	pagination.ErrNonIntegerPage:    "Page must be an integer",
	pagination.ErrNonIntegerPerPage: "PerPage must be an integer",
	pagination.ErrPageOutOfRange:    "Page must be at least 1",
	pagination.ErrPerPageOutOfRange: "PerPage must be at least 1",
}

// Service retrieves the documents of one collection.
type Service struct {
	descriptor Descriptor
	store      Store
	logger     *slog.Logger
}

// NewService creates the retrieval service of descriptor.
func NewService(descriptor Descriptor, store Store, logger *slog.Logger) *Service {
	return &Service{
		descriptor: descriptor,
		store:      store,
		logger:     logger.With(slog.String("entity", descriptor.Name)),
	}
}

// Descriptor returns the collection this service reads.
func (service *Service) Descriptor() Descriptor {
	return service.descriptor
}

/*
GetByID returns one document.

Parameters:
  - context: context.Context
  - id: string (canonical UUID, already validated by the access gate)
  - lang: locale.Lang
  - privileged: bool

Returns:
  - Document: The projected document
  - error: NOT_FOUND when the id is missing or hidden from the caller
*/
func (service *Service) GetByID(context context.Context, id string, lang locale.Lang, privileged bool) (Document, error) {
	query := BuildSingle(service.descriptor, lang, privileged, id)

	document, err := service.store.FindOne(context, query)
	service.observe(context, OperationGetByID, err)
	if err != nil {
		return nil, err
	}
	return document, nil
}

/*
GetPage returns one page of documents ordered by primary key.

Returns:
  - *pagination.Result[Document]: The page and its metadata
  - error: INVALID_INPUT for a bad request, NOT_FOUND ("No items found") past the end
*/
func (service *Service) GetPage(ctx context.Context, req pagination.Request, lang locale.Lang, privileged bool) (*pagination.Result[Document], error) {
	if err := req.Validate(); err != nil {
		return nil, PageError(err)
	}

	query := BuildListing(service.descriptor, lang, privileged, req)
	fetch := func(fetchCtx context.Context, window pagination.Window) ([]Document, int, error) {
		query.Window = window
		return service.store.FindPage(fetchCtx, query)
	}

	page, err := pagination.Paginate(ctx, req, fetch)
	if err != nil {
		err = PageError(err)
	}

	service.observe(ctx, OperationGetPage, err)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// PageError maps pagination errors to API errors and passes others through.
func PageError(err error) error {
	if errors.Is(err, pagination.ErrNoItems) {
		return apperr.NoItems()
	}
	for sentinel, message := range pageMessages {
		if errors.Is(err, sentinel) {
			return apperr.InvalidInput(message)
		}
	}
	return err
}

func (service *Service) observe(context context.Context, operation string, err error) {
	switch {
	case err == nil:
		metrics.ObserveRetrieval(service.descriptor.Name, operation, metrics.OutcomeOK)
	case apperr.Is(err, apperr.CodeNotFound):
		metrics.ObserveRetrieval(service.descriptor.Name, operation, metrics.OutcomeNotFound)
	default:
		metrics.ObserveRetrieval(service.descriptor.Name, operation, metrics.OutcomeError)
		service.logger.ErrorContext(context, "retrieval_failed",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
	}
}
