package service

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrDocumentNotReady = errors.New("document not generated yet")

type DocumentService interface {
	// GetForBill returns the latest document row for a sales bill, creating
	// a pending one and queueing generation if none exists.
	GetForBill(ctx context.Context, billID uuid.UUID) (*dto.DocumentResponse, error)
	// PDFFilePath resolves the absolute path of a generated PDF for download.
	PDFFilePath(ctx context.Context, docID uuid.UUID) (string, error)
	// Regenerate forces a fresh render of the bill's PDF.
	Regenerate(ctx context.Context, billID uuid.UUID) (*dto.DocumentResponse, error)
}

type documentService struct {
	docs       repository.DocumentRepository
	bills      repository.SalesBillRepository
	dispatcher *worker.Dispatcher
	storageDir string
}

func NewDocumentService(
	docs repository.DocumentRepository,
	bills repository.SalesBillRepository,
	dispatcher *worker.Dispatcher,
	storageDir string,
) DocumentService {
	return &documentService{docs: docs, bills: bills, dispatcher: dispatcher, storageDir: storageDir}
}

func (s *documentService) GetForBill(ctx context.Context, billID uuid.UUID) (*dto.DocumentResponse, error) {
	if _, err := s.bills.FindByID(ctx, billID); err != nil {
		return nil, errors.New("sales bill not found")
	}
	doc, err := s.docs.FindBySalesBillID(ctx, billID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.enqueueFresh(ctx, billID)
	}
	if err != nil {
		return nil, err
	}
	return documentToResponse(doc), nil
}

func (s *documentService) PDFFilePath(ctx context.Context, docID uuid.UUID) (string, error) {
	doc, err := s.docs.FindByID(ctx, docID)
	if err != nil {
		return "", errors.New("document not found")
	}
	if doc.Status != "generated" || doc.PDFPath == nil {
		return "", ErrDocumentNotReady
	}
	return filepath.Join(s.storageDir, *doc.PDFPath), nil
}

func (s *documentService) Regenerate(ctx context.Context, billID uuid.UUID) (*dto.DocumentResponse, error) {
	if _, err := s.bills.FindByID(ctx, billID); err != nil {
		return nil, errors.New("sales bill not found")
	}
	return s.enqueueFresh(ctx, billID)
}

func (s *documentService) enqueueFresh(ctx context.Context, billID uuid.UUID) (*dto.DocumentResponse, error) {
	doc := &model.Document{SalesBillID: billID, Status: "pending"}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		payload := worker.DocumentJobPayload{SalesBillID: billID.String()}
		if err := s.dispatcher.EnqueueDocument(ctx, payload); err != nil {
			return nil, err
		}
	}
	return documentToResponse(doc), nil
}

func documentToResponse(d *model.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:          d.ID.String(),
		SalesBillID: d.SalesBillID.String(),
		Status:      d.Status,
		EmailedTo:   d.EmailedTo,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
	if d.Status == "generated" && d.PDFPath != nil {
		url := "/v1/documents/" + d.ID.String() + "/pdf"
		resp.PDFUrl = &url
	}
	return resp
}
