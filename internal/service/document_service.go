package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ai-docqa-be/internal/dto"
	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/pkg/embedding"
	"ai-docqa-be/pkg/events"
	"ai-docqa-be/pkg/extract"
	"ai-docqa-be/pkg/utils"
	"ai-docqa-be/pkg/vecstore"
)

// Chunking parameters for ingestion. The overlap preserves context across
// chunk boundaries.
const (
	chunkSize    = 500
	chunkOverlap = 50
)

type IDocumentService interface {
	// UploadShared ingests into the legacy shared index.
	UploadShared(ctx context.Context, filename string, content []byte, source string) (*dto.UploadResponse, error)

	// UploadDocument ingests into an isolated per-document index.
	UploadDocument(ctx context.Context, filename string, content []byte, docID string) (*dto.UploadDocumentResponse, error)

	ListDocuments(ctx context.Context) (*dto.DocumentListResponse, error)
	DeleteDocument(ctx context.Context, docID string) (bool, error)
	GetDocumentStats(ctx context.Context, docID string) (*dto.DocumentStatsResponse, error)
}

type documentService struct {
	extractor *extract.Extractor
	embedder  embedding.EmbeddingProvider
	shared    *vecstore.SharedStore
	multi     *vecstore.DocumentStore
	publisher IPublisherService
	log       logger.ILogger
}

func NewDocumentService(
	extractor *extract.Extractor,
	embedder embedding.EmbeddingProvider,
	shared *vecstore.SharedStore,
	multi *vecstore.DocumentStore,
	publisher IPublisherService,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		extractor: extractor,
		embedder:  embedder,
		shared:    shared,
		multi:     multi,
		publisher: publisher,
		log:       log,
	}
}

// prepare extracts, chunks and embeds an uploaded file.
func (ds *documentService) prepare(filename string, content []byte) (string, []string, [][]float32, error) {
	text, err := ds.extractor.Extract(filename, content)
	if err != nil {
		return "", nil, nil, err
	}

	chunks := utils.SplitText(text, chunkSize, chunkOverlap)
	if len(chunks) == 0 {
		return "", nil, nil, extract.ErrNoMeaningfulText
	}

	vectors := make([][]float32, len(chunks))
	for i, chunk := range chunks {
		res, err := ds.embedder.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return "", nil, nil, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		vectors[i] = res.Embedding.Values
	}
	return text, chunks, vectors, nil
}

func (ds *documentService) UploadShared(ctx context.Context, filename string, content []byte, source string) (*dto.UploadResponse, error) {
	if source == "" {
		source = filename
	}

	_, chunks, vectors, err := ds.prepare(filename, content)
	if err != nil {
		return nil, err
	}

	fileType := extract.FileType(filename)
	metas := make([]vecstore.ChunkMeta, len(chunks))
	for i, chunk := range chunks {
		metas[i] = vecstore.ChunkMeta{
			Chunk:    chunk,
			Source:   source,
			FileType: fileType,
		}
	}

	if err := ds.shared.Add(vectors, metas); err != nil {
		return nil, err
	}

	ds.log.Info("document", "Document added to shared index", map[string]interface{}{
		"source": source,
		"chunks": len(chunks),
	})

	if err := ds.publisher.PublishEvent(ctx, events.NewDocumentIngested("", source, len(chunks))); err != nil {
		ds.log.Warn("document", "Failed to publish ingest event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.UploadResponse{
		Source:   source,
		FileType: fileType,
		Chunks:   len(chunks),
		Vectors:  len(vectors),
	}, nil
}

func (ds *documentService) UploadDocument(ctx context.Context, filename string, content []byte, docID string) (*dto.UploadDocumentResponse, error) {
	if docID == "" {
		docID = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	text, chunks, vectors, err := ds.prepare(filename, content)
	if err != nil {
		return nil, err
	}

	info := vecstore.DocumentInfo{
		OriginalFilename: filename,
		FileType:         extract.FileType(filename),
		UploadDate:       time.Now(),
		Characters:       len(text),
	}

	savedID, err := ds.multi.SaveDocument(docID, vectors, chunks, filename, info)
	if err != nil {
		return nil, err
	}

	ds.log.Info("document", "Document indexed", map[string]interface{}{
		"doc_id": savedID,
		"chunks": len(chunks),
	})

	if err := ds.publisher.PublishEvent(ctx, events.NewDocumentIngested(savedID, filename, len(chunks))); err != nil {
		ds.log.Warn("document", "Failed to publish ingest event", map[string]interface{}{"error": err.Error()})
	}

	stats := ds.multi.GetDocumentStats(savedID)
	return &dto.UploadDocumentResponse{
		DocumentInfoResponse: toDocumentInfoResponse(stats.DocumentInfo),
	}, nil
}

func (ds *documentService) ListDocuments(ctx context.Context) (*dto.DocumentListResponse, error) {
	infos := ds.multi.ListDocuments()
	docs := make([]dto.DocumentInfoResponse, len(infos))
	for i, info := range infos {
		docs[i] = toDocumentInfoResponse(info)
	}

	legacy := ds.shared.Documents()
	return &dto.DocumentListResponse{
		LegacyDocuments: legacy,
		Documents:       docs,
		Total:           len(legacy) + len(docs),
	}, nil
}

func (ds *documentService) DeleteDocument(ctx context.Context, docID string) (bool, error) {
	deleted, err := ds.multi.DeleteDocument(docID)
	if err != nil || !deleted {
		return deleted, err
	}

	ds.log.Info("document", "Document deleted", map[string]interface{}{"doc_id": docID})

	if err := ds.publisher.PublishEvent(ctx, events.NewDocumentDeleted(docID)); err != nil {
		ds.log.Warn("document", "Failed to publish delete event", map[string]interface{}{"error": err.Error()})
	}
	return true, nil
}

func (ds *documentService) GetDocumentStats(ctx context.Context, docID string) (*dto.DocumentStatsResponse, error) {
	stats := ds.multi.GetDocumentStats(docID)
	if stats == nil {
		return nil, nil
	}
	return &dto.DocumentStatsResponse{
		DocumentInfoResponse: toDocumentInfoResponse(stats.DocumentInfo),
		Dimension:            stats.Dimension,
	}, nil
}

func toDocumentInfoResponse(info vecstore.DocumentInfo) dto.DocumentInfoResponse {
	return dto.DocumentInfoResponse{
		DocID:            info.DocID,
		OriginalFilename: info.OriginalFilename,
		FileType:         info.FileType,
		UploadDate:       info.UploadDate,
		Characters:       info.Characters,
		Chunks:           info.Chunks,
		Vectors:          info.Vectors,
	}
}
