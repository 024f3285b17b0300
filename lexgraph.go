// Package lexgraph builds a knowledge base over legal case documents: it
// extracts entities, cross-references, timeline events and deadlines from
// document text and answers relationship queries over the resulting store.
package lexgraph

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lexgraph/lexgraph/calendar"
	"github.com/lexgraph/lexgraph/core/cluster"
	"github.com/lexgraph/lexgraph/core/extract"
	"github.com/lexgraph/lexgraph/core/relate"
	"github.com/lexgraph/lexgraph/database"
	"github.com/lexgraph/lexgraph/helper"
	"github.com/lexgraph/lexgraph/metrics"
	"github.com/lexgraph/lexgraph/model"
	loadSql "github.com/lexgraph/lexgraph/sql"
)

// LexGraph provides a unified interface to extraction and all database handlers
type LexGraph struct {
	DB         *helper.Database
	Documents  *database.DocumentsDBHandler
	Entities   *database.EntitiesDBHandler
	References *database.ReferencesDBHandler
	Events     *database.EventsDBHandler
	Deadlines  *database.DeadlinesDBHandler
	Chunks     *database.ChunksDBHandler
	Engine     *relate.Engine

	entityExtractor   *extract.EntityExtractor
	timelineExtractor *extract.TimelineExtractor
	deadlineScanner   *extract.DeadlineScanner

	// Optional collaborators
	aiExtractor extract.EntityExtractFunc
	embedder    extract.EmbedFunc
	calendar    calendar.Calendar

	// Logging
	log *slog.Logger
	now func() time.Time
}

// NewLexGraph creates a new LexGraph instance with all handlers initialized
func NewLexGraph(config *helper.DatabaseConfiguration, embeddingDim int) (*LexGraph, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("lexgraph", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// Create all handlers in the correct order (documents first)
	// force=false to not reload if functions already exist
	documents, err := database.NewDocumentsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create documents handler", err)
	}

	entities, err := database.NewEntitiesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create entities handler", err)
	}

	references, err := database.NewReferencesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create references handler", err)
	}

	events, err := database.NewEventsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create events handler", err)
	}

	deadlines, err := database.NewDeadlinesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create deadlines handler", err)
	}

	chunks, err := database.NewChunksDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create chunks handler", err)
	}

	rules := extract.DefaultRules()

	return &LexGraph{
		DB:                db,
		Documents:         documents,
		Entities:          entities,
		References:        references,
		Events:            events,
		Deadlines:         deadlines,
		Chunks:            chunks,
		Engine:            relate.NewEngine(documents, entities, references),
		entityExtractor:   extract.NewEntityExtractor(rules),
		timelineExtractor: extract.NewTimelineExtractor(rules),
		deadlineScanner:   extract.NewDeadlineScanner(rules),
		calendar:          calendar.NewNop(),
		log:               logger,
		now:               time.Now,
	}, nil
}

// Close closes the database connection
func (l *LexGraph) Close() error {
	if l.DB != nil && l.DB.Instance != nil {
		return l.DB.Instance.Close()
	}
	return nil
}

// SetCalendar configures the external calendar used for deadline reminders.
func (l *LexGraph) SetCalendar(cal calendar.Calendar) {
	l.calendar = cal
}

// SetEntityExtractor sets an alternative entity extraction path. The rule
// based extractor remains the fallback when this path fails.
func (l *LexGraph) SetEntityExtractor(fn extract.EntityExtractFunc) {
	l.aiExtractor = fn
}

// UseNERExtractor enables the model-backed entity extraction path.
// This downloads the distilbert-NER model on first use.
func (l *LexGraph) UseNERExtractor() error {
	fn, err := extract.NERExtractor()
	if err != nil {
		return helper.NewError("create NER extractor", err)
	}
	l.aiExtractor = fn
	return nil
}

// SetEmbedder sets the embedding function used for knowledge chunks.
func (l *LexGraph) SetEmbedder(fn extract.EmbedFunc) {
	l.embedder = fn
}

// UseDefaultEmbedder enables chunk embeddings with the all-MiniLM-L6-v2
// model (384 dimensions). The chunks table must be created with the matching
// embedding dimension.
func (l *LexGraph) UseDefaultEmbedder() error {
	fn, err := extract.DefaultEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}
	l.embedder = fn
	return nil
}

// extractEntities runs the configured extraction path with fallback to the
// rule-based extractor.
func (l *LexGraph) extractEntities(text string) []*model.Entity {
	if l.aiExtractor != nil {
		entities, err := l.aiExtractor(text)
		if err == nil {
			return entities
		}
		l.log.Warn("AI entity extraction failed, falling back to rules", slog.Any("error", err))
	}
	return l.entityExtractor.Extract(text)
}

// AddToKnowledgeBase extracts entities and cross-references from a document's
// text and stores them together with a truncated content chunk. Single-item
// persistence failures are logged and skipped, the call itself never fails
// once the handlers are wired.
func (l *LexGraph) AddToKnowledgeBase(ctx context.Context, documentID int64, text string) error {
	if len(text) == 0 {
		l.log.Warn("Skipping knowledge base update for empty document", slog.Int64("document_id", documentID))
		return nil
	}

	for _, entity := range l.extractEntities(text) {
		if err := l.Entities.UpsertEntity(entity); err != nil {
			metrics.PersistenceFailures.WithLabelValues("entity").Inc()
			l.log.Error("Failed to upsert entity",
				slog.String("name", entity.Name),
				slog.String("type", string(entity.Type)),
				slog.Any("error", err))
			continue
		}
		metrics.EntitiesExtracted.WithLabelValues(string(entity.Type)).Inc()

		link := &model.DocumentEntityLink{
			DocumentID: documentID,
			EntityID:   entity.ID,
			Context:    entity.Context,
		}
		if err := l.Entities.LinkDocumentEntity(link); err != nil {
			metrics.PersistenceFailures.WithLabelValues("entity_link").Inc()
			l.log.Error("Failed to link entity to document",
				slog.Int64("document_id", documentID),
				slog.Int64("entity_id", entity.ID),
				slog.Any("error", err))
		}
	}

	roster, err := l.Documents.SelectAllDocumentNames()
	if err != nil {
		l.log.Error("Failed to load document roster, skipping reference resolution", slog.Any("error", err))
	} else {
		resolver := extract.NewResolver(roster)
		for _, reference := range resolver.FindReferences(documentID, text) {
			if err := l.References.UpsertReference(reference); err != nil {
				metrics.PersistenceFailures.WithLabelValues("reference").Inc()
				l.log.Error("Failed to upsert reference",
					slog.Int64("source_id", reference.SourceID),
					slog.Int64("target_id", reference.TargetID),
					slog.Any("error", err))
			}
		}
	}

	chunk := &model.KnowledgeChunk{
		DocumentID: documentID,
		Content:    model.TruncateChunkContent(text),
	}
	if l.embedder != nil {
		embedding, err := l.embedder(chunk.Content)
		if err != nil {
			l.log.Warn("Failed to embed knowledge chunk, storing without embedding", slog.Any("error", err))
		} else {
			chunk.Embedding = embedding
		}
	}
	if err := l.Chunks.InsertChunk(chunk); err != nil {
		metrics.PersistenceFailures.WithLabelValues("chunk").Inc()
		l.log.Error("Failed to insert knowledge chunk",
			slog.Int64("document_id", documentID),
			slog.Any("error", err))
	}

	return nil
}

// ExtractTimeline scans a document's text for dated legal events and persists
// them. Failures on individual events are logged and do not abort the batch.
func (l *LexGraph) ExtractTimeline(ctx context.Context, documentID int64, text string) ([]*model.TimelineEvent, error) {
	if len(text) == 0 {
		l.log.Warn("Skipping timeline extraction for empty document", slog.Int64("document_id", documentID))
		return []*model.TimelineEvent{}, nil
	}

	events := l.timelineExtractor.Extract(documentID, text)
	for _, event := range events {
		if err := l.Events.InsertEvent(event); err != nil {
			metrics.PersistenceFailures.WithLabelValues("timeline_event").Inc()
			l.log.Error("Failed to insert timeline event",
				slog.Int64("document_id", documentID),
				slog.String("event_type", string(event.EventType)),
				slog.Time("date", event.Date),
				slog.Any("error", err))
			continue
		}
		metrics.TimelineEvents.WithLabelValues(string(event.EventType)).Inc()
	}
	return events, nil
}

// ExtractDeadlines scans a document's text for actionable deadlines, persists
// them, records each as a knowledge note, and pushes them to the configured
// calendar. Calendar failures are logged and non-fatal.
func (l *LexGraph) ExtractDeadlines(ctx context.Context, documentID int64, text string) ([]*model.Deadline, error) {
	if len(text) == 0 {
		l.log.Warn("Skipping deadline extraction for empty document", slog.Int64("document_id", documentID))
		return []*model.Deadline{}, nil
	}

	now := l.now()
	deadlines := l.deadlineScanner.Extract(documentID, text, now)
	for _, deadline := range deadlines {
		if err := l.Deadlines.InsertDeadline(deadline); err != nil {
			metrics.PersistenceFailures.WithLabelValues("deadline").Inc()
			l.log.Error("Failed to insert deadline",
				slog.Int64("document_id", documentID),
				slog.String("description", deadline.Description),
				slog.Any("error", err))
			continue
		}
		metrics.Deadlines.Inc()

		note := fmt.Sprintf("Deadline (%s) on %s: %s",
			deadline.Type, deadline.DeadlineDate.Format("2006-01-02"), deadline.Description)
		if err := l.Chunks.InsertChunk(&model.KnowledgeChunk{DocumentID: documentID, Content: note}); err != nil {
			metrics.PersistenceFailures.WithLabelValues("chunk").Inc()
			l.log.Error("Failed to record deadline note", slog.Any("error", err))
		}

		l.syncDeadlineToCalendar(ctx, deadline, now)
	}
	return deadlines, nil
}

// syncDeadlineToCalendar pushes one deadline to the calendar collaborator and
// stores the returned event id back on the record.
func (l *LexGraph) syncDeadlineToCalendar(ctx context.Context, deadline *model.Deadline, now time.Time) {
	title := fmt.Sprintf("Legal deadline: %s", deadline.Type)
	eventID, err := l.calendar.AddEvent(ctx, title, deadline.Description, deadline.DeadlineDate, deadline.ReminderDaysBefore(now))
	if err != nil {
		metrics.CalendarSyncFailures.Inc()
		l.log.Error("Failed to sync deadline to calendar",
			slog.Int64("deadline_id", deadline.ID),
			slog.Any("error", err))
		return
	}
	if len(eventID) == 0 {
		return
	}

	deadline.CalendarEventID = &eventID
	if err := l.Deadlines.UpdateCalendarEventID(deadline.ID, eventID); err != nil {
		metrics.PersistenceFailures.WithLabelValues("deadline").Inc()
		l.log.Error("Failed to store calendar event id",
			slog.Int64("deadline_id", deadline.ID),
			slog.Any("error", err))
	}
}

// ProcessDocument inserts a document and runs the full extraction pipeline
// over its content. The content itself is stored as a truncated knowledge
// chunk, not on the document row.
func (l *LexGraph) ProcessDocument(ctx context.Context, doc *model.Document) error {
	if doc.Content == "" {
		return helper.NewError("process document", fmt.Errorf("document content is empty"))
	}

	content := doc.Content
	doc.Content = ""

	if err := l.Documents.InsertDocument(doc); err != nil {
		return helper.NewError("insert document", err)
	}
	l.log.Info("Inserted document", slog.Int64("document_id", doc.ID), slog.String("name", doc.Name))

	if err := l.AddToKnowledgeBase(ctx, doc.ID, content); err != nil {
		return err
	}
	if _, err := l.ExtractTimeline(ctx, doc.ID, content); err != nil {
		return err
	}
	if _, err := l.ExtractDeadlines(ctx, doc.ID, content); err != nil {
		return err
	}

	metrics.DocumentsProcessed.Inc()
	return nil
}

// RelatedDocuments returns the three relationship views for a document.
func (l *LexGraph) RelatedDocuments(ctx context.Context, documentID int64) (*model.RelatedDocuments, error) {
	return l.Engine.RelatedDocuments(documentID)
}

// ReferenceChain follows outgoing references from a document up to maxHops.
func (l *LexGraph) ReferenceChain(ctx context.Context, documentID int64, maxHops int) ([]*relate.ChainResult, error) {
	return l.Engine.ReferenceChain(documentID, maxHops)
}

// SearchKnowledge performs embedding similarity search over stored knowledge
// chunks. Requires an embedder, use UseDefaultEmbedder or SetEmbedder first.
func (l *LexGraph) SearchKnowledge(ctx context.Context, query string, limit int) ([]*model.KnowledgeChunk, error) {
	if l.embedder == nil {
		return nil, helper.NewError("search knowledge", fmt.Errorf("embedder not set, use UseDefaultEmbedder() first"))
	}

	embedding, err := l.embedder(query)
	if err != nil {
		return nil, helper.NewError("generate embedding", err)
	}
	return l.Chunks.SelectChunksBySimilarity(embedding, limit)
}

// ClusterDocuments groups stored documents by the textual similarity of their
// knowledge chunks. Corpora below the minimum size yield no clusters.
func (l *LexGraph) ClusterDocuments(ctx context.Context, maxClusters int) ([]*model.DocumentCluster, error) {
	chunks, err := l.Chunks.SelectAllChunks()
	if err != nil {
		return nil, helper.NewError("select knowledge chunks", err)
	}

	texts := map[int64]string{}
	for _, chunk := range chunks {
		if len(texts[chunk.DocumentID]) > 0 {
			texts[chunk.DocumentID] += " "
		}
		texts[chunk.DocumentID] += chunk.Content
	}
	return cluster.Cluster(texts, maxClusters), nil
}
