// Package workflow implements the article editorial lifecycle:
// create, update, submit, approve, reject and publish, plus read and delete.
package workflow

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/audit"
	"github.com/rohit/cms-editorial/internal/auth"
	apperrors "github.com/rohit/cms-editorial/internal/domain/errors"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/metrics"
	"github.com/rohit/cms-editorial/internal/permission"
	"github.com/rohit/cms-editorial/internal/repository"
	"github.com/rohit/cms-editorial/internal/service/content"
	"github.com/rohit/cms-editorial/internal/service/validation"
	"github.com/rohit/cms-editorial/pkg/logger"
	"github.com/rs/zerolog"
)

// Operation names, used for audit actions and metrics
const (
	OpCreate  = "create"
	OpUpdate  = "update"
	OpSubmit  = "submit"
	OpApprove = "approve"
	OpReject  = "reject"
	OpPublish = "publish"
	OpDelete  = "delete"
)

const resourceArticle = "article"

// Service runs article operations. Every mutating operation executes as
// read, validate, mutate, write, reload inside a single transaction.
type Service struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
	tx         repository.Transactor
	validator  *validation.ArticleValidator
	sanitizer  *content.Sanitizer
	recorder   audit.Recorder
	metrics    *metrics.Collector
	logger     zerolog.Logger
	now        func() time.Time
}

// NewService creates a workflow service. recorder and metricsCollector may be nil.
func NewService(
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	tags repository.TagRepository,
	tx repository.Transactor,
	recorder audit.Recorder,
	metricsCollector *metrics.Collector,
	log zerolog.Logger,
) *Service {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Service{
		articles:   articles,
		categories: categories,
		tags:       tags,
		tx:         tx,
		validator:  validation.NewArticleValidator(),
		sanitizer:  content.NewSanitizer(),
		recorder:   recorder,
		metrics:    metricsCollector,
		logger:     logger.WithModule(log, permission.ModuleArticles),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// mutation is the body of an operation. It runs inside the transaction and
// may add audit metadata.
type mutation func(ctx context.Context, meta map[string]interface{}) (*models.Article, error)

// execute wraps a mutation with authentication, the transaction, metrics,
// logging and the audit event. The audit event is emitted on success and failure.
func (s *Service) execute(ctx context.Context, op string, actor *auth.Identity, articleID uuid.UUID, fn mutation) (*models.Article, error) {
	start := time.Now()
	meta := map[string]interface{}{}
	if articleID != uuid.Nil {
		meta["articleId"] = articleID.String()
	}

	var article *models.Article
	var err error
	if actor == nil {
		err = apperrors.ErrUnauthorized("authentication required")
	} else {
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			var txErr error
			article, txErr = fn(ctx, meta)
			return txErr
		})
	}
	if err != nil {
		article = nil
	}

	s.observe(ctx, op, actor, article, meta, err, time.Since(start))
	return article, err
}

func (s *Service) observe(ctx context.Context, op string, actor *auth.Identity, article *models.Article, meta map[string]interface{}, err error, elapsed time.Duration) {
	entry := audit.Entry{
		Verb:     op,
		Resource: resourceArticle,
		Module:   permission.ModuleArticles,
		Metadata: meta,
	}
	if actor != nil {
		uid := actor.UserID
		entry.UserID = &uid
	}

	log := s.logger.With().Str("operation", op).Logger()
	if id, ok := meta["articleId"].(string); ok {
		log = logger.WithArticleID(log, id)
	}
	if info, ok := audit.RequestFromContext(ctx); ok && info.RequestID != "" {
		log = logger.WithRequestID(log, info.RequestID)
	}

	if err == nil {
		entry.StatusCode = http.StatusOK
		if op == OpCreate {
			entry.StatusCode = http.StatusCreated
		}
		entry.Level = models.AuditLevelInfo
		entry.Message = "article " + op + " succeeded"
		if article != nil {
			meta["articleId"] = article.ID.String()
			meta["slug"] = article.Slug
			meta["status"] = article.Status.String()
			if prev, ok := meta["previousStatus"].(string); ok && prev != article.Status.String() && s.metrics != nil {
				s.metrics.RecordTransition(prev, article.Status.String())
			}
		}
		log.Debug().Dur("elapsed", elapsed).Msg("Article operation succeeded")
	} else {
		appErr := apperrors.AsAppError(err)
		entry.StatusCode = appErr.StatusCode
		entry.Message = appErr.Message
		meta["errorCode"] = appErr.Code
		if apperrors.IsInternal(err) {
			entry.Level = models.AuditLevelError
			log.Error().Err(err).Msg("Article operation failed")
		} else {
			entry.Level = models.AuditLevelWarn
			log.Debug().Str("code", appErr.Code).Msg("Article operation rejected")
		}
	}

	if s.metrics != nil {
		s.metrics.RecordOperation(op, resultLabel(err), elapsed.Seconds())
	}
	s.recorder.Record(audit.NewEvent(ctx, entry))
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.IsNotFound(err):
		return "not_found"
	case apperrors.IsForbidden(err):
		return "forbidden"
	case apperrors.IsConflict(err):
		return "conflict"
	case apperrors.IsValidation(err):
		return "validation"
	case apperrors.AsAppError(err).StatusCode == http.StatusUnauthorized:
		return "unauthorized"
	default:
		return "error"
	}
}

// load fetches the article row or returns NotFound
func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrInternal("failed to load article", err)
	}
	if article == nil {
		return nil, apperrors.ErrNotFound("article")
	}
	return article, nil
}

// persist writes the full row, then re-reads it with relations resolved
func (s *Service) persist(ctx context.Context, article *models.Article) (*models.Article, error) {
	article.UpdatedAt = s.now()
	if err := s.save(ctx, article); err != nil {
		return nil, err
	}
	return s.reload(ctx, article.ID)
}

// save writes the row; a slug taken concurrently surfaces as DUPLICATE_SLUG
func (s *Service) save(ctx context.Context, article *models.Article) error {
	err := s.articles.Save(ctx, article)
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, repository.ErrDuplicate):
		return apperrors.ErrValidation(apperrors.ErrCodeDuplicateSlug, "slug", "Slug already exists")
	default:
		return apperrors.ErrInternal("failed to save article", err)
	}
}

func (s *Service) reload(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	article, err := s.articles.FindByIDWithRelations(ctx, id)
	if err != nil {
		return nil, apperrors.ErrInternal("failed to reload article", err)
	}
	if article == nil {
		return nil, apperrors.ErrInternal("article vanished after write", nil)
	}
	return article, nil
}
